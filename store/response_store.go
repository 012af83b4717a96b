package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/penguince/career-survey/model"
)

// RecordResponse persists one response row plus its answers in a single
// transaction, preserving answer input order. Any failure rolls the whole
// submission back and surfaces as a *RecordingError; no partial state
// remains. The notification side effect is not part of this transaction.
//
// Each answer must reference a question of the submitted survey; the
// foreign key alone cannot express that, so it is checked here inside the
// transaction.
func RecordResponse(ctx context.Context, db *sql.DB, response model.Response) (model.Response, error) {
	if response.SurveyID == 0 {
		return model.Response{}, invalid("survey_id must not be empty")
	}
	if response.RespondentName == "" {
		return model.Response{}, invalid("respondent_name must not be empty")
	}
	if response.RespondentEmail == "" {
		return model.Response{}, invalid("respondent_email must not be empty")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.Response{}, &RecordingError{errors.Wrap(err, "begin tx")}
	}
	defer tx.Rollback()

	surveyQuestions, err := questionSet(ctx, tx, response.SurveyID)
	if err != nil {
		return model.Response{}, &RecordingError{err}
	}

	recorded := model.Response{
		SurveyID:        response.SurveyID,
		RespondentName:  response.RespondentName,
		RespondentEmail: response.RespondentEmail,
		SubmittedAt:     time.Now().UTC(),
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO responses (survey_id, respondent_name, respondent_email, submitted_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		recorded.SurveyID,
		recorded.RespondentName,
		recorded.RespondentEmail,
		recorded.SubmittedAt,
	).Scan(&recorded.ID)
	if err != nil {
		return model.Response{}, &RecordingError{errors.Wrap(err, "insert response")}
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO answers (response_id, question_id, answer_value)
		VALUES (?, ?, ?)`)
	if err != nil {
		return model.Response{}, &RecordingError{errors.Wrap(err, "prepare answers")}
	}
	defer stmt.Close()

	for i, a := range response.Answers {
		if !surveyQuestions[a.QuestionID] {
			return model.Response{}, &RecordingError{
				errors.Errorf("question %d does not belong to survey %d", a.QuestionID, response.SurveyID),
			}
		}
		res, err := stmt.ExecContext(ctx, recorded.ID, a.QuestionID, a.Value)
		if err != nil {
			return model.Response{}, &RecordingError{errors.Wrapf(err, "insert answer %d", i+1)}
		}
		answerId, err := res.LastInsertId()
		if err != nil {
			return model.Response{}, &RecordingError{errors.Wrapf(err, "answer %d id", i+1)}
		}
		recorded.Answers = append(recorded.Answers, model.Answer{
			ID:         int(answerId),
			ResponseID: recorded.ID,
			QuestionID: a.QuestionID,
			Value:      a.Value,
		})
	}

	if err := tx.Commit(); err != nil {
		return model.Response{}, &RecordingError{errors.Wrap(err, "commit")}
	}

	return recorded, nil
}

// GetResponse returns a response with its answers in storage order, which
// is the order the respondent submitted them in.
func GetResponse(ctx context.Context, db *sql.DB, id int) (model.Response, error) {
	response := model.Response{}
	err := db.QueryRowContext(ctx, `
		SELECT id, survey_id, respondent_name, respondent_email, submitted_at
		FROM responses
		WHERE id = ?`,
		id,
	).Scan(
		&response.ID,
		&response.SurveyID,
		&response.RespondentName,
		&response.RespondentEmail,
		&response.SubmittedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Response{}, ErrNotFound
		}
		return model.Response{}, errors.Wrap(err, "select response")
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, response_id, question_id, answer_value
		FROM answers
		WHERE response_id = ?
		ORDER BY id`,
		id,
	)
	if err != nil {
		return model.Response{}, errors.Wrap(err, "select answers")
	}
	defer rows.Close()

	for rows.Next() {
		a := model.Answer{}
		err = rows.Scan(&a.ID, &a.ResponseID, &a.QuestionID, &a.Value)
		if err != nil {
			return model.Response{}, errors.Wrap(err, "scan answer")
		}
		response.Answers = append(response.Answers, a)
	}
	if err := rows.Err(); err != nil {
		return model.Response{}, errors.Wrap(err, "iterate answers")
	}

	return response, nil
}

func questionSet(ctx context.Context, tx *sql.Tx, surveyId int) (map[int]bool, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT id FROM questions WHERE survey_id = ?`,
		surveyId,
	)
	if err != nil {
		return nil, errors.Wrap(err, "select survey questions")
	}
	defer rows.Close()

	ids := map[int]bool{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, errors.Wrap(err, "scan question id")
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
