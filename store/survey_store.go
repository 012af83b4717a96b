// Package store holds the SQL write and read paths. Multi-row writes
// (survey + questions, response + answers) run inside a single explicit
// transaction: nothing partial is ever visible, whichever statement fails.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/penguince/career-survey/model"
)

// CreateSurvey persists a survey and its questions atomically. Question
// order_num is assigned from input position (1-based); any order values
// supplied by the caller are ignored. Options payloads are validated
// against the question type before the transaction opens.
func CreateSurvey(ctx context.Context, db *sql.DB, survey model.Survey) (model.Survey, error) {
	if survey.Title == "" {
		return model.Survey{}, invalid("title must not be empty")
	}
	if survey.CreatedBy == "" {
		return model.Survey{}, invalid("created_by must not be empty")
	}
	if len(survey.Questions) == 0 {
		return model.Survey{}, invalid("questions must not be empty")
	}

	options := make([]json.RawMessage, len(survey.Questions))
	for i, q := range survey.Questions {
		if q.Text == "" {
			return model.Survey{}, invalid("question_text must not be empty")
		}
		canonical, err := model.CanonicalOptions(q.Type, q.Options)
		if err != nil {
			return model.Survey{}, invalid(err.Error())
		}
		options[i] = canonical
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.Survey{}, errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	created := model.Survey{
		Title:       survey.Title,
		Description: survey.Description,
		CreatedBy:   survey.CreatedBy,
		CreatedAt:   time.Now().UTC(),
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO surveys (title, description, created_by, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		created.Title,
		created.Description,
		created.CreatedBy,
		created.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		return model.Survey{}, errors.Wrap(err, "insert survey")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO questions (survey_id, question_text, question_type, options, required, order_num)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return model.Survey{}, errors.Wrap(err, "prepare questions")
	}
	defer stmt.Close()

	for i, q := range survey.Questions {
		var optionsValue any
		if options[i] != nil {
			optionsValue = string(options[i])
		}
		_, err := stmt.ExecContext(ctx, created.ID, q.Text, q.Type, optionsValue, q.Required, i+1)
		if err != nil {
			return model.Survey{}, errors.Wrapf(err, "insert question %d", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Survey{}, errors.Wrap(err, "commit")
	}

	return created, nil
}

// GetSurvey returns the survey with its questions ordered by order_num.
func GetSurvey(ctx context.Context, db *sql.DB, id int) (model.Survey, error) {
	survey, err := scanSurvey(db.QueryRowContext(ctx, `
		SELECT id, title, description, created_by, created_at
		FROM surveys
		WHERE id = ?`,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Survey{}, ErrNotFound
		}
		return model.Survey{}, errors.Wrap(err, "select survey")
	}

	rows, err := db.QueryContext(ctx, `
		SELECT id, survey_id, question_text, question_type, options, required, order_num
		FROM questions
		WHERE survey_id = ?
		ORDER BY order_num`,
		id,
	)
	if err != nil {
		return model.Survey{}, errors.Wrap(err, "select questions")
	}
	defer rows.Close()

	for rows.Next() {
		q := model.Question{}
		var opts sql.NullString
		err = rows.Scan(&q.ID, &q.SurveyID, &q.Text, &q.Type, &opts, &q.Required, &q.OrderNum)
		if err != nil {
			return model.Survey{}, errors.Wrap(err, "scan question")
		}
		if opts.Valid && opts.String != "" {
			// stored payloads are not re-validated: lenient rows written
			// before strict validation keep round-tripping opaquely
			q.Options = json.RawMessage(opts.String)
		}
		survey.Questions = append(survey.Questions, q)
	}
	if err := rows.Err(); err != nil {
		return model.Survey{}, errors.Wrap(err, "iterate questions")
	}

	return survey, nil
}

// ListSurveys returns all surveys, newest first, without questions.
func ListSurveys(ctx context.Context, db *sql.DB) ([]model.Survey, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, title, description, created_by, created_at
		FROM surveys
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "select surveys")
	}
	defer rows.Close()

	surveys := []model.Survey{}
	for rows.Next() {
		s := model.Survey{}
		var description sql.NullString
		err = rows.Scan(&s.ID, &s.Title, &description, &s.CreatedBy, &s.CreatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "scan survey")
		}
		s.Description = description.String
		surveys = append(surveys, s)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate surveys")
	}

	return surveys, nil
}

// SurveyTitle resolves just the title, used for notification subjects.
func SurveyTitle(ctx context.Context, db *sql.DB, id int) (string, error) {
	var title string
	err := db.QueryRowContext(ctx, `
		SELECT title FROM surveys WHERE id = ?`,
		id,
	).Scan(&title)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", errors.Wrap(err, "select title")
	}
	return title, nil
}

// UpdateSurvey overwrites title and description only; questions are
// immutable once created.
func UpdateSurvey(ctx context.Context, db *sql.DB, id int, title, description string) (model.Survey, error) {
	survey, err := scanSurvey(db.QueryRowContext(ctx, `
		UPDATE surveys
		SET title = ?, description = ?
		WHERE id = ?
		RETURNING id, title, description, created_by, created_at`,
		title,
		description,
		id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Survey{}, ErrNotFound
		}
		return model.Survey{}, errors.Wrap(err, "update survey")
	}
	return survey, nil
}

// DeleteSurvey removes the survey row; questions, responses and answers
// go with it through the cascade foreign keys.
func DeleteSurvey(ctx context.Context, db *sql.DB, id int) error {
	res, err := db.ExecContext(ctx, `
		DELETE FROM surveys WHERE id = ?`,
		id,
	)
	if err != nil {
		return errors.Wrap(err, "delete survey")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "delete survey: rows affected")
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}

func scanSurvey(row *sql.Row) (model.Survey, error) {
	s := model.Survey{}
	var description sql.NullString
	err := row.Scan(&s.ID, &s.Title, &description, &s.CreatedBy, &s.CreatedAt)
	if err != nil {
		return model.Survey{}, err
	}
	s.Description = description.String
	return s, nil
}
