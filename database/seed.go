package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/pkg/errors"

	"github.com/penguince/career-survey/log"
	"github.com/penguince/career-survey/model"
)

const seedSurveyTitle = "Career Readiness Survey"

type seedQuestion struct {
	text    string
	qtype   string
	options model.Options
}

func confidenceScale(low, high string) model.RangeOptions {
	return model.RangeOptions{Min: 0, Max: 10, Labels: [2]string{low, high}}
}

var seedQuestions = []seedQuestion{
	// Section 1: Career Awareness & Goals
	{
		text:  "What type of career or industry are you most interested in pursuing?",
		qtype: model.TypeText,
	},
	{
		text:    "Have you researched potential career paths that align with your major or skills?",
		qtype:   model.TypeMultipleChoice,
		options: model.ChoiceOptions{"Yes", "No"},
	},
	{
		text:    "How confident are you in understanding the skills required for your desired job?",
		qtype:   model.TypeRange,
		options: confidenceScale("Not confident at all", "Extremely confident"),
	},
	{
		text:    "Do you have a clear, long-term career plan?",
		qtype:   model.TypeMultipleChoice,
		options: model.ChoiceOptions{"Yes", "No", "Somewhat, but I need more guidance"},
	},
	{
		text:    "Have you identified companies or organizations where you'd like to work?",
		qtype:   model.TypeMultipleChoice,
		options: model.ChoiceOptions{"Yes", "No", "I have some ideas but haven't done research yet"},
	},

	// Section 2: Resume, Cover Letter & Application Preparedness
	{
		text:    "Do you have an updated and professional resume?",
		qtype:   model.TypeMultipleChoice,
		options: model.ChoiceOptions{"Yes", "No"},
	},
	{
		text:  "Have you tailored your resume for specific job applications?",
		qtype: model.TypeMultipleChoice,
		options: model.ChoiceOptions{
			"Yes, for each application",
			"Sometimes, but not always",
			"No, I use a general resume for all applications",
		},
	},
	{
		text:    "How confident are you in writing a compelling cover letter?",
		qtype:   model.TypeRange,
		options: confidenceScale("Not confident at all", "Extremely confident"),
	},
	{
		text:  "Have you applied for internships or jobs related to your field?",
		qtype: model.TypeMultipleChoice,
		options: model.ChoiceOptions{
			"Yes, I've applied to multiple positions",
			"Yes, but only a few",
			"No, but I plan to start soon",
			"No, I haven't applied yet",
		},
	},
	{
		text:    "Have you received feedback on your resume from a career counselor, professor, or mentor?",
		qtype:   model.TypeMultipleChoice,
		options: model.ChoiceOptions{"Yes", "No"},
	},

	// Section 3: Interview & Networking Skills
	{
		text:    "How comfortable are you with answering common interview questions?",
		qtype:   model.TypeRange,
		options: confidenceScale("Not comfortable at all", "Extremely comfortable"),
	},
	{
		text:  "Have you participated in mock interviews?",
		qtype: model.TypeMultipleChoice,
		options: model.ChoiceOptions{
			"Yes, multiple times",
			"Yes, once or twice",
			"No, but I would like to",
			"No, and I don't plan to",
		},
	},
	{
		text:  "Do you have a LinkedIn profile that reflects your professional experience?",
		qtype: model.TypeMultipleChoice,
		options: model.ChoiceOptions{
			"Yes, and it is up-to-date",
			"Yes, but it needs improvement",
			"No, but I plan to create one",
			"No, and I don't plan to",
		},
	},
	{
		text:  "Have you attended career fairs, networking events, or industry meetups?",
		qtype: model.TypeMultipleChoice,
		options: model.ChoiceOptions{
			"Yes, multiple times",
			"Yes, once or twice",
			"No, but I plan to",
			"No, and I don't see the value",
		},
	},
	{
		text:  "Can you confidently introduce yourself and explain your career goals in 30 seconds (elevator pitch)?",
		qtype: model.TypeMultipleChoice,
		options: model.ChoiceOptions{
			"Yes, I have a strong elevator pitch",
			"Somewhat, but I need practice",
			"No, I don't have one yet",
		},
	},

	// Section 4: Job Market Understanding & Soft Skills
	{
		text:  "Do you research job market trends and salary expectations in your field?",
		qtype: model.TypeMultipleChoice,
		options: model.ChoiceOptions{
			"Yes, regularly",
			"Sometimes",
			"No, but I know I should",
			"No, I haven't thought about it",
		},
	},
	{
		text:    "How well do you understand workplace professionalism, including communication and teamwork?",
		qtype:   model.TypeRange,
		options: confidenceScale("Not at all", "Extremely well"),
	},
	{
		text:  "Have you developed a portfolio or personal website showcasing your work (if applicable)?",
		qtype: model.TypeMultipleChoice,
		options: model.ChoiceOptions{
			"Yes, and it's updated",
			"Yes, but it needs improvement",
			"No, but I plan to create one",
			"No, and it's not necessary for my field",
		},
	},
	{
		text:    "How comfortable are you with negotiating salary and job offers?",
		qtype:   model.TypeRange,
		options: confidenceScale("Not comfortable at all", "Extremely comfortable"),
	},
	{
		text:  "Have you sought mentorship or guidance from professionals in your industry?",
		qtype: model.TypeMultipleChoice,
		options: model.ChoiceOptions{
			"Yes, I have one or more mentors",
			"I have spoken to professionals but don't have a mentor",
			"No, but I plan to seek guidance",
			"No, and I don't think I need mentorship",
		},
	},
}

// Seed inserts the default career survey with its question set, unless a
// survey with that title already exists.
func Seed(ctx context.Context, db *sql.DB) error {
	var existingId int
	err := db.QueryRowContext(ctx, `
		SELECT id FROM surveys WHERE title = ?`,
		seedSurveyTitle,
	).Scan(&existingId)
	if err == nil {
		log.Debugf("seed: survey %d already present, skipping", existingId)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(err, "seed: check existing survey")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "seed: begin tx")
	}
	defer tx.Rollback()

	var surveyId int
	err = tx.QueryRowContext(ctx, `
		INSERT INTO surveys (title, description, created_by, created_at)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		seedSurveyTitle,
		"A survey to assess career preparedness and planning",
		"penguince",
		time.Now().UTC(),
	).Scan(&surveyId)
	if err != nil {
		return errors.Wrap(err, "seed: insert survey")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO questions (survey_id, question_text, question_type, options, required, order_num)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return errors.Wrap(err, "seed: prepare questions")
	}
	defer stmt.Close()

	for i, q := range seedQuestions {
		var options any
		if q.options != nil {
			optionsJson, err := json.Marshal(q.options)
			if err != nil {
				return errors.Wrapf(err, "seed: marshal options %d", i+1)
			}
			options = string(optionsJson)
		}
		_, err = stmt.ExecContext(ctx, surveyId, q.text, q.qtype, options, true, i+1)
		if err != nil {
			return errors.Wrapf(err, "seed: insert question %d", i+1)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "seed: commit")
	}

	log.Infof("seed: created survey %d with %d questions", surveyId, len(seedQuestions))
	return nil
}
