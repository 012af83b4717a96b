package model

import (
	"encoding/json"
	"time"
)

type Survey struct {
	ID          int        `json:"id,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedBy   string     `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
	Questions   []Question `json:"questions,omitempty"`
}

type Question struct {
	ID       int             `json:"id,omitempty"`
	SurveyID int             `json:"survey_id,omitempty"`
	Text     string          `json:"question_text"`
	Type     string          `json:"question_type"`
	Options  json.RawMessage `json:"options,omitempty"`
	Required bool            `json:"required"`
	OrderNum int             `json:"order_num,omitempty"`
}

type Response struct {
	ID              int       `json:"id"`
	SurveyID        int       `json:"survey_id"`
	RespondentName  string    `json:"respondent_name"`
	RespondentEmail string    `json:"respondent_email"`
	SubmittedAt     time.Time `json:"submitted_at"`
	Answers         []Answer  `json:"answers,omitempty"`
}

type Answer struct {
	ID         int    `json:"id,omitempty"`
	ResponseID int    `json:"response_id,omitempty"`
	QuestionID int    `json:"question_id"`
	Value      string `json:"answer_value"`
}
