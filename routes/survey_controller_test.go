package routes_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSurveyBody = `{
	"title": "Career Check",
	"description": "Readiness",
	"created_by": "penguince",
	"questions": [
		{"question_text": "Dream job?", "question_type": "text"},
		{"question_text": "Have a resume?", "question_type": "multiple_choice", "options": ["Yes","No"], "required": false},
		{"question_text": "Confidence?", "question_type": "range", "options": {"min":0,"max":10,"labels":["Low","High"]}}
	]
}`

func createSampleSurvey(t *testing.T, handler http.Handler) int {
	t.Helper()

	rec, body := doJSON(t, handler, http.MethodPost, "/api/surveys", sampleSurveyBody)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, body, "id")
	return int(body["id"].(float64))
}

func TestCreateSurveyScenario(t *testing.T) {
	handler := newTestApp(t, &stubSender{})

	rec, body := doJSON(t, handler, http.MethodPost, "/api/surveys",
		`{"title":"T","created_by":"u","questions":[{"question_text":"Q1","question_type":"text"}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, body, "id")
	assert.NotContains(t, body, "questions", "creation response has no nested questions")

	id := int(body["id"].(float64))
	rec, body = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/surveys/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)

	questions := body["questions"].([]any)
	require.Len(t, questions, 1)
	q := questions[0].(map[string]any)
	assert.Equal(t, "Q1", q["question_text"])
	assert.EqualValues(t, 1, q["order_num"])
	assert.Equal(t, true, q["required"], "required defaults to true when absent")
}

func TestGetSurveyWithQuestions(t *testing.T) {
	handler := newTestApp(t, &stubSender{})
	id := createSampleSurvey(t, handler)

	rec, body := doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/surveys/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Career Check", body["title"])

	questions := body["questions"].([]any)
	require.Len(t, questions, 3)
	for i, raw := range questions {
		q := raw.(map[string]any)
		assert.EqualValues(t, i+1, q["order_num"])
	}
	assert.Equal(t, false, questions[1].(map[string]any)["required"])
}

func TestCreateSurveyQuestionsNotAnArray(t *testing.T) {
	handler := newTestApp(t, &stubSender{})

	rec, _ := doJSON(t, handler, http.MethodPost, "/api/surveys",
		`{"title":"T","created_by":"u","questions":"not-an-array"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// nothing was stored
	rec, _ = doJSON(t, handler, http.MethodGet, "/api/surveys", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var surveys []any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &surveys))
	assert.Empty(t, surveys)
}

func TestCreateSurveyValidationResponses(t *testing.T) {
	handler := newTestApp(t, &stubSender{})

	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"created_by":"u","questions":[{"question_text":"Q","question_type":"text"}]}`},
		{"missing created_by", `{"title":"T","questions":[{"question_text":"Q","question_type":"text"}]}`},
		{"missing questions", `{"title":"T","created_by":"u"}`},
		{"unsupported question type", `{"title":"T","created_by":"u","questions":[{"question_text":"Q","question_type":"matrix"}]}`},
		{"malformed options", `{"title":"T","created_by":"u","questions":[{"question_text":"Q","question_type":"multiple_choice","options":[]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doJSON(t, handler, http.MethodPost, "/api/surveys", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, body, "error")
		})
	}
}

func TestListSurveys(t *testing.T) {
	handler := newTestApp(t, &stubSender{})
	createSampleSurvey(t, handler)

	rec, _ := doJSON(t, handler, http.MethodGet, "/api/surveys", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var surveys []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &surveys))
	require.Len(t, surveys, 1)
	assert.Equal(t, "Career Check", surveys[0]["title"])
	assert.NotContains(t, surveys[0], "questions")
}

func TestUpdateSurveyRoute(t *testing.T) {
	handler := newTestApp(t, &stubSender{})
	id := createSampleSurvey(t, handler)

	rec, body := doJSON(t, handler, http.MethodPut, fmt.Sprintf("/api/surveys/%d", id),
		`{"title":"Renamed","description":"Updated"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Renamed", body["title"])
	assert.Equal(t, "Updated", body["description"])
}

func TestSurveyNotFoundResponses(t *testing.T) {
	handler := newTestApp(t, &stubSender{})

	tests := []struct {
		method string
		body   string
	}{
		{http.MethodGet, ""},
		{http.MethodPut, `{"title":"T","description":"D"}`},
		{http.MethodDelete, ""},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			rec, body := doJSON(t, handler, tt.method, "/api/surveys/12345", tt.body)
			require.Equal(t, http.StatusNotFound, rec.Code)
			assert.Equal(t, "Survey not found", body["error"])
		})
	}
}

func TestDeleteSurveyRoute(t *testing.T) {
	handler := newTestApp(t, &stubSender{})
	id := createSampleSurvey(t, handler)

	rec, body := doJSON(t, handler, http.MethodDelete, fmt.Sprintf("/api/surveys/%d", id), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Survey deleted successfully", body["message"])

	rec, _ = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/surveys/%d", id), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}
