package routes_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penguince/career-survey/mail"
)

func submitBody(surveyId, questionId int) string {
	return fmt.Sprintf(`{
		"survey_id": %d,
		"respondent_name": "Ada",
		"respondent_email": "ada@example.com",
		"answers": [{"question_id": %d, "answer_value": "Engineering"}]
	}`, surveyId, questionId)
}

func firstQuestionId(t *testing.T, handler http.Handler, surveyId int) int {
	t.Helper()

	rec, body := doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/surveys/%d", surveyId), "")
	require.Equal(t, http.StatusOK, rec.Code)
	questions := body["questions"].([]any)
	return int(questions[0].(map[string]any)["id"].(float64))
}

func TestSubmitResponse(t *testing.T) {
	sender := &stubSender{result: mail.Result{Success: true}}
	handler := newTestApp(t, sender)
	surveyId := createSampleSurvey(t, handler)
	questionId := firstQuestionId(t, handler, surveyId)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/responses", submitBody(surveyId, questionId))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Survey response recorded successfully", body["message"])
	assert.Equal(t, true, body["email_sent"])
	assert.Equal(t, "penguince", body["username"])
	assert.NotEmpty(t, body["timestamp"])
	require.Contains(t, body, "response_id")

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "Ada", sender.sent[0].name)
	assert.Equal(t, "ada@example.com", sender.sent[0].address)
	assert.Equal(t, "Career Check", sender.sent[0].surveyTitle, "dispatcher gets the survey title for the subject")
}

// A dead mail relay must not lose the committed response: still a 201,
// just with email_sent false.
func TestSubmitResponseEmailFailureKeepsResponse(t *testing.T) {
	sender := &stubSender{result: mail.Result{Success: false, Detail: "relay down"}}
	handler := newTestApp(t, sender)
	surveyId := createSampleSurvey(t, handler)
	questionId := firstQuestionId(t, handler, surveyId)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/responses", submitBody(surveyId, questionId))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, false, body["email_sent"])

	responseId := int(body["response_id"].(float64))
	rec, body = doJSON(t, handler, http.MethodGet, fmt.Sprintf("/api/responses/%d", responseId), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada", body["respondent_name"])
	answers := body["answers"].([]any)
	require.Len(t, answers, 1)
	assert.Equal(t, "Engineering", answers[0].(map[string]any)["answer_value"])
}

func TestSubmitResponseValidation(t *testing.T) {
	handler := newTestApp(t, &stubSender{})

	tests := []struct {
		name string
		body string
	}{
		{"missing survey_id", `{"respondent_name":"A","respondent_email":"a@example.com","answers":[]}`},
		{"missing name", `{"survey_id":1,"respondent_email":"a@example.com","answers":[]}`},
		{"missing email", `{"survey_id":1,"respondent_name":"A","answers":[]}`},
		{"missing answers", `{"survey_id":1,"respondent_name":"A","respondent_email":"a@example.com"}`},
		{"answers not an array", `{"survey_id":1,"respondent_name":"A","respondent_email":"a@example.com","answers":"nope"}`},
		{"invalid email", `{"survey_id":1,"respondent_name":"A","respondent_email":"not-an-address","answers":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := doJSON(t, handler, http.MethodPost, "/api/responses", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, body, "error")
			assert.Equal(t, "penguince", body["username"])
		})
	}
}

func TestSubmitResponseEmptyAnswersAccepted(t *testing.T) {
	sender := &stubSender{result: mail.Result{Success: true}}
	handler := newTestApp(t, sender)
	surveyId := createSampleSurvey(t, handler)

	rec, body := doJSON(t, handler, http.MethodPost, "/api/responses", fmt.Sprintf(
		`{"survey_id":%d,"respondent_name":"Ada","respondent_email":"ada@example.com","answers":[]}`,
		surveyId))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, true, body["email_sent"])
}

func TestSubmitResponseRecordingFailure(t *testing.T) {
	sender := &stubSender{result: mail.Result{Success: true}}
	handler := newTestApp(t, sender)
	surveyId := createSampleSurvey(t, handler)

	// unknown question id: transaction rolls back, no email goes out
	rec, body := doJSON(t, handler, http.MethodPost, "/api/responses", submitBody(surveyId, 99999))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Failed to save survey response", body["error"])
	assert.Contains(t, body, "details")
	assert.Empty(t, sender.sent)
}

func TestGetResponseNotFoundRoute(t *testing.T) {
	handler := newTestApp(t, &stubSender{})

	rec, body := doJSON(t, handler, http.MethodGet, "/api/responses/12345", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Response not found", body["error"])
}
