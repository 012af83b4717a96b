package routes

import (
	"errors"
	"net/http"
	netmail "net/mail"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/penguince/career-survey/app"
	"github.com/penguince/career-survey/httpx"
	"github.com/penguince/career-survey/log"
	"github.com/penguince/career-survey/model"
	"github.com/penguince/career-survey/store"
)

type answerInput struct {
	QuestionID int    `json:"question_id"`
	Value      string `json:"answer_value"`
}

type submitResponseRequest struct {
	SurveyID        int    `json:"survey_id"`
	RespondentName  string `json:"respondent_name"`
	RespondentEmail string `json:"respondent_email"`
	// pointer so a missing array is told apart from an empty one:
	// empty submissions are accepted, absent answers are a 400
	Answers *[]answerInput `json:"answers"`
}

func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timestamp := time.Now().UTC().Format(time.RFC3339)

		badRequest := func(code, msg string) {
			log.Debugf("%s: %s", code, msg)
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, map[string]any{
				"error":     msg,
				"timestamp": timestamp,
				"username":  app.ServiceUser,
			})
		}

		req := submitResponseRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			badRequest("request.parse_body", "Invalid request body")
			return
		}

		if req.SurveyID == 0 || req.RespondentName == "" || req.RespondentEmail == "" || req.Answers == nil {
			badRequest("request.submit_response", "Missing required fields")
			return
		}
		if _, err := netmail.ParseAddress(req.RespondentEmail); err != nil {
			badRequest("request.submit_response.email", "Invalid respondent_email")
			return
		}

		response := model.Response{
			SurveyID:        req.SurveyID,
			RespondentName:  req.RespondentName,
			RespondentEmail: req.RespondentEmail,
		}
		for _, a := range *req.Answers {
			response.Answers = append(response.Answers, model.Answer{
				QuestionID: a.QuestionID,
				Value:      a.Value,
			})
		}

		recorded, err := store.RecordResponse(r.Context(), app.DB, response)
		var validationErr *store.ValidationError
		if errors.As(err, &validationErr) {
			badRequest("request.submit_response", validationErr.Reason)
			return
		}
		if err != nil {
			log.Errorf("db.insert_response: %s", err)
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, map[string]any{
				"error":     "Failed to save survey response",
				"details":   err.Error(),
				"timestamp": timestamp,
				"username":  app.ServiceUser,
			})
			return
		}

		// the response is committed at this point: a failed notification
		// is reported in the body, never rolled back into an error
		surveyTitle, err := store.SurveyTitle(r.Context(), app.DB, recorded.SurveyID)
		if err != nil {
			log.Warnf("db.get_survey_title: %s", err)
			surveyTitle = ""
		}
		log.Infof("sending thank you email to %s (%s)", recorded.RespondentName, recorded.RespondentEmail)
		emailResult := app.Mail.SendThankYou(recorded.RespondentName, recorded.RespondentEmail, surveyTitle)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"message":     "Survey response recorded successfully",
			"response_id": recorded.ID,
			"email_sent":  emailResult.Success,
			"timestamp":   timestamp,
			"username":    app.ServiceUser,
		})
	}
}

func GetResponseById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responseId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogBadRequest(w, r, "request.get_url_param.id", "Invalid response id")
			return
		}

		response, err := store.GetResponse(r.Context(), app.DB, responseId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, r, "db.get_response", responseId, "Response not found")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_response", "Failed to retrieve response", err)
			return
		}

		render.JSON(w, r, response)
	}
}
