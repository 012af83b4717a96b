package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/penguince/career-survey/app"
	"github.com/penguince/career-survey/httpx"
	"github.com/penguince/career-survey/log"
	"github.com/penguince/career-survey/model"
	"github.com/penguince/career-survey/store"
)

type questionInput struct {
	Text    string          `json:"question_text"`
	Type    string          `json:"question_type"`
	Options json.RawMessage `json:"options"`
	// absent means required, matching the stored column default
	Required *bool `json:"required"`
}

type createSurveyRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CreatedBy   string          `json:"created_by"`
	Questions   []questionInput `json:"questions"`
}

func CreateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := createSurveyRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogBadRequest(w, r, "request.parse_body", "Invalid request body")
			return
		}

		survey := model.Survey{
			Title:       req.Title,
			Description: req.Description,
			CreatedBy:   req.CreatedBy,
		}
		for _, q := range req.Questions {
			required := true
			if q.Required != nil {
				required = *q.Required
			}
			survey.Questions = append(survey.Questions, model.Question{
				Text:     q.Text,
				Type:     q.Type,
				Options:  q.Options,
				Required: required,
			})
		}

		created, err := store.CreateSurvey(r.Context(), app.DB, survey)
		var validationErr *store.ValidationError
		if errors.As(err, &validationErr) {
			httpx.LogBadRequest(w, r, "request.create_survey", validationErr.Reason)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.insert_survey", "Failed to create survey", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, created)
	}
}

func ListSurveys(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveys, err := store.ListSurveys(r.Context(), app.DB)
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_surveys", "Failed to retrieve surveys", err)
			return
		}

		render.JSON(w, r, surveys)
	}
}

func GetSurveyById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogBadRequest(w, r, "request.get_url_param.id", "Invalid survey id")
			return
		}

		survey, err := store.GetSurvey(r.Context(), app.DB, surveyId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, r, "db.get_survey", surveyId, "Survey not found")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.get_survey", "Failed to retrieve survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

type updateSurveyRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func UpdateSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogBadRequest(w, r, "request.get_url_param.id", "Invalid survey id")
			return
		}

		req := updateSurveyRequest{}
		err = render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogBadRequest(w, r, "request.parse_body", "Invalid request body")
			return
		}

		survey, err := store.UpdateSurvey(r.Context(), app.DB, surveyId, req.Title, req.Description)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, r, "db.update_survey", surveyId, "Survey not found")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.update_survey", "Failed to update survey", err)
			return
		}

		render.JSON(w, r, survey)
	}
}

func DeleteSurvey(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		surveyId, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			httpx.LogBadRequest(w, r, "request.get_url_param.id", "Invalid survey id")
			return
		}

		err = store.DeleteSurvey(r.Context(), app.DB, surveyId)
		if errors.Is(err, store.ErrNotFound) {
			httpx.LogNotFound(w, r, "db.delete_survey", surveyId, "Survey not found")
			return
		}
		if err != nil {
			httpx.LogInternalError(w, r, "db.delete_survey", "Failed to delete survey", err)
			return
		}

		log.Debugf("db.delete_survey: %d deleted", surveyId)
		render.JSON(w, r, map[string]any{
			"message": "Survey deleted successfully",
		})
	}
}
