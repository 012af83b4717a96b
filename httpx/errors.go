package httpx

import (
	"net/http"

	"github.com/go-chi/render"

	"github.com/penguince/career-survey/log"
)

// Logs the underlying error, then sends a 500 with an error message and
// the failure detail in the body.
func LogInternalError(w http.ResponseWriter, r *http.Request, code, msg string, err error) {
	log.Errorf("%s: %s", code, err)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, map[string]any{
		"error":   msg,
		"details": err.Error(),
	})
}

// Logs a debug message, then sends a 404 with the given error message.
func LogNotFound(w http.ResponseWriter, r *http.Request, code string, id any, msg string) {
	log.Debugf("%s: not found (%v)", code, id)
	render.Status(r, http.StatusNotFound)
	render.JSON(w, r, map[string]any{
		"error": msg,
	})
}

// Logs a debug message, then sends a 400 with the given error message.
func LogBadRequest(w http.ResponseWriter, r *http.Request, code, msg string) {
	log.Debugf("%s: %s", code, msg)
	render.Status(r, http.StatusBadRequest)
	render.JSON(w, r, map[string]any{
		"error": msg,
	})
}
