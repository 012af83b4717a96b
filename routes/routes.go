package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/penguince/career-survey/app"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/test", TestRoute(app))

	api.Route("/surveys", func(r chi.Router) {
		r.Get("/", ListSurveys(app))
		r.Post("/", CreateSurvey(app))
		r.Get(`/{id:^\d+$}`, GetSurveyById(app))
		r.Put(`/{id:^\d+$}`, UpdateSurvey(app))
		r.Delete(`/{id:^\d+$}`, DeleteSurvey(app))
	})

	api.Post("/responses", SubmitResponse(app))
	api.Get(`/responses/{id:^\d+$}`, GetResponseById(app))

	return api
}

func TestRoute(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"message":   "API server is running!",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"username":  app.ServiceUser,
		})
	}
}
