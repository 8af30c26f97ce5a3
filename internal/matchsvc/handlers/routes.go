package handlers

import (
	"os"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Route("/v1", func(r chi.Router) {

		r.Get("/health", h.HealthHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)

			r.Route("/games/{gameID}", func(r chi.Router) {
				r.Get("/clock", h.ClockHandler)
				r.Get("/lineup", h.LineupHandler)

				r.Post("/periods/start", h.StartPeriodHandler)
				r.Post("/periods/end", h.EndPeriodHandler)

				r.Post("/stoppages", h.StartStoppageHandler)
				r.Post("/stoppages/{stoppageID}/end", h.EndStoppageHandler)

				r.Post("/subs", h.CreateSubHandler)
				r.Patch("/subs/{subID}", h.UpdateSubHandler)
				r.Post("/subs/{subID}/confirm", h.ConfirmSubHandler)
				r.Delete("/subs/{subID}", h.CancelSubHandler)

				r.Post("/goals", h.RecordGoalHandler)
				r.Post("/cards", h.RecordCardHandler)

				r.Get("/players/{playerID}/plus-minus", h.PlusMinusHandler)
			})
		})
	})
}

func (h *Handler) InitAuth() {
	var jwtKey = os.Getenv("JWT_SECRET_KEY")
	h.tokenAuth = jwtauth.New("HS256", []byte(jwtKey), nil)

	expirationTime := time.Now().Add(7 * 24 * time.Hour).Unix()

	_, tokenString, _ := h.tokenAuth.Encode(map[string]interface{}{
		"service_id": 8003022,
		"exp":        expirationTime,
	})

	// For debugging only, comment it out in production
	log.Infof("DEBUG: JWT for testing expires soon : %s", tokenString)
}
