package status

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, board *Board) {
	r.Get("/api/status", getStatusHandler(board))
}

// getStatusHandler godoc
// @Summary Estado actual
// @Description Devuelve el último mensaje del canal de estado (progreso o error). Cada operación lo sobrescribe.
// @Tags status
// @Produce json
// @Success 200 {object} Message
// @Router /api/status [get]
func getStatusHandler(board *Board) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(board.Current())
	}
}
