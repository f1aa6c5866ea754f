package activity

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/api/accounts/{address}/activity", listActivityHandler(svc))
}

// entryResponse representa una línea del journal devuelta por la API.
type entryResponse struct {
	ID         string    `json:"id"`
	Kind       Kind      `json:"kind"`
	Account    string    `json:"account"`
	CowRef     string    `json:"cow_ref"`
	Detail     string    `json:"detail"`
	TxHash     string    `json:"tx_hash,omitempty"`
	Outcome    Outcome   `json:"outcome"`
	RecordedAt time.Time `json:"recorded_at"`
}

// listActivityHandler godoc
// @Summary Listar actividad de una cuenta
// @Description Devuelve los comandos enviados desde este cliente para la cuenta (nacimientos, media, transferencias), del más reciente al más antiguo.
// @Tags activity
// @Produce json
// @Param address path string true "Dirección de la cuenta (0x...)"
// @Param limit query int false "Máximo de entradas (1-200). Por defecto 20"
// @Param kinds query string false "Lista CSV de tipos (ej: BIRTH_RECORDED,MEDIA_LINKED)"
// @Success 200 {array} entryResponse
// @Failure 400 {string} string "invalid address"
// @Failure 500 {string} string "internal error"
// @Router /api/accounts/{address}/activity [get]
func listActivityHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := strings.TrimSpace(chi.URLParam(r, "address"))
		if address == "" {
			http.Error(w, "invalid address", http.StatusBadRequest)
			return
		}

		items, err := svc.ListByAccount(r.Context(), address, parseListFilter(r))
		if err != nil {
			if err == ErrInvalidInput {
				http.Error(w, "invalid address", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, toEntryResponse(e))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(out)
	}
}

func parseListFilter(r *http.Request) ListFilter {
	filter := ListFilter{}
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}

	// kinds=BIRTH_RECORDED,MEDIA_LINKED (desconocidos se ignoran)
	if v := strings.TrimSpace(r.URL.Query().Get("kinds")); v != "" {
		for _, p := range strings.Split(v, ",") {
			k := Kind(strings.TrimSpace(p))
			if k.Valid() {
				filter.Kinds = append(filter.Kinds, k)
			}
		}
	}
	return filter
}

func toEntryResponse(e Entry) entryResponse {
	return entryResponse{
		ID:         e.ID,
		Kind:       e.Kind,
		Account:    e.Account,
		CowRef:     e.CowRef,
		Detail:     e.Detail,
		TxHash:     e.TxHash,
		Outcome:    e.Outcome,
		RecordedAt: e.RecordedAt,
	}
}
