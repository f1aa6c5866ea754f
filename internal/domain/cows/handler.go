package cows

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes limita el multipart completo (archivo + campos).
const maxUploadBytes = 32 << 20

func RegisterRoutes(r chi.Router, reg Registry, syncer *Synchronizer, cmd *Commands) {
	r.Post("/api/sync", syncHandler(cmd))

	r.Get("/api/accounts/{address}/cows", listCowsHandler(syncer))
	r.Get("/api/accounts/{address}/count", countHandler(reg))

	r.Post("/api/cows", createCowHandler(cmd))
	r.Get("/api/cows/{number}/owner", ownerByCowHandler(reg))
	r.Post("/api/cows/{cowID}/media", uploadMediaHandler(cmd))

	r.Get("/api/admin", adminHandler(reg))
}

type cowResponse struct {
	Number      uint64    `json:"number"`
	Index       uint64    `json:"index"`
	Mom         uint64    `json:"mom"`
	BirthDate   time.Time `json:"birth_date"`
	Type        string    `json:"type"`
	Sex         string    `json:"sex"`
	ContentHash string    `json:"content_hash,omitempty"`
	MediaURL    string    `json:"media_url,omitempty"`
}

type failureResponse struct {
	Number uint64 `json:"number"`
	Error  string `json:"error"`
}

type syncResponse struct {
	Owner    string            `json:"owner"`
	Owned    []uint64          `json:"owned"`
	Cows     []cowResponse     `json:"cows"`
	Failures []failureResponse `json:"failures,omitempty"`
}

type createCowRequest struct {
	Mom  string `json:"mom"`
	Type string `json:"type"`
	Sex  string `json:"sex"`
}

type txResponse struct {
	TxHash      string `json:"tx_hash"`
	CowNumber   uint64 `json:"cow_number,omitempty"`
	ContentHash string `json:"content_hash,omitempty"`
}

type countResponse struct {
	Address string `json:"address"`
	Count   uint64 `json:"count"`
}

type addressResponse struct {
	Address string `json:"address"`
}

// syncHandler godoc
// @Summary Sincronizar
// @Description Vuelve a leer todas las vacas de la cuenta activa y reemplaza la lista renderizada. Si algunas vacas fallan, devuelve 200 con la lista parcial y las fallas.
// @Tags cows
// @Produce json
// @Param X-Debug-Account header string false "Cuenta activa (solo modo dev)"
// @Success 200 {object} syncResponse
// @Failure 502 {string} string "chain error"
// @Router /api/sync [post]
func syncHandler(cmd *Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, res, err := cmd.Refresh(r.Context())
		if err != nil {
			var perr *PartialSyncError
			if !errors.As(err, &perr) {
				http.Error(w, err.Error(), http.StatusBadGateway)
				return
			}
		}
		writeJSON(w, http.StatusOK, toSyncResponse(res))
	}
}

// listCowsHandler godoc
// @Summary Listar vacas de una cuenta
// @Description Resuelve las vacas de la dirección sin tocar la lista renderizada ni el canal de estado.
// @Tags cows
// @Produce json
// @Param address path string true "Dirección de la cuenta (0x...)"
// @Success 200 {object} syncResponse
// @Failure 400 {string} string "invalid address"
// @Failure 502 {string} string "chain error"
// @Router /api/accounts/{address}/cows [get]
func listCowsHandler(syncer *Synchronizer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := strings.TrimSpace(chi.URLParam(r, "address"))
		if address == "" {
			http.Error(w, "invalid address", http.StatusBadRequest)
			return
		}

		res, err := syncer.Collect(r.Context(), address)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, toSyncResponse(res))
	}
}

// countHandler godoc
// @Summary Contar vacas de una cuenta
// @Tags cows
// @Produce json
// @Param address path string true "Dirección de la cuenta (0x...)"
// @Success 200 {object} countResponse
// @Failure 400 {string} string "invalid address"
// @Failure 502 {string} string "chain error"
// @Router /api/accounts/{address}/count [get]
func countHandler(reg Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address := strings.TrimSpace(chi.URLParam(r, "address"))
		if address == "" {
			http.Error(w, "invalid address", http.StatusBadRequest)
			return
		}

		n, err := reg.CountByOwner(r.Context(), address)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, countResponse{Address: address, Count: n})
	}
}

// ownerByCowHandler godoc
// @Summary Dueño de una vaca
// @Tags cows
// @Produce json
// @Param number path int true "Número de la vaca"
// @Success 200 {object} addressResponse
// @Failure 400 {string} string "invalid cow number"
// @Failure 502 {string} string "chain error"
// @Router /api/cows/{number}/owner [get]
func ownerByCowHandler(reg Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.ParseUint(chi.URLParam(r, "number"), 10, 64)
		if err != nil {
			http.Error(w, "invalid cow number", http.StatusBadRequest)
			return
		}

		owner, err := reg.OwnerByCow(r.Context(), n)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, addressResponse{Address: owner})
	}
}

// adminHandler godoc
// @Summary Administrador del contrato
// @Tags cows
// @Produce json
// @Success 200 {object} addressResponse
// @Failure 502 {string} string "chain error"
// @Router /api/admin [get]
func adminHandler(reg Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := reg.Admin(r.Context())
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusOK, addressResponse{Address: admin})
	}
}

// createCowHandler godoc
// @Summary Registrar nacimiento
// @Description Envía cowBirth(mom, type, sex) desde la cuenta activa. Los campos no se validan; el contrato decide.
// @Tags cows
// @Accept json
// @Produce json
// @Param X-Debug-Account header string false "Cuenta activa (solo modo dev)"
// @Param body body createCowRequest true "Madre, tipo y sexo"
// @Success 201 {object} txResponse
// @Failure 400 {string} string "invalid json"
// @Failure 502 {string} string "chain error"
// @Router /api/cows [post]
func createCowHandler(cmd *Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createCowRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		tx, err := cmd.Create(r.Context(), BirthInput{Mom: req.Mom, Type: req.Type, Sex: req.Sex})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusCreated, txResponse{TxHash: tx.Hash, CowNumber: tx.CowNumber})
	}
}

// uploadMediaHandler godoc
// @Summary Subir media de una vaca
// @Description Guarda el archivo en IPFS y asocia el CID a la vaca con setCowURI.
// @Tags cows
// @Accept multipart/form-data
// @Produce json
// @Param X-Debug-Account header string false "Cuenta activa (solo modo dev)"
// @Param cowID path string true "Número de la vaca"
// @Param file formData file true "Archivo"
// @Success 201 {object} txResponse
// @Failure 400 {string} string "file required"
// @Failure 502 {string} string "upload error"
// @Router /api/cows/{cowID}/media [post]
func uploadMediaHandler(cmd *Commands) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "file required", http.StatusBadRequest)
			return
		}
		defer file.Close()

		res, err := cmd.Upload(r.Context(), UploadInput{
			CowID:    chi.URLParam(r, "cowID"),
			Filename: header.Filename,
			File:     file,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		writeJSON(w, http.StatusCreated, txResponse{TxHash: res.Tx.Hash, ContentHash: res.ContentHash})
	}
}

func toSyncResponse(res Result) syncResponse {
	out := syncResponse{
		Owner: res.Owner,
		Owned: res.Owned,
		Cows:  make([]cowResponse, 0, len(res.Cows)),
	}
	if out.Owned == nil {
		out.Owned = []uint64{}
	}
	for _, c := range res.Cows {
		out.Cows = append(out.Cows, cowResponse{
			Number:      c.Number,
			Index:       c.Index,
			Mom:         c.Mom,
			BirthDate:   c.BirthDate,
			Type:        c.Type,
			Sex:         c.Sex,
			ContentHash: c.ContentHash,
			MediaURL:    c.MediaURL,
		})
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, failureResponse{Number: f.Number, Error: f.Err.Error()})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
