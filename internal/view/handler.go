package view

import (
	"bytes"
	"errors"
	"net/http"

	"cow-registry/internal/domain/activity"
	"cow-registry/internal/domain/cows"
	"cow-registry/internal/domain/status"
	"cow-registry/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const (
	maxUploadBytes = 32 << 20
	activityLimit  = 10
)

type Deps struct {
	Renderer *Renderer
	Display  *Display
	Commands *cows.Commands
	Status   *status.Board
	Activity *activity.Service // opcional

	// MaxUploadBytes limita el multipart de /cows/media; 0 = 32MB.
	MaxUploadBytes int64

	Logger logger.Logger
}

// RegisterRoutes monta la página y los formularios. Todos los POST terminan en 303 a "/".
func RegisterRoutes(r chi.Router, d Deps) {
	if d.Logger == nil {
		d.Logger = logger.Nop()
	}
	if d.MaxUploadBytes <= 0 {
		d.MaxUploadBytes = maxUploadBytes
	}

	r.Get("/", pageHandler(d))
	r.Post("/cows", createHandler(d))
	r.Post("/cows/media", uploadHandler(d))
	r.Post("/cows/transfer", transferHandler(d))
}

// pageHandler: cada carga de página es una sincronización completa.
// Las tarjetas salen del Result de esta sincronización, no del Display compartido.
func pageHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := PageData{}

		account, res, err := d.Commands.Refresh(r.Context())
		if account == "" && err != nil {
			data.AccountErr = err.Error()
		}
		data.Account = account

		if account != "" && d.Activity != nil {
			items, err := d.Activity.ListByAccount(r.Context(), account, activity.ListFilter{Limit: activityLimit})
			if err != nil {
				d.Logger.Warn("list activity failed", map[string]any{"account": account, "err": err})
			}
			data.Activity = items
		}

		data.Status = d.Status.Current()
		data.Cards = d.Display.Cards(res.Cows)

		var buf bytes.Buffer
		if err := d.Renderer.Page(&buf, data); err != nil {
			d.Logger.Error("render page failed", map[string]any{"err": err})
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}

// createHandler: mismos campos que el formulario original (id = madre).
func createHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		// El resultado (éxito o error crudo) queda en el canal de estado.
		_, _ = d.Commands.Create(r.Context(), cows.BirthInput{
			Mom:  r.PostFormValue("id"),
			Type: r.PostFormValue("type"),
			Sex:  r.PostFormValue("sex"),
		})
		backToPage(w, r)
	}
}

func uploadHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, d.MaxUploadBytes)

		in := cows.UploadInput{}
		err := r.ParseMultipartForm(d.MaxUploadBytes)
		switch {
		case err == nil:
			in.CowID = r.PostFormValue("cowId")
			if file, header, err := r.FormFile("file"); err == nil {
				defer file.Close()
				in.File = file
				in.Filename = header.Filename
			}
		case errors.Is(err, http.ErrNotMultipart):
			// sin multipart no hay archivo: Upload lo reporta
			in.CowID = r.FormValue("cowId")
		default:
			// body demasiado grande o multipart roto: el error real va al estado
			d.Logger.Warn("upload form rejected", map[string]any{"err": err})
			d.Status.Fail(err)
			backToPage(w, r)
			return
		}

		_, _ = d.Commands.Upload(r.Context(), in)
		backToPage(w, r)
	}
}

func transferHandler(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		_ = d.Commands.Transfer(r.Context(), cows.TransferInput{
			CowID: r.PostFormValue("cowId"),
			To:    r.PostFormValue("to"),
		})
		backToPage(w, r)
	}
}

func backToPage(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
