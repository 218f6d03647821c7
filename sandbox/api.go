package sandbox

import (
	"net/http"

	"github.com/alovak/directplus/internal/wire"
	"github.com/go-chi/chi/v5"
)

// API is the HTTP face of the sandbox processor
type API struct {
	svc *Service
}

func NewAPI(svc *Service) *API {
	return &API{
		svc: svc,
	}
}

func (a *API) AppendRoutes(r chi.Router) {
	r.Post(a.svc.cfg.Path, a.answer)
}

func (a *API) answer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ans := a.svc.Answer(r.PostForm)

	body, err := wire.EncodeLatin1(wire.Join(ans.Fields()))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=ISO-8859-1")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
