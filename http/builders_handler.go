package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/listings-api/internal/store"
)

type BuilderStore interface {
	ListBuilders(ctx context.Context) ([]store.Builder, error)
}

type BuilderDeps struct {
	Store   BuilderStore
	Respond Responder
}

// RegisterBuilders exposes the builder reference data used by listing forms.
func RegisterBuilders(r chi.Router, d BuilderDeps) {
	r.Get("/v1/builders", func(w http.ResponseWriter, req *http.Request) {
		builders, err := d.Store.ListBuilders(req.Context())
		if err != nil {
			d.Respond.Fail(w, req, err)
			return
		}
		d.Respond.JSON(w, req, http.StatusOK, map[string]any{
			"message":  "OK",
			"count":    len(builders),
			"builders": builders,
		})
	})
}
