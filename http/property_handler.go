package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yourorg/listings-api/internal/auth"
	"github.com/yourorg/listings-api/internal/events"
	"github.com/yourorg/listings-api/internal/ingest"
)

type PropertyDeps struct {
	Pipeline *ingest.Pipeline
	Auth     func(http.Handler) http.Handler
	Cache    *ListingCache
	Events   events.Publisher
	Respond  Responder
}

func RegisterProperties(r chi.Router, d PropertyDeps) {
	r.Route("/v1/properties", func(r chi.Router) {
		r.Get("/{propertyID}", d.getProperty)

		r.Group(func(r chi.Router) {
			if d.Auth != nil {
				r.Use(d.Auth)
			}
			r.Post("/", d.createProperty)
			r.Put("/{propertyID}", d.updateProperty)
			r.Post("/{propertyID}/archive", d.setArchived(true, "Property archived successfully"))
			r.Post("/{propertyID}/restore", d.setArchived(false, "Property restored successfully"))
			r.Post("/{propertyID}/sold", d.markSold)
		})
	})
}

func (d PropertyDeps) createProperty(w http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserID(req.Context())
	if !ok {
		d.Respond.FailMessage(w, req, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var in ingest.PropertyInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		d.Respond.FailMessage(w, req, http.StatusBadRequest, "Invalid request body")
		return
	}
	prop, err := d.Pipeline.CreateProperty(req.Context(), userID, in)
	if err != nil {
		d.Respond.Fail(w, req, err)
		return
	}
	d.publish(req.Context(), prop.ID)
	d.Respond.JSON(w, req, http.StatusCreated, map[string]any{
		"message":  "Property created successfully",
		"property": prop,
	})
}

func (d PropertyDeps) updateProperty(w http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserID(req.Context())
	if !ok {
		d.Respond.FailMessage(w, req, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var in ingest.PropertyInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		d.Respond.FailMessage(w, req, http.StatusBadRequest, "Invalid request body")
		return
	}
	prop, err := d.Pipeline.UpdateProperty(req.Context(), userID, chi.URLParam(req, "propertyID"), in)
	if err != nil {
		d.Respond.Fail(w, req, err)
		return
	}
	d.publish(req.Context(), prop.ID)
	d.Respond.JSON(w, req, http.StatusOK, map[string]any{
		"message":  "Property updated successfully",
		"property": prop,
	})
}

func (d PropertyDeps) getProperty(w http.ResponseWriter, req *http.Request) {
	propertyID := chi.URLParam(req, "propertyID")
	ctx := req.Context()
	if cached, ok := d.Cache.Get(ctx, KindProperty, propertyID); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(cached))
		return
	}
	prop, err := d.Pipeline.GetProperty(ctx, propertyID)
	if err != nil {
		d.Respond.Fail(w, req, err)
		return
	}
	body := map[string]any{"message": "OK", "property": prop}
	if b, err := json.Marshal(body); err == nil {
		d.Cache.Set(ctx, KindProperty, propertyID, b)
	}
	d.Respond.JSON(w, req, http.StatusOK, body)
}

func (d PropertyDeps) setArchived(archived bool, successMessage string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		userID, ok := auth.UserID(req.Context())
		if !ok {
			d.Respond.FailMessage(w, req, http.StatusUnauthorized, "Unauthorized")
			return
		}
		prop, err := d.Pipeline.SetPropertyArchived(req.Context(), userID, chi.URLParam(req, "propertyID"), archived)
		if err != nil {
			d.Respond.Fail(w, req, err)
			return
		}
		d.publish(req.Context(), prop.ID)
		d.Respond.JSON(w, req, http.StatusOK, map[string]any{
			"message":  successMessage,
			"property": prop,
		})
	}
}

func (d PropertyDeps) markSold(w http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserID(req.Context())
	if !ok {
		d.Respond.FailMessage(w, req, http.StatusUnauthorized, "Unauthorized")
		return
	}
	prop, err := d.Pipeline.SetPropertySold(req.Context(), userID, chi.URLParam(req, "propertyID"), true)
	if err != nil {
		d.Respond.Fail(w, req, err)
		return
	}
	d.publish(req.Context(), prop.ID)
	d.Respond.JSON(w, req, http.StatusOK, map[string]any{
		"message":  "Property marked as sold",
		"property": prop,
	})
}

func (d PropertyDeps) publish(ctx context.Context, id string) {
	if d.Events != nil {
		d.Events.PublishListingUpdated(ctx, events.ListingUpdated{Kind: KindProperty, ID: id})
	}
}
