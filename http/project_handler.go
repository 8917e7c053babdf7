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

type ProjectDeps struct {
	Pipeline *ingest.Pipeline
	Auth     func(http.Handler) http.Handler
	Cache    *ListingCache
	Events   events.Publisher
	Respond  Responder
}

func RegisterProjects(r chi.Router, d ProjectDeps) {
	r.Route("/v1/projects", func(r chi.Router) {
		r.Get("/{projectID}", d.getProject)

		r.Group(func(r chi.Router) {
			if d.Auth != nil {
				r.Use(d.Auth)
			}
			r.Post("/", d.createProject)
			r.Put("/{projectID}", d.updateProject)
			r.Post("/{projectID}/archive", d.setArchived(true, "Project archived successfully"))
			r.Post("/{projectID}/restore", d.setArchived(false, "Project restored successfully"))
			r.Post("/{projectID}/sold", d.markSold)
		})
	})
}

func (d ProjectDeps) createProject(w http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserID(req.Context())
	if !ok {
		d.Respond.FailMessage(w, req, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var in ingest.ProjectInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		d.Respond.FailMessage(w, req, http.StatusBadRequest, "Invalid request body")
		return
	}
	proj, err := d.Pipeline.CreateProject(req.Context(), userID, in)
	if err != nil {
		d.Respond.Fail(w, req, err)
		return
	}
	d.publish(req.Context(), proj.ID)
	d.Respond.JSON(w, req, http.StatusCreated, map[string]any{
		"message": "Project created successfully",
		"project": proj,
	})
}

func (d ProjectDeps) updateProject(w http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserID(req.Context())
	if !ok {
		d.Respond.FailMessage(w, req, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var in ingest.ProjectInput
	if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
		d.Respond.FailMessage(w, req, http.StatusBadRequest, "Invalid request body")
		return
	}
	proj, err := d.Pipeline.UpdateProject(req.Context(), userID, chi.URLParam(req, "projectID"), in)
	if err != nil {
		d.Respond.Fail(w, req, err)
		return
	}
	d.publish(req.Context(), proj.ID)
	d.Respond.JSON(w, req, http.StatusOK, map[string]any{
		"message": "Project updated successfully",
		"project": proj,
	})
}

func (d ProjectDeps) getProject(w http.ResponseWriter, req *http.Request) {
	projectID := chi.URLParam(req, "projectID")
	ctx := req.Context()
	if cached, ok := d.Cache.Get(ctx, KindProject, projectID); ok {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(cached))
		return
	}
	proj, err := d.Pipeline.GetProject(ctx, projectID)
	if err != nil {
		d.Respond.Fail(w, req, err)
		return
	}
	body := map[string]any{"message": "OK", "project": proj}
	if b, err := json.Marshal(body); err == nil {
		d.Cache.Set(ctx, KindProject, projectID, b)
	}
	d.Respond.JSON(w, req, http.StatusOK, body)
}

func (d ProjectDeps) setArchived(archived bool, successMessage string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		userID, ok := auth.UserID(req.Context())
		if !ok {
			d.Respond.FailMessage(w, req, http.StatusUnauthorized, "Unauthorized")
			return
		}
		proj, err := d.Pipeline.SetProjectArchived(req.Context(), userID, chi.URLParam(req, "projectID"), archived)
		if err != nil {
			d.Respond.Fail(w, req, err)
			return
		}
		d.publish(req.Context(), proj.ID)
		d.Respond.JSON(w, req, http.StatusOK, map[string]any{
			"message": successMessage,
			"project": proj,
		})
	}
}

func (d ProjectDeps) markSold(w http.ResponseWriter, req *http.Request) {
	userID, ok := auth.UserID(req.Context())
	if !ok {
		d.Respond.FailMessage(w, req, http.StatusUnauthorized, "Unauthorized")
		return
	}
	proj, err := d.Pipeline.SetProjectSold(req.Context(), userID, chi.URLParam(req, "projectID"), true)
	if err != nil {
		d.Respond.Fail(w, req, err)
		return
	}
	d.publish(req.Context(), proj.ID)
	d.Respond.JSON(w, req, http.StatusOK, map[string]any{
		"message": "Project marked as sold",
		"project": proj,
	})
}

func (d ProjectDeps) publish(ctx context.Context, id string) {
	if d.Events != nil {
		d.Events.PublishListingUpdated(ctx, events.ListingUpdated{Kind: KindProject, ID: id})
	}
}
