package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	httpapi "github.com/yourorg/listings-api/http"
)

type RouterDeps struct {
	Properties httpapi.PropertyDeps
	Projects   httpapi.ProjectDeps
	Builders   httpapi.BuilderDeps
	Respond    httpapi.Responder
}

func BuildRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect geocoder/blob quotas
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.MethodNotAllowed(d.Respond.MethodNotAllowed)
	r.NotFound(d.Respond.NotFound)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterProperties(r, d.Properties)
	httpapi.RegisterProjects(r, d.Projects)
	httpapi.RegisterBuilders(r, d.Builders)

	return r
}
