package httpapi

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"
	"go.uber.org/zap"

	"github.com/yourorg/listings-api/internal/ingest"
)

// Responder writes the shared response envelope: {message, ...} on success,
// {message, error?} on failure. ExposeInternalErrors switches on the debug
// `error` detail field; production deployments leave it off.
type Responder struct {
	Log                  *zap.Logger
	ExposeInternalErrors bool
}

func (rp Responder) JSON(w http.ResponseWriter, req *http.Request, status int, payload map[string]any) {
	render.Status(req, status)
	render.JSON(w, req, payload)
}

// Fail maps a pipeline error to its HTTP response. Anything that is not an
// ingest.Error collapses to a generic 500.
func (rp Responder) Fail(w http.ResponseWriter, req *http.Request, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"
	detail := err
	var apiErr *ingest.Error
	if errors.As(err, &apiErr) {
		status = apiErr.Status
		message = apiErr.Message
		detail = apiErr.Err
	}
	if status >= http.StatusInternalServerError && rp.Log != nil {
		rp.Log.Error("request failed",
			zap.Int("status", status),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err),
		)
	}
	body := map[string]any{"message": message}
	if rp.ExposeInternalErrors && detail != nil {
		body["error"] = detail.Error()
	}
	rp.JSON(w, req, status, body)
}

func (rp Responder) FailMessage(w http.ResponseWriter, req *http.Request, status int, message string) {
	rp.JSON(w, req, status, map[string]any{"message": message})
}

func (rp Responder) MethodNotAllowed(w http.ResponseWriter, req *http.Request) {
	rp.FailMessage(w, req, http.StatusMethodNotAllowed, "Method not allowed")
}

func (rp Responder) NotFound(w http.ResponseWriter, req *http.Request) {
	rp.FailMessage(w, req, http.StatusNotFound, "Not found")
}
