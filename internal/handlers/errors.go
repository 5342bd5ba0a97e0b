package handlers

import (
	"log/slog"
	"net/http"

	"github.com/crucial707/blog-api/internal/apperror"
	"github.com/crucial707/blog-api/internal/respond"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// writeError maps err to a status via its apperror kind. 5xx details are
// logged and never sent to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.As(err)
	if !ok {
		appErr = apperror.New(apperror.Internal, respond.ErrMessageInternal, err)
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		slog.ErrorContext(r.Context(), "request failed",
			"request_id", chimw.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"kind", appErr.Kind.String(),
			"error", err)
		respond.Error(w, respond.ErrMessageInternal, status)
		return
	}
	if len(appErr.Fields) > 0 {
		respond.ValidationError(w, appErr.Message, appErr.Fields, status)
		return
	}
	respond.Error(w, appErr.Message, status)
}
