package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/eventease/internal/api/apierr"
	"github.com/mcoot/eventease/internal/middleware"
)

// Recovery creates panic recovery middleware for the API.
// Panics become JSON INTERNAL_ERROR responses.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}
