package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog/v2"

	"github.com/contestadm/backend/httpjson"
	"github.com/contestadm/backend/logger"
)

// contextLogger stores the request-scoped logger, tagged with the chi
// request id, in the request context so handlers and services log with
// the same identity.
func contextLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithLogger(r.Context(), httplog.LogEntry(r.Context()))
		ctx = logger.WithRequestID(ctx, middleware.GetReqID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// urlInt64Param parses a chi URL parameter as int64, writing a 400
// response itself on failure.
func urlInt64Param(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := chi.URLParam(r, name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		httpjson.WriteErrorJson(w,
			"invalid "+name+" parameter",
			http.StatusBadRequest,
			"invalid_url_parameter")
		return 0, false
	}
	return v, true
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	httpjson.HandleError(logger.FromContext(r.Context()), w, err)
}
