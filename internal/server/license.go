package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/ppiankov/douessay/internal/license"
)

type ctxKey int

const validationKey ctxKey = iota

// requireLicense rejects invalid or exhausted keys and counts successful calls
func (s *Server) requireLicense(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.licenses == nil || !s.cfg.RequireLicense {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get(LicenseHeader)
		v := license.Check(r.Context(), s.licenses, key)
		if !v.Valid {
			respondError(w, http.StatusForbidden, v.Message)
			return
		}
		if v.LimitReached() {
			respondError(w, http.StatusTooManyRequests, "daily usage limit reached")
			return
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), validationKey, v)))

		if ww.Status() < http.StatusBadRequest {
			if _, err := s.licenses.IncrementUsage(r.Context(), key); err != nil {
				s.log.Warn("usage increment failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
			}
		}
	})
}

// requireFeature rejects licenses whose tier lacks the feature
func (s *Server) requireFeature(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			v, ok := r.Context().Value(validationKey).(license.Validation)
			if ok && !v.HasFeature(name) {
				respondError(w, http.StatusForbidden, "license tier does not include "+name)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
