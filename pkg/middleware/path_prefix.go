package middleware

import (
	"net/http"
	"strings"
)

// StripPathPrefix removes prefix from the request path, for deployments
// behind a gateway that mounts the API under a sub path.
func StripPathPrefix(prefix string) func(http.Handler) http.Handler {
	prefix = strings.TrimRight(prefix, "/")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if prefix != "" && (r.URL.Path == prefix || strings.HasPrefix(r.URL.Path, prefix+"/")) {
				r.URL.Path = strings.TrimPrefix(r.URL.Path, prefix)
				if r.URL.Path == "" {
					r.URL.Path = "/"
				}
				r.URL.RawPath = ""
			}

			next.ServeHTTP(w, r)
		})
	}
}
