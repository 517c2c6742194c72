package util

import (
	"net/http"
	"strings"
)

// PrefixRewrite removes prefix from the request path, for requests routed
// through a gateway that mounts the api under a sub path.
func PrefixRewrite(prefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if prefix != "" && strings.HasPrefix(r.URL.Path, prefix) {
				r.URL.Path = strings.TrimPrefix(r.URL.Path, prefix)
				if r.URL.Path == "" {
					r.URL.Path = "/"
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
