package util

import (
	"net/http"
	"strings"
)

const GatewayPrefix = "/api/training-planner"

// GatewayApiRewrite removes GatewayPrefix from the path
// in case we get the request from gateway
func GatewayApiRewrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, GatewayPrefix) {
			r.URL.Path = strings.TrimPrefix(r.URL.Path, GatewayPrefix)
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
		}

		next.ServeHTTP(w, r)
	})
}
