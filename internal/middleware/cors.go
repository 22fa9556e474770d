package middleware

import "net/http"

// Header values sent by the serverless-function endpoints. Browsers call them
// from any origin with the anon key in Authorization/Apikey.
const (
	functionAllowOrigin  = "*"
	functionAllowMethods = "GET, POST, PUT, DELETE, OPTIONS"
	functionAllowHeaders = "Content-Type, Authorization, X-Client-Info, Apikey"
)

// FunctionCORS sets the permissive CORS headers on every response, errors
// included, and answers OPTIONS with an empty 200 before any handler runs.
func FunctionCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", functionAllowOrigin)
		h.Set("Access-Control-Allow-Methods", functionAllowMethods)
		h.Set("Access-Control-Allow-Headers", functionAllowHeaders)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
