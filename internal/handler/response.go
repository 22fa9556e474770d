package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/futureed/backend/internal/domain"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("failed to encode JSON response: %v", err)
		}
	}
}

// Error writes an error JSON response, using AppError status codes when available.
func Error(w http.ResponseWriter, err error) {
	code, msg := errorStatus(err)
	JSON(w, code, map[string]string{"error": msg})
}

// AuthError is Error with the text repeated under "message", the key the
// site's login and signup forms display.
func AuthError(w http.ResponseWriter, err error) {
	code, msg := errorStatus(err)
	JSON(w, code, map[string]string{"error": msg, "message": msg})
}

func errorStatus(err error) (int, string) {
	if appErr, ok := domain.AsAppError(err); ok {
		if appErr.Err != nil {
			log.Printf("request failed: %v", appErr)
		}
		return appErr.Code, appErr.Message
	}
	log.Printf("unhandled error: %v", err)
	return http.StatusInternalServerError, "internal server error"
}

// DecodeJSON decodes a JSON request body into the given struct. An empty body
// decodes to the zero value.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return domain.ErrBadRequest("invalid JSON body")
	}
	return nil
}

// NotFound answers unknown routes with a JSON error.
func NotFound(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
