// Package jsonutil writes and reads the JSON bodies of the site's API
// endpoints. Errors use the shape {"error": "..."}.
package jsonutil

import (
	"encoding/json"
	"net/http"
)

// MaxBodyBytes caps the request body Decode will read.
const MaxBodyBytes = 64 << 10

// JSON writes data with the given status. A nil data writes headers only.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// OK writes a 200.
func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

// Error writes {"error": message} with the given status. message is shown
// to visitors, so keep internals out of it.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// BadRequest writes a 400 error.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 error.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// Decode reads at most MaxBodyBytes of JSON from the request body into v.
//
//	var in contactInput
//	if err := jsonutil.Decode(r, &in); err != nil {
//		jsonutil.BadRequest(w, "All fields are required")
//		return
//	}
func Decode(r *http.Request, v any) error {
	return json.NewDecoder(http.MaxBytesReader(nil, r.Body, MaxBodyBytes)).Decode(v)
}
