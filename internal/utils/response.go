package utils

import (
	"encoding/json"
	"net/http"
)

// JSON encodes payload with the given status. A nil payload writes
// headers only.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// JSONError writes the {"error": message} body every handler uses for
// plain failure responses.
func JSONError(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
