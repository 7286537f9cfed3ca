package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON marshals data, sets the JSON content type, writes statusCode
// and then the body. Marshaling happens before any header is written, so a
// failure still produces a clean 500 instead of a half-sent response.
//
// Returns the number of body bytes written and a non-nil error only when
// marshaling fails.
//
// Example usage:
//
//	WriteJSON(w, models.MessageResponse{Message: "note deleted"}, http.StatusOK)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}
