package response

import (
	"encoding/json"
	"log"
	"net/http"

	apperrors "techpro-backoffice/errors"
)

// Envelope is the standard API response shape the front end consumes
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// OK sends a 200 success envelope
func OK(w http.ResponseWriter, message string, data interface{}) {
	Success(w, http.StatusOK, message, data)
}

// Success sends a success envelope with the given status code
func Success(w http.ResponseWriter, statusCode int, message string, data interface{}) {
	SendJSON(w, statusCode, Envelope{Success: true, Message: message, Data: data})
}

// List sends a success envelope carrying a collection and its count
func List(w http.ResponseWriter, count int, data interface{}) {
	SendJSON(w, http.StatusOK, Envelope{Success: true, Count: &count, Data: data})
}

// Error sends an error envelope with the given status code
func Error(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, Envelope{Success: false, Message: message})
}

// FromError maps an application error to its HTTP status and message
func FromError(w http.ResponseWriter, err error) {
	Error(w, apperrors.StatusCode(err), apperrors.Message(err))
}

// SendJSON encodes and sends a JSON response
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}
