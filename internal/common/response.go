package common

import (
	"encoding/json"
	"errors"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Rule  string `json:"rule,omitempty"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithDomainError maps err to a status code and body. Validation
// errors keep their field/rule detail; internal errors are replaced by a
// generic message so store internals never reach the client.
func RespondWithDomainError(w http.ResponseWriter, err error) {
	code := HTTPStatusFromError(err)

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		RespondWithJSON(w, code, ErrorResponse{Error: vErr.Error(), Field: vErr.Field, Rule: vErr.Rule})
		return
	}
	if code == http.StatusInternalServerError {
		RespondWithError(w, code, ErrInternalServer.Error())
		return
	}
	RespondWithError(w, code, err.Error())
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
