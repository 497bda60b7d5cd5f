package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())
}

func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// it parses body into Go struct.
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1_048_578 //1mb
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(data)
}

// Every error response carries the same envelope: {success:false, error}.
// Internal detail never reaches the caller through here; the helpers in
// errors.go decide what message is safe to surface.
func writeJSONError(w http.ResponseWriter, status int, message string) error {
	type envelope struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}

	return writeJSON(w, status, &envelope{
		Success: false,
		Error:   message,
	})
}

func (app *application) jsonResponse(w http.ResponseWriter, status int, data any) error {
	type envelope struct {
		Success bool `json:"success"`
		Data    any  `json:"data"`
	}
	return writeJSON(w, status, &envelope{Success: true, Data: data})
}

func (app *application) jsonResponseWithCount(w http.ResponseWriter, status int, data any, count int) error {
	type envelope struct {
		Success bool `json:"success"`
		Count   int  `json:"count"`
		Data    any  `json:"data"`
	}
	return writeJSON(w, status, &envelope{Success: true, Count: count, Data: data})
}

func (app *application) jsonResponseWithMessage(w http.ResponseWriter, status int, data any, message string) error {
	type envelope struct {
		Success bool   `json:"success"`
		Data    any    `json:"data,omitempty"`
		Message string `json:"message"`
	}
	return writeJSON(w, status, &envelope{Success: true, Data: data, Message: message})
}
