package main

import (
	"net/http"
	"time"
)

// healthCheckHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Reports that the API is up
//	@Tags			ops
//	@Produce		json
//	@Success		200	{object}	map[string]any
//	@Router			/health [get]
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	payload := struct {
		Success   bool   `json:"success"`
		Message   string `json:"message"`
		Env       string `json:"env"`
		Version   string `json:"version"`
		Timestamp string `json:"timestamp"`
	}{
		Success:   true,
		Message:   "Prosmart API is running",
		Env:       app.config.env,
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if err := writeJSON(w, http.StatusOK, payload); err != nil {
		app.internalServerError(w, r, err)
	}
}
