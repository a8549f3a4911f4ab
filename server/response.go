package server

import (
	"encoding/json"
	"net/http"

	"github.com/bitrise-io/bitrise-code-assistant/logger"
	"github.com/bitrise-io/bitrise-code-assistant/model"
)

func jsonOK(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warnf("Failed to encode response: %v", err)
	}
}

func jsonErr(w http.ResponseWriter, msg string, code int) {
	jsonOK(w, model.ErrorResponse{Error: msg}, code)
}
