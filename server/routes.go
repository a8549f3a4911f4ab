package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bitrise-io/bitrise-code-assistant/assistant"
	"github.com/bitrise-io/bitrise-code-assistant/logger"
	"github.com/bitrise-io/bitrise-code-assistant/model"
	"github.com/bitrise-io/bitrise-code-assistant/version"
)

const invalidBodyMessage = "Invalid request body"

// codeEnvelope keeps code undecoded so any JSON type can be judged
type codeEnvelope struct {
	Code json.RawMessage `json:"code"`
}

// decodeCode returns the snippet carried by raw. Missing and falsy values
// (null, "", false, 0, [] and {}) yield "", other non-string values are an error.
func decodeCode(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}

	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", err
	}

	switch c := v.(type) {
	case nil:
		return "", nil
	case string:
		return c, nil
	case bool:
		if !c {
			return "", nil
		}
	case float64:
		if c == 0 {
			return "", nil
		}
	case []any:
		if len(c) == 0 {
			return "", nil
		}
	case map[string]any:
		if len(c) == 0 {
			return "", nil
		}
	}
	return "", fmt.Errorf("code must be a string, got %s", raw)
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	for _, task := range assistant.Tasks() {
		mux.HandleFunc("POST "+task.Route, s.handleTask(task))
	}
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

func (s *Server) handleTask(task assistant.Task) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req codeEnvelope
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Debugf("Rejected %s body: %v", task.Route, err)
			jsonErr(w, invalidBodyMessage, http.StatusBadRequest)
			return
		}

		code, err := decodeCode(req.Code)
		if err != nil {
			logger.Debugf("Rejected %s code field: %v", task.Route, err)
			jsonErr(w, invalidBodyMessage, http.StatusBadRequest)
			return
		}

		// Client disconnects do not abort an issued gateway call.
		ctx := context.WithoutCancel(r.Context())

		out, err := s.service.Run(ctx, task, code)
		if err != nil {
			writeTaskError(w, err)
			return
		}

		jsonOK(w, model.NewTaskResponse(task.OutputKey, out), http.StatusOK)
	}
}

func writeTaskError(w http.ResponseWriter, err error) {
	if errors.Is(err, assistant.ErrNoCode) {
		jsonErr(w, assistant.NoCodeMessage, http.StatusBadRequest)
		return
	}
	jsonErr(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	gateway := s.service.Gateway()
	jsonOK(w, model.HealthResponse{
		Status:   "ok",
		Provider: gateway.Name(),
		Model:    gateway.Model(),
		Version:  version.Version,
	}, http.StatusOK)
}
