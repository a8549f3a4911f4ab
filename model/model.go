package model

// CodeRequest is the body accepted by every task route
type CodeRequest struct {
	Code string `json:"code"`
}

// ErrorResponse is the body of every non-200 reply
type ErrorResponse struct {
	Error string `json:"error"`
}

// TaskResponse is a success body: exactly one output key mapped to the processed text
type TaskResponse map[string]string

func NewTaskResponse(outputKey, value string) TaskResponse {
	return TaskResponse{outputKey: value}
}

// HealthResponse is returned by the liveness route
type HealthResponse struct {
	Status   string `json:"status"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	Version  string `json:"version"`
}
