package git

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type call struct {
	name string
	args []string
}

// MockRunner is a mock implementation of the Runner interface for testing.
// Outputs are returned in call order.
type MockRunner struct {
	Outputs []string
	Errors  []error
	Calls   []call
}

// Run implements the Runner interface
func (m *MockRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	i := len(m.Calls)
	m.Calls = append(m.Calls, call{name: name, args: args})

	var out string
	var err error
	if i < len(m.Outputs) {
		out = m.Outputs[i]
	}
	if i < len(m.Errors) {
		err = m.Errors[i]
	}
	return out, err
}

func TestGetCommitHash_DefaultsToHead(t *testing.T) {
	mockRunner := &MockRunner{Outputs: []string{"abc123"}}

	hash, err := NewClient(mockRunner).GetCommitHash(context.Background(), "")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if hash != "abc123" {
		t.Errorf("Expected 'abc123', got %s", hash)
	}

	if len(mockRunner.Calls) != 1 || mockRunner.Calls[0].name != "git" {
		t.Fatalf("Expected a single git call, got %+v", mockRunner.Calls)
	}
	expected := "rev-parse --verify HEAD^{commit}"
	if got := strings.Join(mockRunner.Calls[0].args, " "); got != expected {
		t.Errorf("Expected args '%s', got '%s'", expected, got)
	}
}

func TestGetCommitHash_Error(t *testing.T) {
	mockRunner := &MockRunner{Errors: []error{errors.New("unknown revision")}}

	if _, err := NewClient(mockRunner).GetCommitHash(context.Background(), "nope"); err == nil {
		t.Error("Expected an error for an unknown revision")
	}
}

func TestGetFileContent(t *testing.T) {
	mockRunner := &MockRunner{Outputs: []string{"abc123", "def f():\n    return 1"}}

	content, err := NewClient(mockRunner).GetFileContent(context.Background(), "main", "src/f.py")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if content != "def f():\n    return 1" {
		t.Errorf("Expected file content, got %q", content)
	}

	if len(mockRunner.Calls) != 2 {
		t.Fatalf("Expected 2 git calls, got %d", len(mockRunner.Calls))
	}
	expected := "show abc123:src/f.py"
	if got := strings.Join(mockRunner.Calls[1].args, " "); got != expected {
		t.Errorf("Expected args '%s', got '%s'", expected, got)
	}
}

func TestGetFileContent_EmptyPath(t *testing.T) {
	mockRunner := &MockRunner{}

	if _, err := NewClient(mockRunner).GetFileContent(context.Background(), "HEAD", ""); err == nil {
		t.Error("Expected an error for an empty file path")
	}
	if len(mockRunner.Calls) != 0 {
		t.Errorf("Expected no git calls, got %d", len(mockRunner.Calls))
	}
}

func TestGetFileContent_ShowFails(t *testing.T) {
	mockRunner := &MockRunner{
		Outputs: []string{"abc123"},
		Errors:  []error{nil, errors.New("path does not exist")},
	}

	_, err := NewClient(mockRunner).GetFileContent(context.Background(), "", "missing.py")
	if err == nil || !strings.Contains(err.Error(), "missing.py") {
		t.Errorf("Expected an error naming the file, got %v", err)
	}
}
