package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner defines an interface for running git commands
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// Ensure DefaultRunner implements Runner interface
var _ Runner = (*DefaultRunner)(nil)

// DefaultRunner implements the Runner interface using exec.Command
type DefaultRunner struct {
	RepoPath string
}

// NewDefaultRunner creates a new instance of DefaultRunner
func NewDefaultRunner(repoPath string) *DefaultRunner {
	return &DefaultRunner{
		RepoPath: repoPath,
	}
}

// Run executes a command and returns its trimmed stdout
func (r *DefaultRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if r.RepoPath != "" {
		cmd.Dir = r.RepoPath
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("error running command: %w\nstderr: %s", err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// Client reads source files out of a git repository
type Client struct {
	runner Runner
}

// NewClient creates a new Git client
func NewClient(runner Runner) *Client {
	return &Client{
		runner: runner,
	}
}

// GetCommitHash resolves rev to a full commit hash. An empty rev means HEAD.
func (c *Client) GetCommitHash(ctx context.Context, rev string) (string, error) {
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := c.runner.Run(ctx, "git", "rev-parse", "--verify", rev+"^{commit}")
	if err != nil {
		return "", fmt.Errorf("error resolving revision %s: %w", rev, err)
	}
	return hash, nil
}

// GetFileContent returns the content of filePath as it is at rev
func (c *Client) GetFileContent(ctx context.Context, rev, filePath string) (string, error) {
	if filePath == "" {
		return "", errors.New("file path cannot be empty")
	}

	hash, err := c.GetCommitHash(ctx, rev)
	if err != nil {
		return "", err
	}

	output, err := c.runner.Run(ctx, "git", "show", fmt.Sprintf("%s:%s", hash, filePath))
	if err != nil {
		return "", fmt.Errorf("error reading %s at %s: %w", filePath, hash, err)
	}
	return output, nil
}
