package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bitrise-io/bitrise-code-assistant/assistant"
	"github.com/bitrise-io/bitrise-code-assistant/client"
	"github.com/bitrise-io/bitrise-code-assistant/common"
	"github.com/bitrise-io/bitrise-code-assistant/git"
	"github.com/bitrise-io/bitrise-code-assistant/tracing"
	"github.com/spf13/cobra"
)

var taskDescriptions = map[string]string{
	assistant.Summarize.Name:           "Summarize code",
	assistant.ErrorFix.Name:            "Detect errors in Python code and print the fixed code",
	assistant.RefactorSuggestions.Name: "List refactoring suggestions for code",
	assistant.Complete.Name:            "Complete a code snippet",
	assistant.Refactor.Name:            "Refactor code",
}

func newTaskCommand(task assistant.Task) *cobra.Command {
	cmd := &cobra.Command{
		Use:   task.Name,
		Short: taskDescriptions[task.Name],
		Long: fmt.Sprintf(`%s using the configured LLM provider.
The code is read from --file, or from stdin when no file is given.
With --rev the file is read from that git revision of the current repository.
With --remote the request is sent to a running server's %s route instead.`, taskDescriptions[task.Name], task.Route),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			rev, _ := cmd.Flags().GetString("rev")
			remote, _ := cmd.Flags().GetString("remote")

			if rev != "" && file == "" {
				return errors.New("--rev requires --file")
			}

			var code string
			var err error
			if rev != "" {
				code, err = git.NewClient(git.NewDefaultRunner(".")).GetFileContent(cmd.Context(), rev, file)
			} else {
				code, err = readCode(file, cmd.InOrStdin())
			}
			if err != nil {
				return err
			}

			out, err := runTask(cmd.Context(), task, code, remote)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "Read the code from this file instead of stdin")
	cmd.Flags().String("rev", "", "Read --file as it is at this git revision (e.g. HEAD~1)")
	cmd.Flags().StringP("remote", "r", "", "Base URL of a running code-assist server (e.g. http://127.0.0.1:5000)")

	return cmd
}

func readCode(file string, stdin io.Reader) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read code file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read code from stdin: %w", err)
	}
	return string(data), nil
}

func runTask(ctx context.Context, task assistant.Task, code, remote string) (string, error) {
	if remote != "" {
		return client.New(remote).Run(ctx, task, code)
	}

	settings, err := common.LoadSettings(configPath)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return "", err
	}

	tp, err := tracing.Init(ctx, settings.Tracing)
	if err != nil {
		return "", fmt.Errorf("init tracing: %w", err)
	}
	defer tp.Shutdown(context.Background())

	service, err := newService(settings)
	if err != nil {
		return "", err
	}
	return service.Run(ctx, task, code)
}

func init() {
	for _, task := range assistant.Tasks() {
		rootCmd.AddCommand(newTaskCommand(task))
	}
}
