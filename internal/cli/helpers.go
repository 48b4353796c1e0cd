package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ProjectEnv names the variable set by `faena use project`
const ProjectEnv = "FAENA_PROJECT"

// ErrNoProject is returned when neither --project nor FAENA_PROJECT is set
var ErrNoProject = errors.New("no project specified: use --project flag or set FAENA_PROJECT")

// ErrNoTeam is returned by team commands when the project has no team yet
var ErrNoTeam = errors.New("project has no team")

// GetProjectID reads --project, falling back to FAENA_PROJECT
func GetProjectID(cmd *cobra.Command) (string, error) {
	if flag := cmd.Flags().Lookup("project"); flag != nil && flag.Changed {
		if id := strings.TrimSpace(flag.Value.String()); id != "" {
			return id, nil
		}
	}
	if id := strings.TrimSpace(os.Getenv(ProjectEnv)); id != "" {
		return id, nil
	}
	return "", ErrNoProject
}

// ReadPassword prompts for a password without echo on a terminal, or reads
// one line from the command input otherwise
func ReadPassword(cmd *cobra.Command, prompt string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), prompt)
		bytes, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(bytes), nil
	}
	return readLine(cmd.InOrStdin())
}

// Confirm asks a yes/no question on the command's input
func Confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s (y/N): ", question)
	answer, err := readLine(cmd.InOrStdin())
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if line == "" && errors.Is(err, io.EOF) {
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadDescription returns value, or all of stdin when value is "-"
func ReadDescription(cmd *cobra.Command, value string) (string, error) {
	if value != "-" {
		return value, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(data), "\n"), nil
}
