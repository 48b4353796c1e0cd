package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// HumanPrinter is implemented by results with a custom human-readable form
type HumanPrinter interface {
	PrintHuman(w io.Writer) error
}

// IDLister is implemented by list results printed as IDs in quiet mode
type IDLister interface {
	IDs() []string
}

// OutputFormatter handles three output modes: JSON, quiet, and human-readable
type OutputFormatter struct {
	JSON  bool
	Quiet bool
	Out   io.Writer
	Err   io.Writer
}

// AddOutputFlags registers --json and --quiet on cmd
func AddOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")
}

// NewFormatter builds a formatter from the command's output flags
func NewFormatter(cmd *cobra.Command) *OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &OutputFormatter{
		JSON:  jsonOutput,
		Quiet: quietMode,
		Out:   cmd.OutOrStdout(),
		Err:   cmd.ErrOrStderr(),
	}
}

func (f *OutputFormatter) out() io.Writer {
	if f.Out == nil {
		return os.Stdout
	}
	return f.Out
}

func (f *OutputFormatter) errOut() io.Writer {
	if f.Err == nil {
		return os.Stderr
	}
	return f.Err
}

// Success outputs successful operation result
func (f *OutputFormatter) Success(data any) error {
	if f.Quiet {
		switch v := data.(type) {
		case interface{ GetID() string }:
			_, err := fmt.Fprintln(f.out(), v.GetID())
			return err
		case IDLister:
			for _, id := range v.IDs() {
				if _, err := fmt.Fprintln(f.out(), id); err != nil {
					return err
				}
			}
			return nil
		}
		return nil
	}

	if f.JSON {
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": true,
			"data":    data,
		})
	}

	// Human-readable format
	return f.prettyPrint(data)
}

// Error outputs error information
func (f *OutputFormatter) Error(code string, message string) error {
	return f.ErrorWithSuggestion(code, message, "")
}

// ErrorWithSuggestion outputs error information with an optional suggestion
func (f *OutputFormatter) ErrorWithSuggestion(code string, message string, suggestion string) error {
	if f.JSON {
		errData := map[string]any{
			"code":    code,
			"message": message,
		}
		if suggestion != "" {
			errData["suggestion"] = suggestion
		}
		return json.NewEncoder(f.out()).Encode(map[string]any{
			"success": false,
			"error":   errData,
		})
	}

	// Human-readable error
	if _, err := fmt.Fprintf(f.errOut(), "❌ Error: %s\n", message); err != nil {
		return err
	}
	if suggestion != "" {
		_, err := fmt.Fprintf(f.errOut(), "💡 Suggestion: %s\n", suggestion)
		return err
	}
	return nil
}

// Fail reports err and returns it wrapped with its exit code
func (f *OutputFormatter) Fail(err error) error {
	if fmtErr := f.ErrorWithSuggestion(ErrorCode(err), err.Error(), Suggestion(err)); fmtErr != nil {
		fmt.Fprintf(os.Stderr, "Error formatting error message: %v\n", fmtErr)
	}
	return &ExitError{Code: ExitCode(err), Err: err}
}

// prettyPrint formats data for human-readable output
func (f *OutputFormatter) prettyPrint(data any) error {
	if p, ok := data.(HumanPrinter); ok {
		return p.PrintHuman(f.out())
	}
	_, err := fmt.Fprintf(f.out(), "%+v\n", data)
	return err
}
