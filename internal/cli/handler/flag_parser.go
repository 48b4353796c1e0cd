// Package handler provides flag parsing utilities
package handler

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli"
)

// FlagParser provides common flag extraction patterns
type FlagParser struct {
	cmd  *cobra.Command
	args []string
}

// NewFlagParser creates a new flag parser
func NewFlagParser(cmd *cobra.Command, args []string) *FlagParser {
	return &FlagParser{cmd: cmd, args: args}
}

// ProjectID extracts the project ID from --project or FAENA_PROJECT
func (p *FlagParser) ProjectID() (string, error) {
	return cli.GetProjectID(p.cmd)
}

// ID reads a document ID from the first positional argument or from flagName
func (p *FlagParser) ID(flagName string) (string, error) {
	if len(p.args) > 0 {
		if id := strings.TrimSpace(p.args[0]); id != "" {
			return id, nil
		}
	}
	id, _ := p.cmd.Flags().GetString(flagName)
	if id = strings.TrimSpace(id); id == "" {
		return "", cli.Usage(fmt.Sprintf("%s is required (argument or --%s)", flagName, flagName))
	}
	return id, nil
}

// String extracts a required string flag
func (p *FlagParser) String(flagName string) (string, error) {
	value, err := p.cmd.Flags().GetString(flagName)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s flag: %w", flagName, err)
	}
	if strings.TrimSpace(value) == "" {
		return "", cli.Usage(fmt.Sprintf("--%s is required", flagName))
	}
	return value, nil
}

// Value returns a string flag, empty when unset
func (p *FlagParser) Value(flagName string) string {
	value, _ := p.cmd.Flags().GetString(flagName)
	return value
}

// Optional returns a pointer to a string flag only when it was set
func (p *FlagParser) Optional(flagName string) *string {
	flag := p.cmd.Flags().Lookup(flagName)
	if flag == nil || !flag.Changed {
		return nil
	}
	value := flag.Value.String()
	return &value
}

// Bool returns a bool flag
func (p *FlagParser) Bool(flagName string) bool {
	value, _ := p.cmd.Flags().GetBool(flagName)
	return value
}

// AnyChanged reports whether any of the flags was set
func (p *FlagParser) AnyChanged(flagNames ...string) bool {
	for _, name := range flagNames {
		if flag := p.cmd.Flags().Lookup(name); flag != nil && flag.Changed {
			return true
		}
	}
	return false
}
