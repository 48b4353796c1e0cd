// Package tutorial prints a short guide to the faena commands
package tutorial

import (
	_ "embed"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli/styles"
)

//go:embed tutorial.md
var tutorialContent string

// TutorialCmd returns the tutorial command
func TutorialCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tutorial",
		Short: "Show a quick guide to faena",
		Long: `Print a short guide to signing in, projects, tasks, teams and the
dashboard. The guide is markdown; --render formats it for the terminal.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := tutorialContent
			if render, _ := cmd.Flags().GetBool("render"); render {
				content = styles.RenderMarkdown(tutorialContent, styles.CardWidth) + "\n"
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), content)
			return err
		},
	}
	cmd.Flags().Bool("render", false, "Format the guide for the terminal")
	return cmd
}
