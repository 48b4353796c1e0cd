// Package task holds all cli commands related to tasks
//
// e.g., faena task ...
package task

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/faena/internal/cli/styles"
	"github.com/thenoetrevino/faena/internal/dates"
	"github.com/thenoetrevino/faena/internal/models"
)

// TaskCmd returns the task parent command
func TaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
		Long: `Manage the tasks of a project.

Commands that need a project read it from --project or from FAENA_PROJECT
(see 'faena use project').`,
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(StartCmd())
	cmd.AddCommand(DoneCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// taskResult is a single task with display dates
type taskResult struct {
	*models.Task
	dates *dates.Normalizer
	verb  string
}

func (t taskResult) PrintHuman(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "✓ Task '%s' %s (ID: %s)\n", t.Title, t.verb, t.ID); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "  Status: %s  Priority: %s  Due: %s\n",
		t.Status.Label(),
		styles.RenderPriority(t.Priority),
		t.dates.DisplayOr(t.DueDate, "-"),
	)
	return err
}

// taskList is the result of task list
type taskList struct {
	tasks []*models.Task
	dates *dates.Normalizer
}

func (l taskList) IDs() []string {
	ids := make([]string, len(l.tasks))
	for i, t := range l.tasks {
		ids[i] = t.ID
	}
	return ids
}

func (l taskList) MarshalJSON() ([]byte, error) {
	if l.tasks == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.tasks)
}

func (l taskList) PrintHuman(w io.Writer) error {
	if len(l.tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found")
		return err
	}

	if _, err := fmt.Fprintf(w, "Found %d tasks:\n\n", len(l.tasks)); err != nil {
		return err
	}
	for _, t := range l.tasks {
		line := fmt.Sprintf("  [%s] %s  %s  %s",
			t.ID,
			styles.TitleStyle.Render(t.Title),
			styles.SubtitleStyle.Render(t.Status.Label()),
			styles.RenderPriority(t.Priority),
		)
		if t.DueDate != "" {
			line += "  due " + l.dates.Display(t.DueDate)
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
