package pipeline

import (
	"cmp"
	"slices"
	"strings"

	"github.com/thenoetrevino/faena/internal/models"
)

// TaskSort selects the ordering of a task list
type TaskSort string

const (
	SortCreated  TaskSort = "created"
	SortDeadline TaskSort = "deadline"
	SortPriority TaskSort = "priority"
)

// TaskSorts lists task sort modes in cycle order
var TaskSorts = []TaskSort{SortCreated, SortDeadline, SortPriority}

// TaskStatusFilters are the task status filter values in cycle order
var TaskStatusFilters = []string{FilterAll, "todo", "in_progress", "review", "done"}

// TaskPriorityFilters are the priority filter values in cycle order
var TaskPriorityFilters = []string{FilterAll, "low", "medium", "high", "critical"}

// TaskQuery describes how to narrow and order a task list
type TaskQuery struct {
	Search   string
	Status   string
	Priority string
	Sort     TaskSort
}

// ParseTaskSort validates a sort mode name
func ParseTaskSort(s string) (TaskSort, bool) {
	v := TaskSort(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return SortCreated, true
	}
	return v, slices.Contains(TaskSorts, v)
}

// FilterTasks returns the tasks matching status, priority and search filters
func FilterTasks(tasks []*models.Task, q TaskQuery) []*models.Task {
	status := filterValue(q.Status)
	priority := filterValue(q.Priority)
	term := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]*models.Task, 0, len(tasks))
	for _, t := range tasks {
		if status != "" && strings.ToLower(string(t.Status)) != status {
			continue
		}
		if priority != "" && strings.ToLower(string(t.Priority)) != priority {
			continue
		}
		if term != "" && !containsFold(term, t.Title, t.Description) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortTasks orders tasks in place. The sort is stable so ties keep fetch order.
func SortTasks(tasks []*models.Task, mode TaskSort) {
	switch mode {
	case SortDeadline:
		slices.SortStableFunc(tasks, func(a, b *models.Task) int {
			return compareOptionalInstant(a.DueDate, b.DueDate)
		})
	case SortPriority:
		slices.SortStableFunc(tasks, func(a, b *models.Task) int {
			return cmp.Compare(b.Priority.Rank(), a.Priority.Rank())
		})
	default:
		slices.SortStableFunc(tasks, func(a, b *models.Task) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
}

// Tasks applies filters and sort to a copy of tasks
func Tasks(tasks []*models.Task, q TaskQuery) []*models.Task {
	out := FilterTasks(tasks, q)
	SortTasks(out, q.Sort)
	return out
}

// NextTaskSort returns the sort mode after current, wrapping around
func NextTaskSort(current TaskSort) TaskSort {
	return next(TaskSorts, current)
}

// NextTaskStatusFilter returns the status filter after current
func NextTaskStatusFilter(current string) string {
	return next(TaskStatusFilters, current)
}

// NextTaskPriorityFilter returns the priority filter after current
func NextTaskPriorityFilter(current string) string {
	return next(TaskPriorityFilters, current)
}

func filterValue(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == FilterAll {
		return ""
	}
	return v
}
