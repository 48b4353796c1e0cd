package models

import (
	"strings"
	"time"
)

// TaskStatus is the workflow state of a task
type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskReview     TaskStatus = "review"
	TaskDone       TaskStatus = "done"
)

// TaskStatuses lists task statuses in workflow order
var TaskStatuses = []TaskStatus{TaskTodo, TaskInProgress, TaskReview, TaskDone}

// ParseTaskStatus validates a task status, accepting "in progress" for in_progress
func ParseTaskStatus(s string) (TaskStatus, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.ReplaceAll(v, " ", "_")
	v = strings.ReplaceAll(v, "-", "_")
	for _, status := range TaskStatuses {
		if string(status) == v {
			return status, true
		}
	}
	return "", false
}

// Label returns the human-readable form of the status
func (s TaskStatus) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// Priority is the urgency of a task
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists priorities from least to most urgent
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// priorityRank is the sort order used by the "priority" sort. Unknown priorities rank as low.
var priorityRank = map[Priority]int{
	PriorityLow:      0,
	PriorityMedium:   1,
	PriorityHigh:     2,
	PriorityCritical: 3,
}

// ParsePriority validates a priority value
func ParsePriority(s string) (Priority, bool) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	_, ok := priorityRank[p]
	return p, ok
}

// Rank returns the sort rank of the priority (low=0 ... critical=3)
func (p Priority) Rank() int {
	return priorityRank[Priority(strings.ToLower(string(p)))]
}

// Task represents a task document. Every task belongs to exactly one project.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	DueDate     string     `json:"dueDate,omitempty"` // canonical instant, empty when unset
	ProjectID   string     `json:"projectId"`
	AssigneeID  string     `json:"assigneeId,omitempty"`
	CreatedBy   string     `json:"createdBy,omitempty"`
	UpdatedBy   string     `json:"updatedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// GetID returns the task ID (used by quiet output)
func (t *Task) GetID() string {
	return t.ID
}
