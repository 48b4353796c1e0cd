package converters

import (
	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
)

// Task document attributes
const (
	AttrTitle      = "title"
	AttrStatus     = "status"
	AttrPriority   = "priority"
	AttrDueDate    = "dueDate"
	AttrProjectID  = "projectId"
	AttrAssigneeID = "assigneeId"
	AttrCreatedBy  = "createdBy"
	AttrUpdatedBy  = "updatedBy"
)

// TaskToModel converts a task document to models.Task
func TaskToModel(doc *platform.Document) *models.Task {
	if doc == nil {
		return nil
	}
	return &models.Task{
		ID:          doc.ID,
		Title:       stringField(doc.Data, AttrTitle),
		Description: stringField(doc.Data, AttrDescription),
		Status:      models.TaskStatus(stringField(doc.Data, AttrStatus)),
		Priority:    models.Priority(stringField(doc.Data, AttrPriority)),
		DueDate:     stringField(doc.Data, AttrDueDate),
		ProjectID:   stringField(doc.Data, AttrProjectID),
		AssigneeID:  stringField(doc.Data, AttrAssigneeID),
		CreatedBy:   stringField(doc.Data, AttrCreatedBy),
		UpdatedBy:   stringField(doc.Data, AttrUpdatedBy),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

// TasksToModels converts a document list to tasks
func TasksToModels(docs []*platform.Document) []*models.Task {
	result := make([]*models.Task, 0, len(docs))
	for _, doc := range docs {
		if t := TaskToModel(doc); t != nil {
			result = append(result, t)
		}
	}
	return result
}

// TaskData returns the stored fields for a new task. Empty optional fields are null.
func TaskData(t *models.Task) map[string]any {
	return map[string]any{
		AttrTitle:       t.Title,
		AttrDescription: nullable(t.Description),
		AttrStatus:      string(t.Status),
		AttrPriority:    string(t.Priority),
		AttrDueDate:     nullable(t.DueDate),
		AttrProjectID:   t.ProjectID,
		AttrAssigneeID:  nullable(t.AssigneeID),
		AttrCreatedBy:   nullable(t.CreatedBy),
	}
}
