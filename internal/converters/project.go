// Package converters maps platform documents to and from domain models.
package converters

import (
	"fmt"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
)

// Project document attributes
const (
	AttrName        = "name"
	AttrDescription = "description"
	AttrStartDate   = "startDate"
	AttrEndDate     = "endDate"
	AttrManagerID   = "managerId"
	AttrTeamID      = "teamId"
)

// ProjectToModel converts a project document to models.Project.
// Legacy statuses are normalized on read.
func ProjectToModel(doc *platform.Document) *models.Project {
	if doc == nil {
		return nil
	}
	return &models.Project{
		ID:          doc.ID,
		Name:        stringField(doc.Data, AttrName),
		Description: stringField(doc.Data, AttrDescription),
		Status:      models.NormalizeProjectStatus(stringField(doc.Data, AttrStatus)),
		StartDate:   stringField(doc.Data, AttrStartDate),
		EndDate:     stringField(doc.Data, AttrEndDate),
		ManagerID:   stringField(doc.Data, AttrManagerID),
		TeamID:      stringField(doc.Data, AttrTeamID),
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}
}

// ProjectsToModels converts a document list to projects
func ProjectsToModels(docs []*platform.Document) []*models.Project {
	result := make([]*models.Project, 0, len(docs))
	for _, doc := range docs {
		if p := ProjectToModel(doc); p != nil {
			result = append(result, p)
		}
	}
	return result
}

// ProjectData returns the stored fields for a new project
func ProjectData(p *models.Project) map[string]any {
	return map[string]any{
		AttrName:        p.Name,
		AttrDescription: nullable(p.Description),
		AttrStatus:      string(p.Status),
		AttrStartDate:   p.StartDate,
		AttrEndDate:     nullable(p.EndDate),
		AttrManagerID:   p.ManagerID,
		AttrTeamID:      nullable(p.TeamID),
	}
}

// stringField reads a string attribute; null and missing read as empty
func stringField(data map[string]any, key string) string {
	switch v := data[key].(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// nullable stores empty strings as null
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
