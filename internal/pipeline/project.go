// Package pipeline turns raw project and task documents into display lists:
// deduplication, filtering by status and text, and sorting.
package pipeline

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/faena/internal/dates"
	"github.com/thenoetrevino/faena/internal/models"
)

// ProjectSort selects the ordering of a project list
type ProjectSort string

const (
	SortNewest ProjectSort = "newest"
	SortOldest ProjectSort = "oldest"
	SortName   ProjectSort = "name"
	SortStart  ProjectSort = "start"
)

// ProjectSorts lists project sort modes in cycle order
var ProjectSorts = []ProjectSort{SortNewest, SortOldest, SortName, SortStart}

// FilterAll disables a filter
const FilterAll = "all"

// ProjectStatusFilters are the filter values offered to users, in cycle order
var ProjectStatusFilters = []string{FilterAll, "active", "on hold", "completed"}

// ProjectQuery describes how to narrow and order a project list
type ProjectQuery struct {
	Search string
	Status string
	Sort   ProjectSort
}

// ParseProjectSort validates a sort mode name
func ParseProjectSort(s string) (ProjectSort, bool) {
	v := ProjectSort(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return SortNewest, true
	}
	return v, slices.Contains(ProjectSorts, v)
}

// NormalizeStatusFilter maps a filter value through the alias table.
// all reports true when the filter should be bypassed.
func NormalizeStatusFilter(filter string) (status models.ProjectStatus, all bool) {
	f := strings.TrimSpace(filter)
	if f == "" || strings.EqualFold(f, FilterAll) {
		return "", true
	}
	return models.NormalizeProjectStatus(f), false
}

// DedupeProjects merges project lists keyed by ID. When an ID appears more
// than once the later record replaces the earlier one but keeps its position.
// Records without an ID are dropped.
func DedupeProjects(sources ...[]*models.Project) []*models.Project {
	index := make(map[string]int)
	var out []*models.Project

	for _, source := range sources {
		for _, p := range source {
			if p == nil || p.ID == "" {
				continue
			}
			if i, ok := index[p.ID]; ok {
				out[i] = p
				continue
			}
			index[p.ID] = len(out)
			out = append(out, p)
		}
	}

	return out
}

// FilterProjects returns the projects matching the status and search filters
func FilterProjects(projects []*models.Project, q ProjectQuery) []*models.Project {
	status, allStatuses := NormalizeStatusFilter(q.Status)
	term := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]*models.Project, 0, len(projects))
	for _, p := range projects {
		if !allStatuses && models.NormalizeProjectStatus(string(p.Status)) != status {
			continue
		}
		if term != "" && !containsFold(term, p.Name, p.Description) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// SortProjects orders projects in place
func SortProjects(projects []*models.Project, mode ProjectSort) {
	switch mode {
	case SortOldest:
		slices.SortStableFunc(projects, compareCreated)
	case SortName:
		slices.SortStableFunc(projects, func(a, b *models.Project) int {
			return cmp.Or(
				cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
				cmp.Compare(a.ID, b.ID),
			)
		})
	case SortStart:
		slices.SortStableFunc(projects, func(a, b *models.Project) int {
			return cmp.Or(
				compareOptionalInstant(a.StartDate, b.StartDate),
				cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)),
			)
		})
	default:
		slices.SortStableFunc(projects, func(a, b *models.Project) int {
			return compareCreated(b, a)
		})
	}
}

// Projects applies filters and sort to a copy of projects
func Projects(projects []*models.Project, q ProjectQuery) []*models.Project {
	out := FilterProjects(projects, q)
	SortProjects(out, q.Sort)
	return out
}

// compareCreated orders by creation time ascending. Records without a creation
// time fall back to ID order and sort before records that have one.
func compareCreated(a, b *models.Project) int {
	aHas, bHas := !a.CreatedAt.IsZero(), !b.CreatedAt.IsZero()
	switch {
	case aHas && bHas:
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	case aHas:
		return 1
	case bHas:
		return -1
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}

// compareOptionalInstant orders stored instants ascending with missing or
// unparseable values last
func compareOptionalInstant(a, b string) int {
	return instantOrMax(a).Compare(instantOrMax(b))
}

// maxInstant is the sentinel for a missing date
var maxInstant = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

func instantOrMax(value string) time.Time {
	if t, ok := dates.ParseInstant(value); ok {
		return t
	}
	return maxInstant
}

func containsFold(term string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// NextProjectSort returns the sort mode after current, wrapping around
func NextProjectSort(current ProjectSort) ProjectSort {
	return next(ProjectSorts, current)
}

// NextProjectStatusFilter returns the filter after current, wrapping around
func NextProjectStatusFilter(current string) string {
	return next(ProjectStatusFilters, current)
}

func next[T comparable](values []T, current T) T {
	i := slices.Index(values, current)
	return values[(i+1)%len(values)]
}
