package appwrite

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/thenoetrevino/faena/internal/models"
	"github.com/thenoetrevino/faena/internal/platform"
)

// uniqueID asks the platform to generate an identifier
const uniqueID = "unique()"

type userPayload struct {
	ID    string `json:"$id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u userPayload) toModel() *models.User {
	return &models.User{ID: u.ID, Name: u.Name, Email: u.Email}
}

type sessionPayload struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
	Expire string `json:"expire"`
}

type teamPayload struct {
	ID        string `json:"$id"`
	Name      string `json:"name"`
	Total     int    `json:"total"`
	CreatedAt string `json:"$createdAt"`
}

func (t teamPayload) toModel() *models.Team {
	return &models.Team{ID: t.ID, Name: t.Name, Total: t.Total, CreatedAt: parseTime(t.CreatedAt)}
}

type membershipPayload struct {
	ID        string   `json:"$id"`
	TeamID    string   `json:"teamId"`
	UserID    string   `json:"userId"`
	UserName  string   `json:"userName"`
	UserEmail string   `json:"userEmail"`
	Roles     []string `json:"roles"`
	Confirm   bool     `json:"confirm"`
	Joined    string   `json:"joined"`
}

func (m membershipPayload) toModel() *models.Membership {
	return &models.Membership{
		ID:        m.ID,
		TeamID:    m.TeamID,
		UserID:    m.UserID,
		UserName:  m.UserName,
		UserEmail: m.UserEmail,
		Roles:     m.Roles,
		Confirmed: m.Confirm,
		JoinedAt:  parseTime(m.Joined),
	}
}

// documentPayload splits platform metadata ($-prefixed keys) from user fields
type documentPayload struct {
	doc *platform.Document
}

func (d *documentPayload) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	doc := &platform.Document{Data: make(map[string]any, len(raw))}
	for key, value := range raw {
		switch key {
		case "$id":
			doc.ID, _ = value.(string)
		case "$collectionId":
			doc.CollectionID, _ = value.(string)
		case "$createdAt":
			s, _ := value.(string)
			doc.CreatedAt = parseTime(s)
		case "$updatedAt":
			s, _ := value.(string)
			doc.UpdatedAt = parseTime(s)
		case "$permissions":
			if list, ok := value.([]any); ok {
				for _, p := range list {
					if s, ok := p.(string); ok {
						doc.Permissions = append(doc.Permissions, s)
					}
				}
			}
		default:
			if !strings.HasPrefix(key, "$") {
				doc.Data[key] = value
			}
		}
	}
	d.doc = doc
	return nil
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
