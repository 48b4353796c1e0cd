package local

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/thenoetrevino/faena/internal/platform"
)

// DefaultListLimit is applied when a list has no limit query
const DefaultListLimit = 25

// MaxListLimit caps the limit query
const MaxListLimit = 5000

var reAttribute = regexp.MustCompile(`^\$?[A-Za-z0-9_]+$`)

// metaColumns maps metadata attributes to table columns
var metaColumns = map[string]string{
	"$id":        "id",
	"$createdAt": "created_at",
	"$updatedAt": "updated_at",
}

type documents struct {
	c *client
}

type docRow struct {
	id, collection, data, permissions, createdAt, updatedAt string
}

func (r docRow) toDocument() (*platform.Document, error) {
	doc := &platform.Document{
		ID:           r.id,
		CollectionID: r.collection,
		CreatedAt:    parseTime(r.createdAt),
		UpdatedAt:    parseTime(r.updatedAt),
		Permissions:  decodeStrings(r.permissions),
	}
	if err := json.Unmarshal([]byte(r.data), &doc.Data); err != nil {
		return nil, fmt.Errorf("decode document %s: %w", r.id, err)
	}
	if doc.Data == nil {
		doc.Data = map[string]any{}
	}
	return doc, nil
}

const docColumns = "id, collection, data, permissions, created_at, updated_at"

func scanDoc(scan func(dest ...any) error) (docRow, error) {
	var r docRow
	err := scan(&r.id, &r.collection, &r.data, &r.permissions, &r.createdAt, &r.updatedAt)
	return r, err
}

// attributeExpr returns the SQL expression for an attribute and its bind args
func attributeExpr(attribute string) (string, []any, error) {
	if !reAttribute.MatchString(attribute) {
		return "", nil, fmt.Errorf("invalid attribute %q", attribute)
	}
	if col, ok := metaColumns[attribute]; ok {
		return col, nil, nil
	}
	if strings.HasPrefix(attribute, "$") {
		return "", nil, fmt.Errorf("unsupported attribute %q", attribute)
	}
	return "json_extract(data, ?)", []any{"$." + attribute}, nil
}

// listPlan is a compiled set of queries
type listPlan struct {
	where  []string
	args   []any
	order  []string
	oargs  []any
	limit  int
	offset int
}

func compileQueries(queries []platform.Query) (*listPlan, error) {
	plan := &listPlan{limit: DefaultListLimit}

	for _, q := range queries {
		switch q.Method {
		case platform.MethodEqual:
			expr, args, err := attributeExpr(q.Attribute)
			if err != nil {
				return nil, err
			}
			if len(q.Values) == 0 {
				return nil, fmt.Errorf("equal query on %q has no values", q.Attribute)
			}
			placeholders := make([]string, len(q.Values))
			for i := range q.Values {
				placeholders[i] = "?"
			}
			plan.where = append(plan.where, fmt.Sprintf("%s IN (%s)", expr, strings.Join(placeholders, ", ")))
			plan.args = append(plan.args, args...)
			plan.args = append(plan.args, q.Values...)
		case platform.MethodSearch:
			expr, args, err := attributeExpr(q.Attribute)
			if err != nil {
				return nil, err
			}
			term, _ := firstString(q.Values)
			plan.where = append(plan.where, fmt.Sprintf("LOWER(%s) LIKE ?", expr))
			plan.args = append(plan.args, args...)
			plan.args = append(plan.args, "%"+strings.ToLower(term)+"%")
		case platform.MethodOrderAsc, platform.MethodOrderDesc:
			expr, args, err := attributeExpr(q.Attribute)
			if err != nil {
				return nil, err
			}
			dir := "ASC"
			if q.Method == platform.MethodOrderDesc {
				dir = "DESC"
			}
			plan.order = append(plan.order, expr+" "+dir)
			plan.oargs = append(plan.oargs, args...)
		case platform.MethodLimit:
			n, ok := q.IntValue()
			if !ok || n < 0 {
				return nil, fmt.Errorf("invalid limit query")
			}
			plan.limit = min(n, MaxListLimit)
		case platform.MethodOffset:
			n, ok := q.IntValue()
			if !ok || n < 0 {
				return nil, fmt.Errorf("invalid offset query")
			}
			plan.offset = n
		default:
			return nil, fmt.Errorf("unsupported query method %q", q.Method)
		}
	}
	return plan, nil
}

func firstString(values []any) (string, bool) {
	if len(values) == 0 {
		return "", false
	}
	s, ok := values[0].(string)
	return s, ok
}

func (d *documents) ListDocuments(ctx context.Context, collection string, queries ...platform.Query) (*platform.DocumentList, error) {
	userID, err := d.c.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	roles, err := d.c.store.rolesFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	plan, err := compileQueries(queries)
	if err != nil {
		return nil, err
	}

	stmt := "SELECT " + docColumns + " FROM documents WHERE collection = ?"
	args := []any{collection}
	for _, w := range plan.where {
		stmt += " AND " + w
	}
	args = append(args, plan.args...)
	order := append(plan.order, "created_at DESC", "id ASC")
	stmt += " ORDER BY " + strings.Join(order, ", ")
	args = append(args, plan.oargs...)

	rows, err := d.c.store.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	// permissions are evaluated per row, so paging happens after filtering
	list := &platform.DocumentList{Documents: []*platform.Document{}}
	for rows.Next() {
		r, err := scanDoc(rows.Scan)
		if err != nil {
			return nil, err
		}
		if !roles.allows(decodeStrings(r.permissions), platform.ActionRead) {
			continue
		}
		list.Total++
		if list.Total <= plan.offset || len(list.Documents) >= plan.limit {
			continue
		}
		doc, err := r.toDocument()
		if err != nil {
			return nil, err
		}
		list.Documents = append(list.Documents, doc)
	}
	return list, rows.Err()
}

func (d *documents) GetDocument(ctx context.Context, collection, id string) (*platform.Document, error) {
	userID, err := d.c.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	r, err := d.c.store.loadDoc(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if err := d.c.store.authorize(ctx, userID, r, platform.ActionRead); err != nil {
		return nil, err
	}
	return r.toDocument()
}

func (d *documents) CreateDocument(ctx context.Context, collection string, data map[string]any, permissions []string) (*platform.Document, error) {
	userID, err := d.c.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	if permissions == nil {
		permissions = defaultPermissions(userID)
	}
	if err := validatePermissions(permissions); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(nonNil(data))
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	now := d.c.store.timestamp()
	r := docRow{
		id:          newID(),
		collection:  collection,
		data:        string(payload),
		permissions: encodeStrings(permissions),
		createdAt:   now,
		updatedAt:   now,
	}
	_, err = d.c.store.db.ExecContext(ctx,
		"INSERT INTO documents ("+docColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		r.id, r.collection, r.data, r.permissions, r.createdAt, r.updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}
	return r.toDocument()
}

// UpdateDocument merges data into the stored fields. A nil value stores null.
func (d *documents) UpdateDocument(ctx context.Context, collection, id string, data map[string]any, permissions []string) (*platform.Document, error) {
	userID, err := d.c.currentUserID(ctx)
	if err != nil {
		return nil, err
	}
	r, err := d.c.store.loadDoc(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if err := d.c.store.authorize(ctx, userID, r, platform.ActionUpdate); err != nil {
		return nil, err
	}

	doc, err := r.toDocument()
	if err != nil {
		return nil, err
	}
	for k, v := range data {
		doc.Data[k] = v
	}
	payload, err := json.Marshal(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	r.data = string(payload)

	if permissions != nil {
		if err := validatePermissions(permissions); err != nil {
			return nil, err
		}
		r.permissions = encodeStrings(permissions)
	}
	r.updatedAt = d.c.store.timestamp()

	_, err = d.c.store.db.ExecContext(ctx,
		"UPDATE documents SET data = ?, permissions = ?, updated_at = ? WHERE id = ?",
		r.data, r.permissions, r.updatedAt, r.id,
	)
	if err != nil {
		return nil, fmt.Errorf("update document: %w", err)
	}
	return r.toDocument()
}

func (d *documents) DeleteDocument(ctx context.Context, collection, id string) error {
	userID, err := d.c.currentUserID(ctx)
	if err != nil {
		return err
	}
	r, err := d.c.store.loadDoc(ctx, collection, id)
	if err != nil {
		return err
	}
	if err := d.c.store.authorize(ctx, userID, r, platform.ActionDelete); err != nil {
		return err
	}
	if _, err := d.c.store.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *Store) loadDoc(ctx context.Context, collection, id string) (docRow, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+docColumns+" FROM documents WHERE collection = ? AND id = ?", collection, id)
	r, err := scanDoc(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return docRow{}, fmt.Errorf("document %s: %w", id, platform.ErrNotFound)
	}
	return r, err
}

// authorize hides unreadable documents as not found and rejects other actions
func (s *Store) authorize(ctx context.Context, userID string, r docRow, action string) error {
	roles, err := s.rolesFor(ctx, userID)
	if err != nil {
		return err
	}
	perms := decodeStrings(r.permissions)
	if !roles.allows(perms, platform.ActionRead) && !roles.allows(perms, action) {
		return fmt.Errorf("document %s: %w", r.id, platform.ErrNotFound)
	}
	if !roles.allows(perms, action) {
		return fmt.Errorf("%s document %s: %w", action, r.id, platform.ErrForbidden)
	}
	return nil
}

func nonNil(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return data
}
