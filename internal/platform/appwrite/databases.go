package appwrite

import (
	"context"
	"net/http"

	"github.com/thenoetrevino/faena/internal/platform"
)

type databases struct {
	c *Client
}

func (d *databases) collectionPath(collection string, id ...string) string {
	parts := append([]string{"databases", d.c.databaseID, "collections", collection, "documents"}, id...)
	return pathEscape(parts...)
}

func (d *databases) ListDocuments(ctx context.Context, collection string, queries ...platform.Query) (*platform.DocumentList, error) {
	var out struct {
		Total     int               `json:"total"`
		Documents []documentPayload `json:"documents"`
	}
	r := request{method: http.MethodGet, path: d.collectionPath(collection), query: queryValues(queries)}
	if _, err := d.c.do(ctx, r, &out); err != nil {
		return nil, err
	}

	list := &platform.DocumentList{Total: out.Total, Documents: make([]*platform.Document, 0, len(out.Documents))}
	for _, doc := range out.Documents {
		list.Documents = append(list.Documents, doc.doc)
	}
	return list, nil
}

func (d *databases) GetDocument(ctx context.Context, collection, id string) (*platform.Document, error) {
	var out documentPayload
	if _, err := d.c.do(ctx, request{method: http.MethodGet, path: d.collectionPath(collection, id)}, &out); err != nil {
		return nil, err
	}
	return out.doc, nil
}

func (d *databases) CreateDocument(ctx context.Context, collection string, data map[string]any, permissions []string) (*platform.Document, error) {
	body := map[string]any{
		"documentId": uniqueID,
		"data":       data,
	}
	if permissions != nil {
		body["permissions"] = permissions
	}
	var out documentPayload
	if _, err := d.c.do(ctx, request{method: http.MethodPost, path: d.collectionPath(collection), body: body}, &out); err != nil {
		return nil, err
	}
	return out.doc, nil
}

func (d *databases) UpdateDocument(ctx context.Context, collection, id string, data map[string]any, permissions []string) (*platform.Document, error) {
	body := map[string]any{"data": data}
	if permissions != nil {
		body["permissions"] = permissions
	}
	var out documentPayload
	if _, err := d.c.do(ctx, request{method: http.MethodPatch, path: d.collectionPath(collection, id), body: body}, &out); err != nil {
		return nil, err
	}
	return out.doc, nil
}

func (d *databases) DeleteDocument(ctx context.Context, collection, id string) error {
	_, err := d.c.do(ctx, request{method: http.MethodDelete, path: d.collectionPath(collection, id)}, nil)
	return err
}
