package platform

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Query methods
const (
	MethodEqual     = "equal"
	MethodSearch    = "search"
	MethodOrderAsc  = "orderAsc"
	MethodOrderDesc = "orderDesc"
	MethodLimit     = "limit"
	MethodOffset    = "offset"
)

// Query is a single list filter, ordering or paging instruction
type Query struct {
	Method    string `json:"method"`
	Attribute string `json:"attribute,omitempty"`
	Values    []any  `json:"values,omitempty"`
}

// Equal matches documents whose attribute equals any of values
func Equal(attribute string, values ...any) Query {
	return Query{Method: MethodEqual, Attribute: attribute, Values: values}
}

// Search matches documents whose attribute contains term
func Search(attribute, term string) Query {
	return Query{Method: MethodSearch, Attribute: attribute, Values: []any{term}}
}

func OrderAsc(attribute string) Query {
	return Query{Method: MethodOrderAsc, Attribute: attribute}
}

func OrderDesc(attribute string) Query {
	return Query{Method: MethodOrderDesc, Attribute: attribute}
}

func Limit(n int) Query {
	return Query{Method: MethodLimit, Values: []any{n}}
}

func Offset(n int) Query {
	return Query{Method: MethodOffset, Values: []any{n}}
}

// String encodes the query in the wire format
func (q Query) String() string {
	data, err := json.Marshal(q)
	if err != nil {
		return fmt.Sprintf(`{"method":%q}`, q.Method)
	}
	return string(data)
}

// ParseQuery decodes a query from the wire format
func ParseQuery(s string) (Query, error) {
	var q Query
	if err := json.Unmarshal([]byte(s), &q); err != nil {
		return Query{}, fmt.Errorf("invalid query %q: %w", s, err)
	}
	if q.Method == "" {
		return Query{}, fmt.Errorf("invalid query %q: missing method", s)
	}
	return q, nil
}

// IntValue returns the first value as an int (limit and offset queries)
func (q Query) IntValue() (int, bool) {
	if len(q.Values) == 0 {
		return 0, false
	}
	switch v := q.Values[0].(type) {
	case int:
		return v, true
	case float64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(v)
		return n, err == nil
	}
	return 0, false
}
