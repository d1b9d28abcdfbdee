package listing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fashionstore/storefront/internal/core/domain"
)

// Direction is a sort direction in the store's convention.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// SortField is one key of a sort specification.
type SortField struct {
	Field     string
	Direction Direction
}

// SortSpec is an ordered list of sort keys; earlier keys take precedence.
type SortSpec []SortField

// DefaultSort orders newest products first.
var DefaultSort = SortSpec{{Field: "created", Direction: Descending}}

// sortable lists the product fields a client may sort on.
var sortable = map[string]struct{}{
	"name":     {},
	"price":    {},
	"quantity": {},
	"created":  {},
	"updated":  {},
	"slug":     {},
}

// ParseSort decodes a JSON object mapping field names to directions, e.g.
// {"price":-1,"name":"asc"}. Key order is preserved. An empty string yields
// DefaultSort. Anything else that is not a non-empty object of sortable fields
// with recognised directions wraps domain.ErrInvalidSortSpec.
func ParseSort(raw string) (SortSpec, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultSort, nil
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, invalidSort("%v", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, invalidSort("expected an object")
	}

	var spec SortSpec
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, invalidSort("%v", err)
		}
		field, _ := tok.(string)
		if _, ok := sortable[field]; !ok {
			return nil, invalidSort("field %q is not sortable", field)
		}
		if _, dup := seen[field]; dup {
			return nil, invalidSort("field %q repeated", field)
		}
		seen[field] = struct{}{}

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, invalidSort("%v", err)
		}
		dir, err := parseDirection(value)
		if err != nil {
			return nil, err
		}
		spec = append(spec, SortField{Field: field, Direction: dir})
	}

	if tok, err := dec.Token(); err != nil || tok != json.Delim('}') {
		return nil, invalidSort("unterminated object")
	}
	if _, err := dec.Token(); err == nil {
		return nil, invalidSort("trailing data")
	}
	if len(spec) == 0 {
		return nil, invalidSort("no sort fields")
	}
	return spec, nil
}

func parseDirection(v any) (Direction, error) {
	switch d := v.(type) {
	case json.Number:
		switch d.String() {
		case "1":
			return Ascending, nil
		case "-1":
			return Descending, nil
		}
	case string:
		switch strings.ToLower(d) {
		case "asc", "ascending":
			return Ascending, nil
		case "desc", "descending":
			return Descending, nil
		}
	}
	return 0, invalidSort("unsupported direction %v", v)
}

func invalidSort(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidSortSpec, fmt.Sprintf(format, args...))
}
