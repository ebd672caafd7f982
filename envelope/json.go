package envelope

import (
	"encoding/json"
	"strconv"
)

// normalizeJSON handles both accepted JSON shapes: the nested
// response.body envelope and the already-canonical flat object.
func normalizeJSON(body []byte) (*Envelope, error) {
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, &ParseError{Format: FormatJSON, Raw: body, Err: err}
	}

	if nested := nestedBody(doc); nested != nil {
		items := itemList(nested["items"])
		return &Envelope{
			CurrentCount: len(items),
			MatchCount:   intField(nested, "totalCount"),
			Page:         intField(nested, "pageNo"),
			PerPage:      intField(nested, "numOfRows"),
			TotalCount:   intField(nested, "totalCount"),
			Items:        items,
		}, nil
	}

	// Any other JSON object is treated as already canonical; unknown
	// fields are ignored.
	return &Envelope{
		CurrentCount: intField(doc, "currentCount"),
		MatchCount:   intField(doc, "matchCount"),
		Page:         intField(doc, "page"),
		PerPage:      intField(doc, "perPage"),
		TotalCount:   intField(doc, "totalCount"),
		Items:        itemList(doc["data"]),
	}, nil
}

// nestedBody returns response.body when the document has the nested
// envelope shape, nil otherwise.
func nestedBody(doc map[string]any) map[string]any {
	resp, ok := doc["response"].(map[string]any)
	if !ok {
		return nil
	}
	body, ok := resp["body"].(map[string]any)
	if !ok {
		return nil
	}
	return body
}

// itemList extracts object rows from a JSON array, skipping non-objects.
func itemList(v any) []map[string]any {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(raw))
	for _, entry := range raw {
		if row, ok := entry.(map[string]any); ok {
			items = append(items, row)
		}
	}
	return items
}

// intField coerces a JSON field to int. Numbers, numeric strings, and
// absent values are all tolerated; anything else counts as zero.
func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	default:
		return 0
	}
}
