package envelope

import (
	"encoding/xml"
	"strconv"
)

// xmlDocument mirrors the tag-based row/column format: scalar metadata
// tags followed by a data element of repeated item elements, each holding
// named col children.
type xmlDocument struct {
	CurrentCount string  `xml:"currentCount"`
	MatchCount   string  `xml:"matchCount"`
	Page         string  `xml:"page"`
	PerPage      string  `xml:"perPage"`
	TotalCount   string  `xml:"totalCount"`
	Data         xmlData `xml:"data"`
}

type xmlData struct {
	Items []xmlItem `xml:"item"`
}

type xmlItem struct {
	Cols []xmlCol `xml:"col"`
}

type xmlCol struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// normalizeXML converts a tag-based document into the canonical envelope.
// Metadata counts default to 0 and page/perPage to 1 when absent or
// non-numeric.
func normalizeXML(body []byte) (*Envelope, error) {
	var doc xmlDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, &ParseError{Format: FormatXML, Raw: body, Err: err}
	}

	items := make([]map[string]any, 0, len(doc.Data.Items))
	for _, item := range doc.Data.Items {
		row := make(map[string]any, len(item.Cols))
		for _, col := range item.Cols {
			row[col.Name] = col.Value
		}
		items = append(items, row)
	}

	return &Envelope{
		CurrentCount: xmlInt(doc.CurrentCount, 0),
		MatchCount:   xmlInt(doc.MatchCount, 0),
		Page:         xmlInt(doc.Page, 1),
		PerPage:      xmlInt(doc.PerPage, 1),
		TotalCount:   xmlInt(doc.TotalCount, 0),
		Items:        items,
	}, nil
}

// xmlInt parses a scalar tag value, falling back to def when absent or
// non-numeric.
func xmlInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
