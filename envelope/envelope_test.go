package envelope

import (
	"errors"
	"testing"
)

func TestNormalize_FlatJSON(t *testing.T) {
	body := []byte(`{
		"currentCount": 2,
		"matchCount": 2,
		"page": 1,
		"perPage": 10,
		"totalCount": 2,
		"data": [
			{"id": "a1", "title": "first"},
			{"id": "a2", "title": "second"}
		]
	}`)

	env, err := Normalize(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.TotalCount != 2 || env.CurrentCount != 2 || env.Page != 1 || env.PerPage != 10 {
		t.Errorf("unexpected metadata %+v", env)
	}
	if len(env.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(env.Items))
	}
	if env.Items[0]["id"] != "a1" {
		t.Errorf("unexpected first item %v", env.Items[0])
	}
}

func TestNormalize_NestedJSONMatchesFlat(t *testing.T) {
	nested := []byte(`{"response":{"body":{
		"numOfRows": 5,
		"totalCount": 5,
		"pageNo": 1,
		"items": [
			{"id": "a1"}, {"id": "a2"}, {"id": "a3"}, {"id": "a4"}, {"id": "a5"}
		]
	}}}`)
	flat := []byte(`{
		"currentCount": 5,
		"matchCount": 5,
		"page": 1,
		"perPage": 5,
		"totalCount": 5,
		"data": [
			{"id": "a1"}, {"id": "a2"}, {"id": "a3"}, {"id": "a4"}, {"id": "a5"}
		]
	}`)

	fromNested, err := Normalize(nested)
	if err != nil {
		t.Fatalf("nested: unexpected error: %v", err)
	}
	fromFlat, err := Normalize(flat)
	if err != nil {
		t.Fatalf("flat: unexpected error: %v", err)
	}

	if fromNested.CurrentCount != fromFlat.CurrentCount ||
		fromNested.MatchCount != fromFlat.MatchCount ||
		fromNested.Page != fromFlat.Page ||
		fromNested.PerPage != fromFlat.PerPage ||
		fromNested.TotalCount != fromFlat.TotalCount {
		t.Errorf("metadata mismatch: nested %+v vs flat %+v", fromNested, fromFlat)
	}
	if len(fromNested.Items) != len(fromFlat.Items) {
		t.Fatalf("item count mismatch: %d vs %d", len(fromNested.Items), len(fromFlat.Items))
	}
	for i := range fromNested.Items {
		if fromNested.Items[i]["id"] != fromFlat.Items[i]["id"] {
			t.Errorf("item %d mismatch", i)
		}
	}
}

func TestNormalize_MalformedJSONIsParseError(t *testing.T) {
	_, err := Normalize([]byte(`{"totalCount": `))

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Format != FormatJSON {
		t.Errorf("expected json format, got %s", perr.Format)
	}
	if len(perr.Raw) == 0 {
		t.Error("expected the raw content preserved")
	}
}

func TestNormalize_XMLRowColumns(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="UTF-8"?>
<response>
  <currentCount>2</currentCount>
  <matchCount>2</matchCount>
  <page>1</page>
  <perPage>10</perPage>
  <totalCount>2</totalCount>
  <data>
    <item>
      <col name="id">a1</col>
      <col name="title">first</col>
      <col name="organizationName">KISED</col>
    </item>
    <item>
      <col name="id">a2</col>
      <col name="title">second</col>
      <col name="organizationName">KISED</col>
    </item>
  </data>
</response>`)

	env, err := Normalize(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.CurrentCount != 2 || env.TotalCount != 2 {
		t.Errorf("unexpected metadata %+v", env)
	}
	if len(env.Items) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(env.Items))
	}
	for i, row := range env.Items {
		if len(row) != 3 {
			t.Errorf("row %d: expected 3 columns, got %d (%v)", i, len(row), row)
		}
	}
	if env.Items[1]["title"] != "second" {
		t.Errorf("unexpected row %v", env.Items[1])
	}
}

func TestNormalize_XMLDefaults(t *testing.T) {
	body := []byte(`<response><data><item><col name="id">a1</col></item></data></response>`)

	env, err := Normalize(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.CurrentCount != 0 || env.MatchCount != 0 || env.TotalCount != 0 {
		t.Errorf("expected zero counts, got %+v", env)
	}
	if env.Page != 1 || env.PerPage != 1 {
		t.Errorf("expected page/perPage defaulting to 1, got %+v", env)
	}
}

func TestNormalize_MalformedXMLIsParseError(t *testing.T) {
	_, err := Normalize([]byte(`<response><data>`))

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %v", err)
	}
	if perr.Format != FormatXML {
		t.Errorf("expected xml format, got %s", perr.Format)
	}
}

func TestNormalize_LenientFallbacks(t *testing.T) {
	tests := []struct {
		name string
		body []byte
	}{
		{"empty", []byte("")},
		{"whitespace", []byte("   \n\t  ")},
		{"plain text", []byte("service temporarily unavailable")},
		{"html-free prose", []byte("OK")},
	}
	for _, tt := range tests {
		env, err := Normalize(tt.body)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if len(env.Items) != 0 || env.TotalCount != 0 {
			t.Errorf("%s: expected empty envelope, got %+v", tt.name, env)
		}
	}
}

func TestNormalize_SniffsPastWhitespaceAndBOM(t *testing.T) {
	withWhitespace := []byte("\n\t  {\"totalCount\": 1, \"data\": [{\"id\": \"a1\"}]}")
	env, err := Normalize(withWhitespace)
	if err != nil {
		t.Fatalf("whitespace: unexpected error: %v", err)
	}
	if env.TotalCount != 1 || len(env.Items) != 1 {
		t.Errorf("whitespace: unexpected envelope %+v", env)
	}

	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<response><totalCount>3</totalCount></response>`)...)
	env, err = Normalize(withBOM)
	if err != nil {
		t.Fatalf("bom: unexpected error: %v", err)
	}
	if env.TotalCount != 3 {
		t.Errorf("bom: unexpected envelope %+v", env)
	}
}

func TestNormalize_NumericStringsCoerced(t *testing.T) {
	body := []byte(`{"totalCount": "17", "page": "2", "data": []}`)
	env, err := Normalize(body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.TotalCount != 17 || env.Page != 2 {
		t.Errorf("expected coerced counts, got %+v", env)
	}
}
