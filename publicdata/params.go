package publicdata

// paramRenames maps the library's domain parameter names onto the
// upstream's expected names. Unknown keys pass through unchanged.
var paramRenames = map[string]string{
	"page_no":        "pageNo",
	"num_of_rows":    "numOfRows",
	"business_name":  "businessName",
	"business_type":  "businessType",
	"content_type":   "contentType",
	"business_field": "businessField",
}

// remapParams translates domain parameter names to upstream names.
// Empty values are omitted entirely.
func remapParams(params map[string]string) map[string]string {
	out := make(map[string]string, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		if upstream, ok := paramRenames[k]; ok {
			k = upstream
		}
		out[k] = v
	}
	return out
}
