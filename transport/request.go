package transport

// Request describes one outbound upstream request. It is a plain value;
// auth strategies and the client copy it instead of mutating shared state.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is appended to the transport's base URL. A full URL is allowed
	// when the base URL is empty.
	Path string
	// Query are URL query parameters.
	Query map[string]string
	// Headers are request-specific headers.
	Headers map[string]string
}

// Clone returns a deep copy of the request. Map fields are duplicated so
// the copy can be modified freely.
func (r Request) Clone() Request {
	out := r
	if r.Query != nil {
		out.Query = make(map[string]string, len(r.Query))
		for k, v := range r.Query {
			out.Query[k] = v
		}
	}
	if r.Headers != nil {
		out.Headers = make(map[string]string, len(r.Headers))
		for k, v := range r.Headers {
			out.Headers[k] = v
		}
	}
	return out
}

// SetQuery sets a query parameter, allocating the map if needed.
func (r *Request) SetQuery(key, value string) {
	if r.Query == nil {
		r.Query = make(map[string]string)
	}
	r.Query[key] = value
}

// SetHeader sets a header, allocating the map if needed.
func (r *Request) SetHeader(key, value string) {
	if r.Headers == nil {
		r.Headers = make(map[string]string)
	}
	r.Headers[key] = value
}

// Response is the raw result of one attempt.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers, flattened to single values.
	Headers map[string]string
	// Body is the raw response body.
	Body []byte
}

// IsSuccess returns true for 2xx status codes.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
