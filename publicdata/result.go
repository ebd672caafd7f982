package publicdata

import (
	"github.com/sinbum/korea-public-data-be-sub000/schema"
)

// Result is the typed outcome of one upstream call. Exactly one of Items
// and Err is meaningfully populated: a failed call carries an error string
// and status code, a successful one carries the validated items plus the
// envelope's counts.
type Result struct {
	// Success reports whether the call produced validated data.
	Success bool
	// Items are the validated typed records. May be a subset of the
	// envelope's rows when individual rows failed validation.
	Items []schema.Item
	// Err is the human-readable failure description (empty on success).
	Err string
	// StatusCode is the final HTTP status (0 when no response arrived).
	StatusCode int
	// TotalCount is the envelope's total record count.
	TotalCount int
	// CurrentCount is the envelope's per-page record count.
	CurrentCount int
}

// failure builds a failed result.
func failure(err error, statusCode int) *Result {
	return &Result{
		Success:    false,
		Err:        err.Error(),
		StatusCode: statusCode,
	}
}

// ItemsAs filters a result's items down to one concrete type.
//
//	announcements := publicdata.ItemsAs[schema.Announcement](res)
func ItemsAs[T schema.Item](r *Result) []T {
	if r == nil {
		return nil
	}
	out := make([]T, 0, len(r.Items))
	for _, item := range r.Items {
		if typed, ok := item.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
