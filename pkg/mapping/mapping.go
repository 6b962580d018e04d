package mapping

import "time"

// Pointer returns a pointer to v. Used when building nullable view fields.
func Pointer[T any](v T) *T {
	return &v
}

// TimeOrNil maps the zero time to nil.
func TimeOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
