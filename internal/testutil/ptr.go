package testutil

// Ptr returns a pointer to v, for filling optional input fields
func Ptr[T any](v T) *T {
	return &v
}
