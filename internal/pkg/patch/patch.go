package patch

// Coalesce returns the value pointed to by ptr if it's not nil, otherwise returns fallback
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr != nil {
		return *ptr
	}
	return fallback
}

// Ptr returns a pointer to v, for building partial updates.
func Ptr[T any](v T) *T {
	return &v
}
