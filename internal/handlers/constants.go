package handlers

const (
	ErrInvalidFormData     = "Invalid form data"
	ErrInternalServerError = "Internal server error"
	ErrStoreUnavailable    = "Database unavailable"
)
