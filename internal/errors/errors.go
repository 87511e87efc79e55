package errors

// ValidationErr is raised when form input is rejected before reaching storage
type ValidationErr struct {
	field   string
	message string
}

func (e *ValidationErr) Error() string {
	return e.message
}

// Field returns name of the first field which failed validation
func (e *ValidationErr) Field() string {
	return e.field
}

func NewValidationErr(field string, msg string) *ValidationErr {
	return &ValidationErr{
		field:   field,
		message: msg,
	}
}

// StorageErr wraps any failure of the persistence layer, message is kept verbatim
type StorageErr struct {
	err error
}

func (e *StorageErr) Error() string {
	return e.err.Error()
}

func (e *StorageErr) Unwrap() error {
	return e.err
}

func NewStorageErr(err error) *StorageErr {
	return &StorageErr{err: err}
}
