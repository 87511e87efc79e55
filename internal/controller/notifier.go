package controller

// Notifier shows messages to the user, it is the only way controllers talk back
type Notifier interface {
	Info(title, message string)
	Error(title, message string)
}

const (
	titleSuccess         = "Success"
	titleValidationError = "Validation Error"
	titleDatabaseError   = "Database Error"
)
