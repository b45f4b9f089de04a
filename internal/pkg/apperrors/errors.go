package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrInvalidFormat      = errors.New("invalid token format")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Category errors
var (
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category with this name or slug already exists")
	ErrCategoryInactive      = errors.New("category is not active")
	ErrCategoryHasRelations  = errors.New("category has candidatures and cannot be deleted")
	ErrCategoryClassNotFound = errors.New("category class not found")
)

// Candidature errors
var (
	ErrCandidatureNotFound = errors.New("candidature not found")
	ErrDuplicateSubmission = errors.New("candidate already has a candidature in this category")
	ErrNotModifiable       = errors.New("candidature can no longer be modified")
	ErrInvalidTransition   = errors.New("candidature has already been reviewed")
	ErrMissingReason       = errors.New("rejection reason is required")
)

// Attachment errors
var (
	ErrMissingRequiredFiles = errors.New("required file kinds are missing")
	ErrInvalidFileKind      = errors.New("unknown file kind")
	ErrInvalidFileExtension = errors.New("file extension not allowed for this kind")
	ErrFileTooLarge         = errors.New("file exceeds the maximum allowed size")
	ErrDurationOutOfRange   = errors.New("media duration is outside the allowed range")
	ErrNoFilesProvided      = errors.New("at least one file is required")
)

// Vote errors
var (
	ErrAlreadyVoted          = errors.New("voter has already voted for this candidature")
	ErrCandidatureNotVotable = errors.New("candidature is not open for voting")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a new custom error for failed validations with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Code    string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
