package common

import "errors"

// ErrorKind classifies a business rule failure so the HTTP layer can pick a status code
type ErrorKind byte

const (
	KindValidation ErrorKind = iota + 1
	KindConflict
	KindPermission
	KindNotFound
	KindStateGuard
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindPermission:
		return "permission"
	case KindNotFound:
		return "not_found"
	case KindStateGuard:
		return "state_guard"
	default:
		return "unknown"
	}
}

// Error codes shared with API clients
const (
	CodeValidation                   = "ValidationError"
	CodeNotFound                     = "NotFound"
	CodeForbidden                    = "Forbidden"
	CodeDateConflict                 = "DateConflictError"
	CodeOutsideOfRegistryDate        = "OutsideOfRegistryDate"
	CodeNoVacancyOnActivity          = "NoVacancyOnActivity"
	CodeAlreadyRegisteredOnActivity  = "AlreadyRegisteredOnActivity"
	CodeRegistryHasPresences         = "RegistryHasPresences"
	CodeActivityDeleteHasRegistry    = "ActivityDeleteHasRegistry"
	CodeActivityHasPresencesArchived = "ActivityHasPresencesArchived"
	CodeActivityDeleteHasHappened    = "ActivityDeleteHasHappened"
	CodeActivityDeleteIsHappening    = "ActivityDeleteIsHappening"
	CodeEventDeleteHasRegistry       = "EventDeleteHasRegistry"
	CodeRatingNotAllowed             = "RatingNotAllowed"
	CodeCertificateBeforeEventEnd    = "CertificateBeforeEventEnd"
	CodeEmailAlreadyInUse            = "EmailAlreadyInUse"
	CodeInvalidCredentials           = "InvalidCredentials"
)

// BusinessError is the single recoverable, user-facing error type of the API.
// Kind selects the HTTP status, Code identifies the rule, Data and Fields carry
// structured detail (conflict records, field messages).
type BusinessError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Data    any
	Fields  map[string]string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// Is matches business errors by code, so sentinels work with errors.Is even when
// a copy carrying Data was returned.
func (e *BusinessError) Is(target error) bool {
	t, ok := target.(*BusinessError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithData returns a copy of the error carrying the given payload
func (e *BusinessError) WithData(data any) *BusinessError {
	cp := *e
	cp.Data = data
	return &cp
}

var (
	ErrOutsideOfRegistryDate = &BusinessError{
		Kind:    KindStateGuard,
		Code:    CodeOutsideOfRegistryDate,
		Message: "the event is not accepting registrations at this moment",
	}
	ErrNoVacancyOnActivity = &BusinessError{
		Kind:    KindStateGuard,
		Code:    CodeNoVacancyOnActivity,
		Message: "there are no vacancies left on this activity",
	}
	ErrAlreadyRegisteredOnActivity = &BusinessError{
		Kind:    KindStateGuard,
		Code:    CodeAlreadyRegisteredOnActivity,
		Message: "user is already registered on this activity",
	}
	ErrRegistryHasPresences = &BusinessError{
		Kind:    KindStateGuard,
		Code:    CodeRegistryHasPresences,
		Message: "registry has presences and cannot be cancelled",
	}
	ErrActivityDeleteHasRegistry = &BusinessError{
		Kind:    KindStateGuard,
		Code:    CodeActivityDeleteHasRegistry,
		Message: "activity has registries and cannot be deleted",
	}
	ErrActivityHasPresencesArchived = &BusinessError{
		Kind:    KindStateGuard,
		Code:    CodeActivityHasPresencesArchived,
		Message: "activity has archived presences",
	}
	ErrActivityDeleteHasHappened = &BusinessError{
		Kind:    KindStateGuard,
		Code:    CodeActivityDeleteHasHappened,
		Message: "activity belongs to an event that already happened",
	}
	ErrActivityDeleteIsHappening = &BusinessError{
		Kind:    KindStateGuard,
		Code:    CodeActivityDeleteIsHappening,
		Message: "activity belongs to an event that is happening now",
	}
	ErrEventDeleteHasRegistry = &BusinessError{
		Kind:    KindStateGuard,
		Code:    CodeEventDeleteHasRegistry,
		Message: "event has activities with registries and cannot be deleted",
	}
	ErrRatingNotAllowed = &BusinessError{
		Kind:    KindStateGuard,
		Code:    CodeRatingNotAllowed,
		Message: "only attendees ready for certificate can rate an activity",
	}
	ErrCertificateBeforeEventEnd = &BusinessError{
		Kind:    KindStateGuard,
		Code:    CodeCertificateBeforeEventEnd,
		Message: "certificates can only be issued after the event ends",
	}
	ErrEmailAlreadyInUse = &BusinessError{
		Kind:    KindConflict,
		Code:    CodeEmailAlreadyInUse,
		Message: "email is already in use",
	}
	ErrInvalidCredentials = &BusinessError{
		Kind:    KindPermission,
		Code:    CodeInvalidCredentials,
		Message: "invalid email or password",
	}
	ErrForbidden = &BusinessError{
		Kind:    KindPermission,
		Code:    CodeForbidden,
		Message: "you do not have permission to perform this action",
	}
	ErrDateConflict = &BusinessError{
		Kind:    KindConflict,
		Code:    CodeDateConflict,
		Message: "one or more schedules conflict with existing schedules",
	}
)

// NewNotFound builds a not-found error for the given resource name
func NewNotFound(resource string) *BusinessError {
	return &BusinessError{
		Kind:    KindNotFound,
		Code:    CodeNotFound,
		Message: resource + " not found",
	}
}

// NewValidationError builds a validation error with field level messages
func NewValidationError(fields map[string]string) *BusinessError {
	return &BusinessError{
		Kind:    KindValidation,
		Code:    CodeValidation,
		Message: "validation failed",
		Fields:  fields,
	}
}

// IsNotFound reports whether err is a not-found business error
func IsNotFound(err error) bool {
	var be *BusinessError
	return errors.As(err, &be) && be.Kind == KindNotFound
}

// AsBusinessError unwraps err into a BusinessError when possible
func AsBusinessError(err error) (*BusinessError, bool) {
	var be *BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
