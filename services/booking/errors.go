package booking

import "fmt"

// Admission error codes. Validation and auth failures are produced before the
// transaction opens; policy rejections are produced inside it, against the
// freshest committed state.
const (
	CodeUnauthenticated           = "unauthenticated"
	CodeValidation                = "validationError"
	CodeNotFound                  = "notFound"
	CodeDuplicateSubmission       = "duplicateSubmission"
	CodeFacilityExclusivelyBooked = "facilityExclusivelyBooked"
	CodeMaxConcurrentExceeded     = "maxConcurrentExceeded"
	CodeCapacityExceeded          = "capacityExceeded"
	CodeInternal                  = "internal"
)

// AdmissionError is the typed rejection returned by the booking engine.
type AdmissionError struct {
	Code    string
	Message string
}

func (e *AdmissionError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewAdmissionError(code, format string, args ...interface{}) *AdmissionError {
	return &AdmissionError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Retryable reports whether the caller may safely retry the same request.
func (e *AdmissionError) Retryable() bool {
	return e.Code == CodeInternal
}
