package logaccess

import (
	"errors"
	"fmt"
)

// Error codes reported to the calling page.
const (
	CodePermissionDenied = "bp.permissionDenied"
	CodeCouldntGetLogs   = "bp.couldntGetLogs"
)

// ErrServicesMissing is the detail reported when getServiceLogs has no services.
var ErrServicesMissing = errors.New("required services parameter missing")

// ServiceError is the only error type returned by Service methods. Code is one
// of the Code constants; Detail is empty for permission errors.
type ServiceError struct {
	Code   string
	Detail string
}

func (e *ServiceError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

func permissionDenied() *ServiceError {
	return &ServiceError{Code: CodePermissionDenied}
}

func couldntGetLogs(err error) *ServiceError {
	return &ServiceError{Code: CodeCouldntGetLogs, Detail: err.Error()}
}

// AsServiceError extracts a ServiceError from err, if any.
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}
