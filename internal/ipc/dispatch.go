package ipc

import (
	"fmt"

	"github.com/browserplus/logaccess/internal/logaccess"
)

// Handler performs the operations exposed over IPC. *logaccess.Service
// implements it.
type Handler interface {
	Get(origin string) ([]string, error)
	GetServiceLogs(origin string, services []string) ([]string, error)
	Describe() logaccess.Description
}

// Dispatch invokes the handler method named by req and builds the response.
// It never panics on malformed input.
func Dispatch(h Handler, req *Request) *Response {
	switch req.Method {
	case MethodGet:
		files, err := h.Get(req.Origin)
		if err != nil {
			return errorResponse(req.ID, err)
		}
		return NewFilesResponse(req.ID, files)

	case MethodGetServiceLogs:
		// A missing or mistyped argument is reported by the service after its
		// permission check.
		services, _ := req.Services()
		files, err := h.GetServiceLogs(req.Origin, services)
		if err != nil {
			return errorResponse(req.ID, err)
		}
		return NewFilesResponse(req.ID, files)

	case MethodDescribe:
		return NewDescribeResponse(req.ID, h.Describe())

	default:
		return NewErrorResponse(req.ID, CodeInvalidRequest, fmt.Sprintf("unknown method: %q", req.Method))
	}
}

func errorResponse(id string, err error) *Response {
	if se, ok := logaccess.AsServiceError(err); ok {
		return NewErrorResponse(id, se.Code, se.Detail)
	}
	return NewErrorResponse(id, logaccess.CodeCouldntGetLogs, err.Error())
}
