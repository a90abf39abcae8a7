// Package ipc carries log requests between the browser host (or the CLI) and
// the LogAccess server as newline-delimited JSON over a local socket or,
// on Windows, a named pipe.
package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/browserplus/logaccess/internal/logaccess"
)

// PipeName is the Windows named pipe path for IPC.
const PipeName = `\\.\pipe\browserplus-logaccess`

// Method identifies the operation a request invokes.
type Method string

const (
	MethodGet            Method = logaccess.MethodGet
	MethodGetServiceLogs Method = logaccess.MethodGetServiceLogs
	MethodDescribe       Method = "describe"
)

// Error codes produced by the transport itself. Service errors carry the
// codes defined in package logaccess.
const (
	CodeInvalidRequest = "bp.invalidRequest"
	CodeInternalError  = "bp.internalError"
)

// Request represents an IPC request from client to server.
type Request struct {
	// ID correlates the response with the request. Clients fill it with a UUID.
	ID string `json:"id"`

	Method Method `json:"method"`

	// Origin is the URI of the page that initiated the call.
	Origin string `json:"origin"`

	// Args holds method arguments as decoded JSON values.
	Args map[string]interface{} `json:"args,omitempty"`
}

// Response represents an IPC response from server to client.
type Response struct {
	ID      string      `json:"id"`
	Success bool        `json:"success"`
	Code    string      `json:"code,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// FilesData is the payload of a successful get or getServiceLogs call.
type FilesData struct {
	Files []string `json:"files"`
}

// RemoteError is a failure reported by the server.
type RemoteError struct {
	Code   string
	Detail string
}

func (e *RemoteError) Error() string {
	if e.Detail == "" {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// NewRequest creates a request for method on behalf of origin.
func NewRequest(id string, method Method, origin string) *Request {
	return &Request{ID: id, Method: method, Origin: origin}
}

// NewServiceLogsRequest creates a getServiceLogs request.
func NewServiceLogsRequest(id, origin string, services []string) *Request {
	list := make([]interface{}, len(services))
	for i, s := range services {
		list[i] = s
	}
	req := NewRequest(id, MethodGetServiceLogs, origin)
	req.Args = map[string]interface{}{"services": list}
	return req
}

// NewFilesResponse creates a success response listing files.
func NewFilesResponse(id string, files []string) *Response {
	if files == nil {
		files = []string{}
	}
	return &Response{ID: id, Success: true, Data: &FilesData{Files: files}}
}

// NewDescribeResponse creates a success response carrying the description.
func NewDescribeResponse(id string, desc logaccess.Description) *Response {
	return &Response{ID: id, Success: true, Data: &desc}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(id, code, detail string) *Response {
	return &Response{ID: id, Success: false, Code: code, Error: detail}
}

// Encode serializes a request to JSON.
func (r *Request) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// Encode serializes a response to JSON.
func (r *Response) Encode() ([]byte, error) {
	return json.Marshal(r)
}

// DecodeRequest deserializes a request from JSON.
func DecodeRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// DecodeResponse deserializes a response from JSON.
func DecodeResponse(data []byte) (*Response, error) {
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Services returns the "services" argument. ok is false when the argument is
// absent or not a list. Entries that are not strings are skipped.
func (r *Request) Services() (services []string, ok bool) {
	raw, found := r.Args["services"]
	if !found {
		return nil, false
	}
	list, isList := raw.([]interface{})
	if !isList {
		return nil, false
	}
	services = make([]string, 0, len(list))
	for _, v := range list {
		if s, isString := v.(string); isString {
			services = append(services, s)
		}
	}
	return services, true
}

// Err returns the response's failure as a *RemoteError, or nil on success.
func (r *Response) Err() error {
	if r.Success {
		return nil
	}
	return &RemoteError{Code: r.Code, Detail: r.Error}
}

// GetFilesData extracts FilesData from a response.
// Returns nil if the response doesn't contain a file list.
func (r *Response) GetFilesData() *FilesData {
	var files FilesData
	if !r.decodeData(&files) || files.Files == nil {
		return nil
	}
	return &files
}

// GetDescription extracts the service description from a response.
// Returns nil if the response doesn't contain one.
func (r *Response) GetDescription() *logaccess.Description {
	var desc logaccess.Description
	if !r.decodeData(&desc) || desc.Name == "" {
		return nil
	}
	return &desc
}

// decodeData converts Data into out. Data is a concrete type on the server
// side and a map[string]interface{} after a JSON round trip.
func (r *Response) decodeData(out interface{}) bool {
	if r.Data == nil {
		return false
	}
	data, err := json.Marshal(r.Data)
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}
