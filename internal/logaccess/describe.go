package logaccess

import "github.com/browserplus/logaccess/internal/version"

// Description documents the service and its methods for callers.
type Description struct {
	Name    string              `json:"name"`
	Version string              `json:"version"`
	Doc     string              `json:"doc"`
	Methods []MethodDescription `json:"methods"`
}

// MethodDescription documents one callable method.
type MethodDescription struct {
	Name      string                `json:"name"`
	Doc       string                `json:"doc"`
	Arguments []ArgumentDescription `json:"arguments,omitempty"`
}

// ArgumentDescription documents one method argument.
type ArgumentDescription struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Required bool   `json:"required"`
	Doc      string `json:"doc"`
}

// Method names.
const (
	MethodGet            = "get"
	MethodGetServiceLogs = "getServiceLogs"
)

// Describe returns the service description.
func Describe() Description {
	return Description{
		Name:    "LogAccess",
		Version: version.ServiceVersion,
		Doc:     "Lets you get file handles for BrowserPlus log files from a webpage.",
		Methods: []MethodDescription{
			{
				Name: MethodGet,
				Doc:  `Returns a list in "files" of filehandles associated with BrowserPlus logfiles.`,
			},
			{
				Name: MethodGetServiceLogs,
				Doc:  `Returns a list in "files" of filehandles associated with BrowserPlus service logfiles.`,
				Arguments: []ArgumentDescription{
					{
						Name:     "services",
						Type:     "list",
						Required: true,
						Doc:      "A list of service names whose logs are fetched.",
					},
				},
			},
		},
	}
}
