// Package version provides build version information for the application.
// This is a separate package to avoid import cycles between cli and logaccess packages.
package version

// Version is the build version string, set by ldflags during build.
// The service description reported to callers uses ServiceVersion instead.
var Version = "v1.3.0"

// ServiceVersion is the version advertised in the LogAccess service description.
const ServiceVersion = "1.3.0"

// BuildTime is the build timestamp, set by ldflags during build.
var BuildTime = "unknown"
