package logdir

import "errors"

// Resolution errors. Returned errors wrap one of these with a detail describing
// the phase that failed; match with errors.Is.
var (
	// ErrPlatformRootUnavailable means the OS data directory could not be determined.
	ErrPlatformRootUnavailable = errors.New("couldn't determine platform data directory")

	// ErrDirectoryNotFound means the expected root directory is absent.
	ErrDirectoryNotFound = errors.New("logfile directory does not exist")

	// ErrDirectoryIterationFailed means the OS reported an error mid-enumeration.
	ErrDirectoryIterationFailed = errors.New("directory iteration failed")

	// ErrLogDirectoryNotFound means enumeration succeeded but no marker file was seen.
	ErrLogDirectoryNotFound = errors.New("unable to find current log directory")
)

// Kind returns a short stable name for the resolution error class of err,
// or "unknown" when err does not wrap one of the package errors.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrPlatformRootUnavailable):
		return "PlatformRootUnavailable"
	case errors.Is(err, ErrDirectoryNotFound):
		return "DirectoryNotFound"
	case errors.Is(err, ErrDirectoryIterationFailed):
		return "DirectoryIterationFailed"
	case errors.Is(err, ErrLogDirectoryNotFound):
		return "LogDirectoryNotFound"
	default:
		return "unknown"
	}
}
