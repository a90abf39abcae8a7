package logdir

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// Marker file names written by the host application.
const (
	HostLogMarker    = "BrowserPlusCore.log"
	HostConfigMarker = "BrowserPlus.config"
	LogExtension     = ".log"
)

// MarkerRule identifies files whose parent directory is a log directory candidate.
// Pattern is a doublestar glob matched against the slash-separated path of a file
// relative to the version directory being walked.
type MarkerRule struct {
	Name    string
	Pattern string
}

// HostRules are the host log markers in priority order: the process log first,
// then the config file written on first run, before any log exists.
func HostRules() []MarkerRule {
	return []MarkerRule{
		{Name: "host-log", Pattern: "**/" + HostLogMarker},
		{Name: "host-config", Pattern: "**/" + HostConfigMarker},
	}
}

// ServiceRules match any log file a service writes.
func ServiceRules() []MarkerRule {
	return []MarkerRule{
		{Name: "service-log", Pattern: "**/*" + LogExtension},
	}
}

// Validate reports a malformed pattern.
func (r MarkerRule) Validate() error {
	if r.Pattern == "" || !doublestar.ValidatePattern(r.Pattern) {
		return fmt.Errorf("marker rule %q: invalid pattern %q", r.Name, r.Pattern)
	}
	return nil
}

// Matches reports whether rel (relative to the version directory) is a marker.
func (r MarkerRule) Matches(rel string) bool {
	ok, err := doublestar.Match(r.Pattern, filepath.ToSlash(rel))
	return err == nil && ok
}

// Candidate is a directory holding a marker file, with the marker's write time
// when it could be read.
type Candidate struct {
	Dir     string
	ModTime time.Time
	HasTime bool
}

// tracker keeps the best candidate seen so far for one rule.
type tracker struct {
	rule MarkerRule
	best *Candidate
}

// offer considers a marker match. The newest readable write time wins and ties
// keep the earlier match. A match whose time cannot be read is accepted only
// while nothing has been recorded yet, and any readable match replaces it.
func (t *tracker) offer(dir string, modTime time.Time, err error) bool {
	if err != nil {
		if t.best == nil {
			t.best = &Candidate{Dir: dir}
			return true
		}
		return false
	}

	if t.best == nil || !t.best.HasTime || modTime.After(t.best.ModTime) {
		t.best = &Candidate{Dir: dir, ModTime: modTime, HasTime: true}
		return true
	}
	return false
}
