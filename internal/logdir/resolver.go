// Package logdir locates the current log directory beneath a version-partitioned
// data directory and lists the log files in it.
//
// A data root holds one directory per installed version ("2.8.1", "2", ...).
// Each version directory is walked once and every file is offered to an ordered
// list of marker rules. Each rule keeps the directory of its newest marker; the
// first rule with a winner selects the log directory.
package logdir

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/browserplus/logaccess/internal/localfs"
	"github.com/browserplus/logaccess/internal/logging"
)

// ModTimeFunc returns the write time for a marker file.
type ModTimeFunc func(entry localfs.FileEntry) (time.Time, error)

// Resolver finds log directories. It holds no state between calls and never
// writes to the filesystem.
type Resolver struct {
	logger  *logging.Logger
	modTime ModTimeFunc
}

// NewResolver creates a resolver that reads write times from the directory walk.
func NewResolver(logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Resolver{
		logger:  logger.Component("logdir"),
		modTime: entryModTime,
	}
}

func entryModTime(entry localfs.FileEntry) (time.Time, error) {
	return entry.ModTime, entry.InfoErr
}

// Mode describes one kind of resolution.
type Mode struct {
	// Name is used in error details and logs ("platform", "service").
	Name string

	// Versions selects which version directories are walked.
	Versions VersionFilter

	// Rules are the marker rules in priority order.
	Rules []MarkerRule
}

// HostMode resolves host application logs.
func HostMode() Mode {
	return Mode{Name: "platform", Versions: AnyVersion, Rules: HostRules()}
}

// ServiceMode resolves per-service logs.
func ServiceMode() Mode {
	return Mode{Name: "service", Versions: MajorOnly, Rules: ServiceRules()}
}

// ResolveHostLogs returns the .log files in the current host log directory
// beneath root (the host's versioned data directory).
func (r *Resolver) ResolveHostLogs(root string) ([]string, error) {
	if !localfs.IsDirectory(root) {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, root)
	}
	return r.Resolve(root, HostMode())
}

// ResolveServiceLogs returns the .log files in the current log directory of
// serviceName beneath serviceDataRoot. A service without a data directory has
// no logs, which is not an error.
func (r *Resolver) ResolveServiceLogs(serviceDataRoot, serviceName string) ([]string, error) {
	root := filepath.Join(serviceDataRoot, serviceName)
	if !localfs.IsDirectory(root) {
		r.logger.Debug().Str("service", serviceName).Str("dir", root).Msg("No data directory for service")
		return []string{}, nil
	}

	paths, err := r.Resolve(root, ServiceMode())
	if err != nil {
		return nil, fmt.Errorf("service %s: %w", serviceName, err)
	}
	return paths, nil
}

// Resolve runs the version scan, marker walk and listing for an existing root.
func (r *Resolver) Resolve(root string, mode Mode) ([]string, error) {
	for _, rule := range mode.Rules {
		if err := rule.Validate(); err != nil {
			return nil, err
		}
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDirectoryNotFound, root, err)
	}

	versionDirs, err := r.versionDirs(absRoot, mode)
	if err != nil {
		return nil, err
	}

	winner, rule, err := r.findLogDir(versionDirs, mode)
	if err != nil {
		return nil, err
	}

	r.logger.Debug().
		Str("mode", mode.Name).
		Str("rule", rule).
		Str("dir", winner.Dir).
		Bool("has_time", winner.HasTime).
		Msg("Selected log directory")

	return r.listLogFiles(winner.Dir, mode)
}

// versionDirs returns the immediate children of root named as versions
// accepted by the mode. Order is irrelevant.
func (r *Resolver) versionDirs(root string, mode Mode) ([]string, error) {
	entries, err := localfs.ListDirectory(root, localfs.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: unable to iterate thru %s data dir %s: %w",
			ErrDirectoryIterationFailed, mode.Name, root, err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir {
			continue
		}
		v, ok := ParseVersionTag(e.Name)
		if !ok || !mode.Versions(v) {
			continue
		}
		dirs = append(dirs, e.Path)
	}

	r.logger.Debug().Str("mode", mode.Name).Int("candidates", len(dirs)).Msg("Found version directories")
	return dirs, nil
}

// findLogDir walks every version directory once, offering each regular file to
// all rules, and returns the winner of the highest priority rule that has one.
func (r *Resolver) findLogDir(versionDirs []string, mode Mode) (*Candidate, string, error) {
	trackers := make([]*tracker, len(mode.Rules))
	for i, rule := range mode.Rules {
		trackers[i] = &tracker{rule: rule}
	}

	for _, vdir := range versionDirs {
		err := localfs.WalkFiles(vdir, func(entry localfs.FileEntry) error {
			rel, err := filepath.Rel(vdir, entry.Path)
			if err != nil {
				return err
			}
			for _, t := range trackers {
				if !t.rule.Matches(rel) {
					continue
				}
				modTime, timeErr := r.modTime(entry)
				if timeErr != nil {
					r.logger.Debug().Err(timeErr).Str("file", entry.Path).Msg("Cannot read marker write time")
				}
				t.offer(filepath.Dir(entry.Path), modTime, timeErr)
			}
			return nil
		})
		if err != nil {
			return nil, "", fmt.Errorf("%w: unable to iterate thru %s version dir %s: %w",
				ErrDirectoryIterationFailed, mode.Name, vdir, err)
		}
	}

	for _, t := range trackers {
		if t.best != nil {
			return t.best, t.rule.Name, nil
		}
	}
	return nil, "", ErrLogDirectoryNotFound
}

// listLogFiles returns the regular files directly in dir whose extension is
// exactly ".log". The comparison is case-sensitive on every platform.
func (r *Resolver) listLogFiles(dir string, mode Mode) ([]string, error) {
	entries, err := localfs.ListDirectory(dir, localfs.ListOptions{FilesOnly: true})
	if err != nil {
		return nil, fmt.Errorf("%w: unable to iterate thru %s log dir %s: %w",
			ErrDirectoryIterationFailed, mode.Name, dir, err)
	}

	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if filepath.Ext(e.Name) == LogExtension {
			paths = append(paths, e.Path)
		}
	}
	return paths, nil
}
