package localfs

// ListOptions configures the behavior of ListDirectory.
type ListOptions struct {
	// FilesOnly drops directories and other non-regular entries.
	FilesOnly bool
}
