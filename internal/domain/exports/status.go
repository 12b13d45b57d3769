package exports

// Status is the lifecycle state of an export job
type Status string

const (
	// StatusPending means the job is queued but no worker picked it up yet
	StatusPending Status = "pending"

	// StatusActive means a worker is assembling the archive
	StatusActive Status = "active"

	// StatusComplete means the archive is stored and can be downloaded
	StatusComplete Status = "complete"

	// StatusStopped means the user stopped the job before it finished
	StatusStopped Status = "stopped"

	// StatusFailed means the export aborted with an error
	StatusFailed Status = "failed"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal returns true once no further transition is possible
func (s Status) IsTerminal() bool {
	return s == StatusComplete || s == StatusStopped || s == StatusFailed
}
