package model

// RunStatus represents the status of one download run
type RunStatus string

const (
	// RunStatusIdle means no run has started yet
	RunStatusIdle RunStatus = "Idle"

	// RunStatusPreparing means options are being translated
	RunStatusPreparing RunStatus = "Preparing"

	// RunStatusDownloading means the engine is transferring data
	RunStatusDownloading RunStatus = "Downloading"

	// RunStatusCompleted means the run finished successfully
	RunStatusCompleted RunStatus = "Completed"

	// RunStatusCancelled means the run was cancelled by the user
	RunStatusCancelled RunStatus = "Cancelled"

	// RunStatusError means the run failed
	RunStatusError RunStatus = "Error"
)

// String returns the string representation of RunStatus
func (rs RunStatus) String() string {
	return string(rs)
}

// IsActive returns true if a run is currently in flight
func (rs RunStatus) IsActive() bool {
	return rs == RunStatusPreparing || rs == RunStatusDownloading
}

// IsFinished returns true if the run reached a terminal state
func (rs RunStatus) IsFinished() bool {
	return rs == RunStatusCompleted || rs == RunStatusCancelled || rs == RunStatusError
}
