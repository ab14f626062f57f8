package uploadlog

import "time"

// Status is the lifecycle state of a recorded upload.
type Status string

const (
	StatusUploading Status = "uploading"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Record is one upload attempt.
type Record struct {
	ID         string    `json:"id"`
	SourcePath string    `json:"source_path"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	FactoryID  string    `json:"factory_id"`
	Profiles   []string  `json:"profiles,omitempty"`
	Location   string    `json:"location,omitempty"`
	Status     Status    `json:"status"`
	BytesSent  int64     `json:"bytes_sent"`
	Error      string    `json:"error,omitempty"`
	ErrorKind  string    `json:"error_kind,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
}

// Finished reports whether the upload reached a terminal state.
func (r Record) Finished() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}
