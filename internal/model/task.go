package model

import (
	"strings"
	"time"
)

// TotalBytesUnknown is the TotalBytes value used when the source does not
// report a content length.
const TotalBytesUnknown int64 = -1

// DownloadRequest describes one URL to file conversion. It is immutable once
// the task starts.
type DownloadRequest struct {
	SourceURL       string
	DestinationPath string
}

// DownloadTask represents a single download-and-convert task. The task is
// owned by the download service for its lifetime; callers keep only the ID
// as a handle for progress queries and cancellation.
type DownloadTask struct {
	ID               string
	Request          DownloadRequest
	State            TaskState
	BytesTransferred int64
	TotalBytes       int64  // TotalBytesUnknown if the source reports no length
	Title            string // video title once resolved
	ErrorDetail      string // last error message if any
	StartedAt        time.Time
	FinishedAt       time.Time
}

// ProgressSnapshot is a non-blocking view of a running task, safe to read
// concurrently with task execution.
type ProgressSnapshot struct {
	State            TaskState
	BytesTransferred int64
	TotalBytes       int64
}

// Fraction returns progress in [0, 1], or 0 when the total is unknown
func (ps ProgressSnapshot) Fraction() float64 {
	if ps.TotalBytes <= 0 {
		return 0
	}
	f := float64(ps.BytesTransferred) / float64(ps.TotalBytes)
	if f > 1 {
		return 1
	}
	return f
}

// Snapshot returns the progress view of the task
func (dt *DownloadTask) Snapshot() ProgressSnapshot {
	return ProgressSnapshot{
		State:            dt.State,
		BytesTransferred: dt.BytesTransferred,
		TotalBytes:       dt.TotalBytes,
	}
}

// Clone returns a shallow copy for handing out past the service lock
func (dt *DownloadTask) Clone() *DownloadTask {
	c := *dt
	return &c
}

// GetDisplayTitle returns title, destination filename, or URL in order of preference
func (dt *DownloadTask) GetDisplayTitle() string {
	// First priority: video title (non-URL)
	if dt.Title != "" && !strings.HasPrefix(dt.Title, "http") {
		return dt.Title
	}

	// Second priority: filename from the destination path
	if dt.Request.DestinationPath != "" {
		parts := strings.FieldsFunc(dt.Request.DestinationPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return dt.Request.SourceURL
}
