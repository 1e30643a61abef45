package ui

import (
	"fmt"

	"github.com/ytget/mp3get/internal/model"
	"github.com/ytget/mp3get/internal/platform"
)

// StatusText returns the status line shown under the progress bar
func StatusText(task *model.DownloadTask) string {
	switch task.State {
	case model.TaskStatePending:
		return "Waiting to start..."
	case model.TaskStateResolving:
		return "Resolving audio stream..."
	case model.TaskStateDownloading:
		return "Downloading " + transferText(task)
	case model.TaskStateEncoding:
		return "Converting " + transferText(task)
	case model.TaskStateWriting:
		return "Saving " + transferText(task)
	case model.TaskStateCompleted:
		return "Saved to " + task.Request.DestinationPath
	case model.TaskStateCancelled:
		return "Cancelled"
	case model.TaskStateFailed:
		if task.ErrorDetail != "" {
			return "Failed: " + task.ErrorDetail
		}
		return "Failed"
	default:
		return ""
	}
}

// transferText renders transferred bytes, with the total when known
func transferText(task *model.DownloadTask) string {
	transferred := platform.FormatBytes(uint64(task.BytesTransferred))
	if task.TotalBytes > 0 {
		return fmt.Sprintf("%s / %s", transferred, platform.FormatBytes(uint64(task.TotalBytes)))
	}
	return transferred
}
