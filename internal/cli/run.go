package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/ytget/mp3get/internal/config"
	"github.com/ytget/mp3get/internal/download"
	"github.com/ytget/mp3get/internal/encode"
	"github.com/ytget/mp3get/internal/model"
	"github.com/ytget/mp3get/internal/platform"
	"github.com/ytget/mp3get/internal/resolve"
)

const (
	progressInterval = 150 * time.Millisecond
	probeTimeout     = 15 * time.Second
	clearLine        = "\r\x1b[2K"
)

func runDownloads(entries []config.BatchEntry) error {
	client := resolve.NewClient(resolve.Config{Timeout: timeout})
	source := resolve.NewSource(client)

	var encoder download.Encoder = encode.NewPassthrough()
	if reEncode {
		ff := encode.NewFFmpeg(bitrate)
		if ff.Available() {
			encoder = ff
		} else {
			PrintWarning("ffmpeg not found on PATH, keeping the original MP3 stream")
		}
	}
	svc := download.NewService(source, encoder)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	defer signal.Stop(sigCh)

	if len(entries) > 1 {
		PrintHeader(fmt.Sprintf("Downloading %d files", len(entries)))
	}

	if numWorkers <= 1 || len(entries) == 1 {
		return runSequential(svc, source, entries, sigCh)
	}
	return runPool(svc, source, entries, sigCh)
}

// runSequential processes entries one at a time with a live progress bar.
func runSequential(svc download.Downloader, source *resolve.Source, entries []config.BatchEntry, sigCh <-chan os.Signal) error {
	failures := 0
	for _, entry := range entries {
		interrupted, err := runOne(svc, source, entry, sigCh)
		if err != nil {
			PrintError(fmt.Sprintf("%s %s: %v", StyleSymbols["fail"], entry.Link, err))
			failures++
		}
		if interrupted {
			PrintWarning("Interrupted, stopping")
			break
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d downloads failed", failures, len(entries))
	}
	return nil
}

// runPool fans entries out to numWorkers goroutines. Live progress is
// suppressed so concurrent lines do not interleave.
func runPool(svc download.Downloader, source *resolve.Source, entries []config.BatchEntry, sigCh <-chan os.Signal) error {
	jobs := make(chan config.BatchEntry)
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for range numWorkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobs {
				if err := runQuiet(svc, source, entry); err != nil {
					PrintError(fmt.Sprintf("%s %s: %v", StyleSymbols["fail"], entry.Link, err))
					mu.Lock()
					failures++
					mu.Unlock()
				}
			}
		}()
	}

	interrupted := false
feed:
	for _, entry := range entries {
		select {
		case jobs <- entry:
		case <-sigCh:
			interrupted = true
			break feed
		}
	}
	close(jobs)

	if interrupted {
		PrintWarning("Interrupted, cancelling running downloads")
		for _, task := range svc.GetAllTasks() {
			_ = svc.Cancel(task.ID)
		}
	}
	wg.Wait()

	if failures > 0 {
		return fmt.Errorf("%d of %d downloads failed", failures, len(entries))
	}
	return nil
}

// resolveOutputPath picks the destination file, deriving the name from the
// video title when none was given and renewing it when the file exists.
func resolveOutputPath(source *resolve.Source, entry config.BatchEntry) string {
	path := entry.OutputPath
	if path == "" {
		ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
		title, err := source.Probe(ctx, entry.Link)
		cancel()
		if err != nil {
			title = ""
		}
		path = platform.SuggestedFilename(title)
	}
	path = platform.EnsureMP3Extension(path)
	if _, err := os.Stat(path); err == nil {
		path = platform.RenewOutputPath(path)
	}
	return path
}

func runOne(svc download.Downloader, source *resolve.Source, entry config.BatchEntry, sigCh <-chan os.Signal) (bool, error) {
	destPath := resolveOutputPath(source, entry)

	task, err := svc.Start(model.DownloadRequest{
		SourceURL:       entry.Link,
		DestinationPath: destPath,
	})
	if err != nil {
		return false, err
	}

	PrintInfo(fmt.Sprintf("%s %s", StyleSymbols["arrow"], entry.Link))

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	done := svc.Wait(task.ID)
	interrupted := false

loop:
	for {
		select {
		case <-done:
			break loop
		case <-ticker.C:
			renderProgress(svc, task.ID)
		case <-sigCh:
			// May already be terminal, the done channel settles either way
			interrupted = true
			_ = svc.Cancel(task.ID)
		}
	}

	fmt.Print(clearLine)
	return interrupted, finishTask(svc, task.ID)
}

// runQuiet runs one entry without live progress rendering.
func runQuiet(svc download.Downloader, source *resolve.Source, entry config.BatchEntry) error {
	destPath := resolveOutputPath(source, entry)

	task, err := svc.Start(model.DownloadRequest{
		SourceURL:       entry.Link,
		DestinationPath: destPath,
	})
	if err != nil {
		return err
	}

	PrintInfo(fmt.Sprintf("%s %s", StyleSymbols["arrow"], entry.Link))
	<-svc.Wait(task.ID)
	return finishTask(svc, task.ID)
}

// finishTask reports the terminal outcome of a task.
func finishTask(svc download.Downloader, id string) error {
	final, ok := svc.GetTask(id)
	if !ok {
		return fmt.Errorf("task disappeared")
	}
	switch final.State {
	case model.TaskStateCompleted:
		PrintSuccess(fmt.Sprintf("%s %s (%s)", StyleSymbols["pass"],
			final.Request.DestinationPath, platform.FormatBytes(uint64(final.BytesTransferred))))
		return nil
	case model.TaskStateCancelled:
		return fmt.Errorf("cancelled")
	default:
		if final.ErrorDetail != "" {
			return fmt.Errorf("%s", final.ErrorDetail)
		}
		return fmt.Errorf("download failed")
	}
}

func renderProgress(svc download.Downloader, id string) {
	snap, ok := svc.Progress(id)
	if !ok {
		return
	}
	barWidth := min(30, getTerminalWidth()/2)
	var line string
	if snap.TotalBytes > 0 {
		line = fmt.Sprintf("%s %s / %s", ProgressBar(snap.BytesTransferred, snap.TotalBytes, barWidth),
			platform.FormatBytes(uint64(snap.BytesTransferred)), platform.FormatBytes(uint64(snap.TotalBytes)))
	} else {
		line = fmt.Sprintf("%s %s %s", snap.State, StyleSymbols["bullet"],
			platform.FormatBytes(uint64(snap.BytesTransferred)))
	}
	fmt.Printf("%s%s", clearLine, line)
}
