package download

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/mp3get/internal/logging"
	"github.com/ytget/mp3get/internal/model"
	"github.com/ytget/mp3get/internal/platform"
)

// Service handles download tasks against an AudioSource and an Encoder
type Service struct {
	source  AudioSource
	encoder Encoder

	tasks        map[string]*model.DownloadTask
	tasksMutex   sync.RWMutex
	cancels      map[string]context.CancelFunc
	doneChans    map[string]chan struct{}
	destinations map[string]string         // absolute destination path -> owning task ID
	onUpdate     func(*model.DownloadTask) // callback for UI updates
}

// NewService creates a new download service
func NewService(source AudioSource, encoder Encoder) *Service {
	return &Service{
		source:       source,
		encoder:      encoder,
		tasks:        make(map[string]*model.DownloadTask),
		cancels:      make(map[string]context.CancelFunc),
		doneChans:    make(map[string]chan struct{}),
		destinations: make(map[string]string),
	}
}

// SetUpdateCallback sets the callback function for task updates. The
// callback receives a copy of the task and may be invoked from the worker
// goroutine.
func (s *Service) SetUpdateCallback(callback func(*model.DownloadTask)) {
	s.tasksMutex.Lock()
	s.onUpdate = callback
	s.tasksMutex.Unlock()
}

// Start validates the request and launches a worker goroutine for it. The
// returned task is a snapshot; use the ID with Progress, Cancel, and Wait.
func (s *Service) Start(req model.DownloadRequest) (*model.DownloadTask, error) {
	if _, ok := platform.ExtractVideoID(req.SourceURL); !ok {
		return nil, model.NewTaskError(model.ErrSourceUnavailable,
			fmt.Sprintf("not a recognized video URL: %q", req.SourceURL), nil)
	}
	if req.DestinationPath == "" {
		return nil, model.NewTaskError(model.ErrWriteFailed, "destination path is empty", nil)
	}

	req.DestinationPath = platform.EnsureMP3Extension(req.DestinationPath)
	destPath, err := filepath.Abs(req.DestinationPath)
	if err != nil {
		return nil, model.NewTaskError(model.ErrWriteFailed, "invalid destination path", err)
	}
	req.DestinationPath = destPath
	if err := platform.CheckParentWritable(destPath); err != nil {
		return nil, model.NewTaskError(model.ErrWriteFailed, "destination is not writable", err)
	}

	s.tasksMutex.Lock()
	if ownerID, busy := s.destinations[destPath]; busy {
		s.tasksMutex.Unlock()
		return nil, model.NewTaskError(model.ErrDestinationBusy,
			fmt.Sprintf("destination already in use by task %s", ownerID), nil)
	}

	task := &model.DownloadTask{
		ID:         uuid.NewString(),
		Request:    req,
		State:      model.TaskStatePending,
		TotalBytes: model.TotalBytesUnknown,
		StartedAt:  time.Now(),
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.tasks[task.ID] = task
	s.cancels[task.ID] = cancel
	s.doneChans[task.ID] = make(chan struct{})
	s.destinations[destPath] = task.ID
	s.tasksMutex.Unlock()

	s.notifyUpdate(task)
	go s.run(ctx, task, destPath)

	return task.Clone(), nil
}

// Cancel requests cancellation of a running task. The worker observes the
// request at its next suspension point, so the transition to Cancelled is
// bounded, not instantaneous.
func (s *Service) Cancel(id string) error {
	s.tasksMutex.Lock()
	task, exists := s.tasks[id]
	if !exists {
		s.tasksMutex.Unlock()
		return fmt.Errorf("task not found: %s", id)
	}
	if task.State.IsTerminal() {
		state := task.State
		s.tasksMutex.Unlock()
		return model.NewTaskError(model.ErrAlreadyTerminal,
			fmt.Sprintf("task already %s", state), nil)
	}
	cancel := s.cancels[id]
	s.tasksMutex.Unlock()

	if cancel != nil {
		cancel()
	}
	return nil
}

// Progress returns a non-blocking snapshot of a task
func (s *Service) Progress(id string) (model.ProgressSnapshot, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return model.ProgressSnapshot{}, false
	}
	return task.Snapshot(), true
}

// GetTask returns a snapshot of a task by ID
func (s *Service) GetTask(id string) (*model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return nil, false
	}
	return task.Clone(), true
}

// GetAllTasks returns snapshots of all tasks in start order
func (s *Service) GetAllTasks() []*model.DownloadTask {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()

	tasks := make([]*model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, task.Clone())
	}
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].StartedAt.Before(tasks[j].StartedAt)
	})
	return tasks
}

// Wait returns a channel closed when the task reaches a terminal state.
// Unknown IDs yield an already-closed channel.
func (s *Service) Wait(id string) <-chan struct{} {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	if done, exists := s.doneChans[id]; exists {
		return done
	}
	closed := make(chan struct{})
	close(closed)
	return closed
}

// run drives one task through the pipeline. Every return path lands in
// finalize, which settles the terminal state and cleans up the temp file.
func (s *Service) run(ctx context.Context, task *model.DownloadTask, destPath string) {
	log := logging.Component("download")
	tempPath := platform.TempPath(destPath)

	var runErr *model.TaskError
	completed := false
	defer func() {
		s.finalize(ctx, task, destPath, tempPath, completed, runErr)
	}()

	if ctx.Err() != nil {
		return // cancelled before the worker got going
	}

	s.transition(task, model.TaskStateResolving)
	log.Debug().Str("url", task.Request.SourceURL).Msg("Resolving audio source")
	stream, err := s.source.Resolve(ctx, task.Request.SourceURL)
	if err != nil {
		if ctx.Err() == nil {
			runErr = classify(err, model.ErrSourceUnavailable, "failed to resolve video")
		}
		return
	}
	defer stream.Close()

	s.setStreamInfo(task, stream.Title(), stream.TotalBytes())
	s.transition(task, model.TaskStateDownloading)

	completed, runErr = s.transfer(ctx, task, stream, tempPath, destPath)
	if completed {
		log.Debug().Str("dest", destPath).Int64("bytes", task.BytesTransferred).Msg("Download completed")
	}
}

// transition advances the task state if the move is legal and notifies the UI
func (s *Service) transition(task *model.DownloadTask, next model.TaskState) {
	s.tasksMutex.Lock()
	if !task.State.CanTransition(next) {
		s.tasksMutex.Unlock()
		return
	}
	task.State = next
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

func (s *Service) setStreamInfo(task *model.DownloadTask, title string, totalBytes int64) {
	s.tasksMutex.Lock()
	if title != "" {
		task.Title = title
	}
	task.TotalBytes = totalBytes
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

func (s *Service) addBytesTransferred(task *model.DownloadTask, n int64) {
	s.tasksMutex.Lock()
	task.BytesTransferred += n
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)
}

// finalize settles the terminal state exactly once and releases the
// destination claim. A task that committed its output stays Completed even
// when a cancel request raced in after the rename.
func (s *Service) finalize(ctx context.Context, task *model.DownloadTask, destPath, tempPath string, completed bool, runErr *model.TaskError) {
	s.tasksMutex.Lock()
	switch {
	case completed:
		task.State = model.TaskStateCompleted
	case ctx.Err() != nil:
		task.State = model.TaskStateCancelled
		platform.DiscardTempFile(tempPath)
	case runErr != nil:
		task.State = model.TaskStateFailed
		task.ErrorDetail = runErr.Error()
		platform.DiscardTempFile(tempPath)
	default:
		task.State = model.TaskStateFailed
		task.ErrorDetail = "task ended without a result"
		platform.DiscardTempFile(tempPath)
	}
	task.FinishedAt = time.Now()

	delete(s.destinations, destPath)
	cancel := s.cancels[task.ID]
	delete(s.cancels, task.ID)
	done := s.doneChans[task.ID]
	s.tasksMutex.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		close(done)
	}
	s.notifyUpdate(task)
}

// notifyUpdate calls the update callback with a task snapshot
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	clone := task.Clone()
	s.tasksMutex.RUnlock()
	if callback != nil {
		callback(clone)
	}
}
