// Package autosave coalesces draft patches per submission and writes them
// after a quiet window.
package autosave

import (
	"context"
	"errors"
	"sync"
	"time"

	"timesheet-backend/internal/usecase/submission"

	"go.uber.org/zap"
)

var ErrClosed = errors.New("autosave buffer is closed")

// DraftSaver is the write side of the buffer, normally the submission usecase.
type DraftSaver interface {
	SaveDraft(ctx context.Context, in submission.SaveDraftInput) (*submission.SubmissionDTO, error)
}

type entry struct {
	in    submission.SaveDraftInput
	timer *time.Timer
}

// Buffer holds at most one pending patch per submission and owner. Patches
// scheduled within the window are merged key-by-key, later values winning.
type Buffer struct {
	saver  DraftSaver
	window time.Duration
	log    *zap.Logger

	mu       sync.Mutex
	pending  map[string]*entry
	inflight map[string]chan struct{} // closed when the latest save for a key returns
	closed   bool
	flying   sync.WaitGroup
}

// New returns a buffer. A zero window makes Schedule write through.
func New(saver DraftSaver, window time.Duration, log *zap.Logger) *Buffer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Buffer{
		saver:    saver,
		window:   window,
		log:      log,
		pending:  make(map[string]*entry),
		inflight: make(map[string]chan struct{}),
	}
}

func key(submissionID, userID string) string { return submissionID + "\x00" + userID }

// Schedule queues a patch. In write-through mode the save error is returned;
// otherwise failures surface only in the log.
func (b *Buffer) Schedule(ctx context.Context, in submission.SaveDraftInput) error {
	if b.window <= 0 {
		b.mu.Lock()
		closed := b.closed
		b.mu.Unlock()
		if closed {
			return ErrClosed
		}
		_, err := b.saver.SaveDraft(ctx, in)
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	k := key(in.SubmissionID, in.UserID)
	e, ok := b.pending[k]
	if !ok {
		e = &entry{in: submission.SaveDraftInput{
			SubmissionID: in.SubmissionID,
			UserID:       in.UserID,
			Data:         make(map[string]any, len(in.Data)),
		}}
		b.pending[k] = e
	} else {
		e.timer.Stop()
	}
	for field, v := range in.Data {
		e.in.Data[field] = v
	}
	if in.Title != nil {
		title := *in.Title
		e.in.Title = &title
	}
	e.timer = time.AfterFunc(b.window, func() { b.fire(k, e) })
	return nil
}

func (b *Buffer) fire(k string, e *entry) {
	b.mu.Lock()
	if b.pending[k] != e {
		// already flushed or replaced
		b.mu.Unlock()
		return
	}
	delete(b.pending, k)
	prev, done := b.begin(k)
	b.flying.Add(1)
	b.mu.Unlock()

	defer b.flying.Done()
	defer b.end(k, done)
	if prev != nil {
		<-prev
	}
	b.save(context.Background(), e.in)
}

// begin registers a save for k and returns the save it has to follow.
// b.mu must be held.
func (b *Buffer) begin(k string) (prev, done chan struct{}) {
	prev = b.inflight[k]
	done = make(chan struct{})
	b.inflight[k] = done
	return prev, done
}

func (b *Buffer) end(k string, done chan struct{}) {
	b.mu.Lock()
	if b.inflight[k] == done {
		delete(b.inflight, k)
	}
	b.mu.Unlock()
	close(done)
}

func wait(ctx context.Context, ch chan struct{}) error {
	if ch == nil {
		return nil
	}
	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Buffer) save(ctx context.Context, in submission.SaveDraftInput) error {
	if _, err := b.saver.SaveDraft(ctx, in); err != nil {
		b.log.Warn("autosave failed",
			zap.String("submission_id", in.SubmissionID),
			zap.String("user_id", in.UserID),
			zap.Error(err))
		return err
	}
	return nil
}

// Pending reports how many patches wait for their window.
func (b *Buffer) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}

// Flush writes every pending patch now and returns the joined errors.
func (b *Buffer) Flush(ctx context.Context) error {
	type job struct {
		k          string
		in         submission.SaveDraftInput
		prev, done chan struct{}
	}
	b.mu.Lock()
	batch := make([]job, 0, len(b.pending))
	for k, e := range b.pending {
		e.timer.Stop()
		delete(b.pending, k)
		prev, done := b.begin(k)
		batch = append(batch, job{k: k, in: e.in, prev: prev, done: done})
	}
	b.mu.Unlock()

	var errs []error
	for _, j := range batch {
		err := wait(ctx, j.prev)
		if err == nil {
			err = b.save(ctx, j.in)
		}
		b.end(j.k, j.done)
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FlushOne writes the pending patch for one submission and owner, if any,
// and returns only after every save already started for that key is done.
func (b *Buffer) FlushOne(ctx context.Context, submissionID, userID string) error {
	k := key(submissionID, userID)
	b.mu.Lock()
	e, ok := b.pending[k]
	if !ok {
		running := b.inflight[k]
		b.mu.Unlock()
		return wait(ctx, running)
	}
	e.timer.Stop()
	delete(b.pending, k)
	prev, done := b.begin(k)
	b.mu.Unlock()

	defer b.end(k, done)
	if err := wait(ctx, prev); err != nil {
		return err
	}
	return b.save(ctx, e.in)
}

// Discard drops the pending patch for one submission and owner and waits
// for a save already running, so a delete that follows is not undone.
func (b *Buffer) Discard(ctx context.Context, submissionID, userID string) error {
	k := key(submissionID, userID)
	b.mu.Lock()
	if e, ok := b.pending[k]; ok {
		e.timer.Stop()
		delete(b.pending, k)
	}
	running := b.inflight[k]
	b.mu.Unlock()
	return wait(ctx, running)
}

// Close stops accepting patches, flushes what is pending and waits for
// timer-triggered saves already running.
func (b *Buffer) Close(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	err := b.Flush(ctx)
	b.flying.Wait()
	return err
}
