package autosave

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"timesheet-backend/internal/usecase/submission"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSaver struct {
	mu    sync.Mutex
	calls []submission.SaveDraftInput
	err   error
}

func (r *recordingSaver) SaveDraft(_ context.Context, in submission.SaveDraftInput) (*submission.SubmissionDTO, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, in)
	if r.err != nil {
		return nil, r.err
	}
	return &submission.SubmissionDTO{ID: in.SubmissionID}, nil
}

func (r *recordingSaver) snapshot() []submission.SaveDraftInput {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]submission.SaveDraftInput(nil), r.calls...)
}

func patch(data map[string]any) submission.SaveDraftInput {
	return submission.SaveDraftInput{SubmissionID: "S1", UserID: "U1", Data: data}
}

func TestSchedule_CoalescesWithinWindow(t *testing.T) {
	saver := &recordingSaver{}
	b := New(saver, time.Hour, nil)
	ctx := context.Background()

	title := "Week 9"
	require.NoError(t, b.Schedule(ctx, patch(map[string]any{"hours": 8.0, "notes": "a"})))
	require.NoError(t, b.Schedule(ctx, patch(map[string]any{"notes": "b"})))
	in := patch(map[string]any{"safety": true})
	in.Title = &title
	require.NoError(t, b.Schedule(ctx, in))

	assert.Equal(t, 1, b.Pending())
	assert.Empty(t, saver.snapshot(), "nothing is written before the window elapses")

	require.NoError(t, b.Flush(ctx))
	calls := saver.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{"hours": 8.0, "notes": "b", "safety": true}, calls[0].Data)
	require.NotNil(t, calls[0].Title)
	assert.Equal(t, "Week 9", *calls[0].Title)
	assert.Equal(t, 0, b.Pending())
}

func TestSchedule_TimerFlushes(t *testing.T) {
	saver := &recordingSaver{}
	b := New(saver, 20*time.Millisecond, nil)

	require.NoError(t, b.Schedule(context.Background(), patch(map[string]any{"hours": 1.0})))
	require.Eventually(t, func() bool { return len(saver.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, b.Pending())
}

func TestSchedule_SeparatesSubmissions(t *testing.T) {
	saver := &recordingSaver{}
	b := New(saver, time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, b.Schedule(ctx, patch(map[string]any{"a": 1.0})))
	other := patch(map[string]any{"a": 2.0})
	other.SubmissionID = "S2"
	require.NoError(t, b.Schedule(ctx, other))

	assert.Equal(t, 2, b.Pending())
	require.NoError(t, b.Flush(ctx))
	assert.Len(t, saver.snapshot(), 2)
}

func TestSchedule_WriteThrough(t *testing.T) {
	boom := errors.New("boom")
	saver := &recordingSaver{err: boom}
	b := New(saver, 0, nil)

	err := b.Schedule(context.Background(), patch(map[string]any{"a": 1.0}))
	assert.ErrorIs(t, err, boom)
	assert.Len(t, saver.snapshot(), 1)
	assert.Equal(t, 0, b.Pending())
}

func TestClose_FlushesAndRejects(t *testing.T) {
	saver := &recordingSaver{}
	b := New(saver, time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, b.Schedule(ctx, patch(map[string]any{"a": 1.0})))
	require.NoError(t, b.Close(ctx))
	assert.Len(t, saver.snapshot(), 1)

	assert.ErrorIs(t, b.Schedule(ctx, patch(map[string]any{"a": 2.0})), ErrClosed)
	assert.Len(t, saver.snapshot(), 1)
}

func TestFlush_JoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	saver := &recordingSaver{err: boom}
	b := New(saver, time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, b.Schedule(ctx, patch(map[string]any{"a": 1.0})))
	assert.ErrorIs(t, b.Flush(ctx), boom)
}

func TestFlushOne_OnlyTouchesThatDraft(t *testing.T) {
	saver := &recordingSaver{}
	b := New(saver, time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, b.Schedule(ctx, patch(map[string]any{"a": 1.0})))
	other := patch(map[string]any{"a": 2.0})
	other.SubmissionID = "S2"
	require.NoError(t, b.Schedule(ctx, other))

	require.NoError(t, b.FlushOne(ctx, "S1", "U1"))
	calls := saver.snapshot()
	require.Len(t, calls, 1)
	assert.Equal(t, "S1", calls[0].SubmissionID)
	assert.Equal(t, 1, b.Pending())

	require.NoError(t, b.FlushOne(ctx, "S1", "U1"), "nothing pending is fine")
	assert.Len(t, saver.snapshot(), 1)
}

// slowSaver takes delay per save and records patches once the save returns.
type slowSaver struct {
	recordingSaver
	delay time.Duration
}

func (s *slowSaver) SaveDraft(ctx context.Context, in submission.SaveDraftInput) (*submission.SubmissionDTO, error) {
	time.Sleep(s.delay)
	return s.recordingSaver.SaveDraft(ctx, in)
}

func TestFlushOne_WaitsForTimerSaveInFlight(t *testing.T) {
	saver := &slowSaver{delay: 200 * time.Millisecond}
	b := New(saver, 10*time.Millisecond, nil)
	ctx := context.Background()

	require.NoError(t, b.Schedule(ctx, patch(map[string]any{"hours": 8.0})))
	// the timer has fired and its save is still running
	require.Eventually(t, func() bool { return b.Pending() == 0 }, time.Second, time.Millisecond)

	require.NoError(t, b.FlushOne(ctx, "S1", "U1"))
	calls := saver.snapshot()
	require.Len(t, calls, 1, "the patch is persisted before FlushOne returns")
	assert.Equal(t, 8.0, calls[0].Data["hours"])
}

func TestFlushOne_SavesAfterRunningSave(t *testing.T) {
	saver := &slowSaver{delay: 100 * time.Millisecond}
	b := New(saver, 10*time.Millisecond, nil)
	ctx := context.Background()

	require.NoError(t, b.Schedule(ctx, patch(map[string]any{"notes": "first"})))
	require.Eventually(t, func() bool { return b.Pending() == 0 }, time.Second, time.Millisecond)
	b.window = time.Hour
	require.NoError(t, b.Schedule(ctx, patch(map[string]any{"notes": "second"})))

	require.NoError(t, b.FlushOne(ctx, "S1", "U1"))
	calls := saver.snapshot()
	require.Len(t, calls, 2)
	assert.Equal(t, "first", calls[0].Data["notes"])
	assert.Equal(t, "second", calls[1].Data["notes"], "later patch lands last")
}

func TestFlushOne_HonoursContext(t *testing.T) {
	saver := &slowSaver{delay: 300 * time.Millisecond}
	b := New(saver, 5*time.Millisecond, nil)
	t.Cleanup(func() { _ = b.Close(context.Background()) })

	require.NoError(t, b.Schedule(context.Background(), patch(map[string]any{"a": 1.0})))
	require.Eventually(t, func() bool { return b.Pending() == 0 }, time.Second, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, b.FlushOne(ctx, "S1", "U1"), context.DeadlineExceeded)
}

func TestDiscard_DropsPendingPatch(t *testing.T) {
	saver := &recordingSaver{}
	b := New(saver, time.Hour, nil)
	ctx := context.Background()

	require.NoError(t, b.Schedule(ctx, patch(map[string]any{"a": 1.0})))
	require.NoError(t, b.Discard(ctx, "S1", "U1"))
	assert.Equal(t, 0, b.Pending())

	require.NoError(t, b.Close(ctx))
	assert.Empty(t, saver.snapshot())
}

func TestDiscard_WaitsForRunningSave(t *testing.T) {
	saver := &slowSaver{delay: 150 * time.Millisecond}
	b := New(saver, 5*time.Millisecond, nil)
	ctx := context.Background()

	require.NoError(t, b.Schedule(ctx, patch(map[string]any{"a": 1.0})))
	require.Eventually(t, func() bool { return b.Pending() == 0 }, time.Second, time.Millisecond)

	require.NoError(t, b.Discard(ctx, "S1", "U1"))
	assert.Len(t, saver.snapshot(), 1, "delete runs after the save it raced")
}
