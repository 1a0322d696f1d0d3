package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
)

type recordingService struct {
	mu       sync.Mutex
	seen     []domain.CleanupJob
	failures map[string]int // subject id -> remaining failures
}

func (s *recordingService) Process(_ context.Context, job domain.CleanupJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failures[job.SubjectID] > 0 {
		s.failures[job.SubjectID]--
		return errors.New("transient")
	}
	s.seen = append(s.seen, job)
	return nil
}

func (s *recordingService) jobs() []domain.CleanupJob {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CleanupJob(nil), s.seen...)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met before deadline")
}

func TestDispatcher_ShardIndexIsDeterministic(t *testing.T) {
	d := NewDispatcher(4, &recordingService{}, zerolog.Nop())

	for _, id := range []string{"u1", "listing-42", "65f1c0ffee"} {
		first := d.shardIndex(id)
		if first < 0 || first >= 4 {
			t.Fatalf("shard %d out of range for %q", first, id)
		}
		if again := d.shardIndex(id); again != first {
			t.Fatalf("shard for %q changed: %d then %d", id, first, again)
		}
	}
}

func TestDispatcher_DefaultWorkers(t *testing.T) {
	d := NewDispatcher(0, &recordingService{}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("expected %d workers, got %d", defaultWorkers, len(d.workers))
	}
}

func TestDispatcher_PreservesOrderPerSubject(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(3, svc, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	const perSubject = 20
	for i := 0; i < perSubject; i++ {
		for _, subject := range []string{"a", "b", "c"} {
			d.Enqueue(domain.CleanupJob{Kind: domain.CleanupKind(fmt.Sprintf("k%02d", i)), SubjectID: subject})
		}
	}
	waitFor(t, func() bool { return len(svc.jobs()) == 3*perSubject })

	last := map[string]domain.CleanupKind{}
	for _, job := range svc.jobs() {
		if prev, ok := last[job.SubjectID]; ok && job.Kind <= prev {
			t.Fatalf("subject %s: %s processed after %s", job.SubjectID, job.Kind, prev)
		}
		last[job.SubjectID] = job.Kind
	}
}

func TestDispatcher_RetriesTransientFailures(t *testing.T) {
	svc := &recordingService{failures: map[string]int{"u1": maxAttempts - 1}}
	d := NewDispatcher(1, svc, zerolog.Nop())
	d.backoff = time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	d.Enqueue(domain.CleanupJob{Kind: domain.CleanupUserDeleted, SubjectID: "u1"})
	waitFor(t, func() bool { return len(svc.jobs()) == 1 })
}

func TestDispatcher_DrainsBufferedJobsOnShutdown(t *testing.T) {
	svc := &recordingService{}
	d := NewDispatcher(2, svc, zerolog.Nop())

	// Jobs are buffered before any worker runs.
	for i := 0; i < 5; i++ {
		d.Enqueue(domain.CleanupJob{Kind: domain.CleanupListingDeleted, SubjectID: fmt.Sprintf("l%d", i)})
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.Start(ctx)
	d.Wait()

	if got := len(svc.jobs()); got != 5 {
		t.Fatalf("expected 5 drained jobs, got %d", got)
	}
}

func TestDispatcher_EnqueueNeverBlocks(t *testing.T) {
	d := NewDispatcher(1, &recordingService{}, zerolog.Nop())

	done := make(chan struct{})
	go func() {
		for i := 0; i < channelBuffer+10; i++ {
			d.Enqueue(domain.CleanupJob{Kind: domain.CleanupUserDeleted, SubjectID: "u1"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Enqueue blocked on a full queue")
	}
}
