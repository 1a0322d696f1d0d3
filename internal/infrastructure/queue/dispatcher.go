package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/flatfinder/flatfinder-api/internal/core/domain"
	"github.com/flatfinder/flatfinder-api/internal/core/ports"
	"github.com/flatfinder/flatfinder-api/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	maxAttempts    = 3
	drainTimeout   = 5 * time.Second
)

// Dispatcher routes cleanup jobs to a fixed set of workers using consistent
// hashing on the subject id, so jobs for one user or listing run in order.
type Dispatcher struct {
	workers []chan domain.CleanupJob
	service ports.CleanupService
	log     zerolog.Logger
	backoff time.Duration
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.CleanupService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.CleanupJob, numWorkers),
		service: service,
		log:     log,
		backoff: 200 * time.Millisecond,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.CleanupJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled,
// after finishing the jobs already buffered.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Enqueue hands a job to the worker responsible for its subject. It never
// blocks the caller: when the worker channel is full the job is dropped and
// logged. Every job is idempotent and can be replayed.
func (d *Dispatcher) Enqueue(job domain.CleanupJob) {
	idx := d.shardIndex(job.SubjectID)
	select {
	case d.workers[idx] <- job:
		metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.CleanupJobsTotal.WithLabelValues(string(job.Kind), "dropped").Inc()
		d.log.Error().
			Str("kind", string(job.Kind)).
			Str("subject_id", job.SubjectID).
			Int("worker_id", idx).
			Msg("cleanup queue full, job dropped")
	}
}

// shardIndex maps a subject id deterministically to a worker index.
func (d *Dispatcher) shardIndex(subjectID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subjectID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.CleanupJob) {
	defer d.wg.Done()
	depth := metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case <-ctx.Done():
			d.drain(ctx, id, ch)
			return
		case job := <-ch:
			depth.Dec()
			d.process(ctx, id, job)
		}
	}
}

// drain runs the jobs still buffered at shutdown on a short-lived context.
func (d *Dispatcher) drain(parent context.Context, id int, ch <-chan domain.CleanupJob) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), drainTimeout)
	defer cancel()
	depth := metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(id))

	for {
		select {
		case job := <-ch:
			depth.Dec()
			d.process(ctx, id, job)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, job domain.CleanupJob) {
	var err error
	for attempt := 1; ; attempt++ {
		if err = d.service.Process(ctx, job); err == nil {
			return
		}
		if attempt == maxAttempts || ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
		case <-time.After(d.backoff * time.Duration(attempt)):
		}
	}
	d.log.Error().Err(err).
		Str("kind", string(job.Kind)).
		Str("subject_id", job.SubjectID).
		Int("worker_id", id).
		Msg("cleanup job failed")
}
