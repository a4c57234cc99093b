package session

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/deadpixel/internal/model"
)

// Run is a finished play-through, recorded once when the game ends.
type Run struct {
	ID             string
	Score          int
	Level          int
	Difficulty     model.Difficulty
	AnomaliesFound int
	Taps           int
	EndedAt        time.Time
}

// Recorder persists best-ever records and finished runs.
// Implementations apply max semantics for scores and levels themselves.
type Recorder interface {
	RecordHighScore(score int) error
	RecordHighestLevel(level int) error
	RecordAnomalyFound(count int) error
	RecordRun(run Run) error
}

// DefaultRecordBuffer is the queue size used when none is given.
const DefaultRecordBuffer = 64

type recordJob struct {
	name string
	fn   func(Recorder) error
}

// AsyncRecorder forwards records to a Recorder on a background worker.
// Enqueueing never blocks: when the queue is full the oldest pending record
// is dropped. Errors from the target are logged and otherwise ignored.
type AsyncRecorder struct {
	target Recorder
	logger *log.Logger

	jobs      chan recordJob
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

var _ Recorder = (*AsyncRecorder)(nil)

// NewAsyncRecorder starts a worker writing to target.
// bufferSize < 1 selects DefaultRecordBuffer; a nil logger discards output.
func NewAsyncRecorder(target Recorder, bufferSize int, logger *log.Logger) *AsyncRecorder {
	if bufferSize < 1 {
		bufferSize = DefaultRecordBuffer
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	r := &AsyncRecorder{
		target: target,
		logger: logger,
		jobs:   make(chan recordJob, bufferSize),
		done:   make(chan struct{}),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// RecordHighScore queues a high score update.
func (r *AsyncRecorder) RecordHighScore(score int) error {
	r.enqueue("high_score", func(t Recorder) error { return t.RecordHighScore(score) })
	return nil
}

// RecordHighestLevel queues a highest level update.
func (r *AsyncRecorder) RecordHighestLevel(level int) error {
	r.enqueue("highest_level", func(t Recorder) error { return t.RecordHighestLevel(level) })
	return nil
}

// RecordAnomalyFound queues an anomaly counter increment.
func (r *AsyncRecorder) RecordAnomalyFound(count int) error {
	r.enqueue("anomalies_found", func(t Recorder) error { return t.RecordAnomalyFound(count) })
	return nil
}

// RecordRun queues a finished run.
func (r *AsyncRecorder) RecordRun(run Run) error {
	r.enqueue("run", func(t Recorder) error { return t.RecordRun(run) })
	return nil
}

// Close stops accepting records, writes everything still queued and waits
// for the worker to exit. Safe to call multiple times.
func (r *AsyncRecorder) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	r.wg.Wait()
	return nil
}

func (r *AsyncRecorder) enqueue(name string, fn func(Recorder) error) {
	select {
	case <-r.done:
		return
	default:
	}

	job := recordJob{name: name, fn: fn}
	select {
	case r.jobs <- job:
	default:
		// Queue full: drop the oldest pending record and retry once.
		select {
		case dropped := <-r.jobs:
			r.logger.Warn("record queue full, dropping", "record", dropped.name)
		default:
		}
		select {
		case r.jobs <- job:
		default:
		}
	}
}

func (r *AsyncRecorder) run() {
	defer r.wg.Done()
	for {
		select {
		case job := <-r.jobs:
			r.apply(job)
		case <-r.done:
			for {
				select {
				case job := <-r.jobs:
					r.apply(job)
				default:
					return
				}
			}
		}
	}
}

func (r *AsyncRecorder) apply(job recordJob) {
	if r.target == nil {
		return
	}
	if err := job.fn(r.target); err != nil {
		r.logger.Error("record failed", "record", job.name, "err", err)
	}
}
