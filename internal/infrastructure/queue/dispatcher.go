package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
	"github.com/paintcompare/marketplace-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes login activity to a fixed set of workers using consistent
// hashing on the user ID, so writes for one user stay ordered. Each event
// updates the advisory lastLoginAt timestamp and appends an audit record.
type Dispatcher struct {
	workers []chan domain.LoginActivity
	store   ports.CredentialStore
	audit   ports.ActivityRecorder
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.CredentialStore, audit ports.ActivityRecorder, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.LoginActivity, numWorkers),
		store:   store,
		audit:   audit,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.LoginActivity, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a login event to the worker responsible for its user. The
// call never blocks the login request: when a worker's buffer is full the
// event is dropped, which is acceptable for an advisory timestamp.
func (d *Dispatcher) Enqueue(activity domain.LoginActivity) {
	select {
	case d.workers[d.shardIndex(activity.UserID)] <- activity:
	default:
		d.log.Warn().Str("user_id", activity.UserID).Msg("activity queue full, event dropped")
	}
}

// shardIndex maps a user ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.LoginActivity) {
	for {
		select {
		case <-ctx.Done():
			return
		case activity, ok := <-ch:
			if !ok {
				return
			}
			if err := d.store.UpdateLastLogin(ctx, activity.UserID, activity.At); err != nil {
				d.log.Error().Err(err).
					Str("user_id", activity.UserID).
					Int("worker_id", id).
					Msg("last login update failed")
			}
			if err := d.audit.Record(ctx, activity); err != nil {
				d.log.Error().Err(err).
					Str("user_id", activity.UserID).
					Int("worker_id", id).
					Msg("login audit write failed")
			}
		}
	}
}
