package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/steelcraft/erp-api/internal/api/metrics"
	"github.com/steelcraft/erp-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// DeleteJob identifies one superseded media asset to remove.
type DeleteJob struct {
	PublicID     string
	ResourceType string
}

// CleanupDispatcher runs best-effort media deletions in the background.
// Jobs are sharded across workers by public id; a failed delete is never
// retried, but it is logged and counted so the leak stays observable.
type CleanupDispatcher struct {
	workers []chan DeleteJob
	storage ports.MediaStorage
	log     zerolog.Logger
}

// NewCleanupDispatcher creates a dispatcher with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewCleanupDispatcher(numWorkers int, storage ports.MediaStorage, log zerolog.Logger) *CleanupDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &CleanupDispatcher{
		workers: make([]chan DeleteJob, numWorkers),
		storage: storage,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan DeleteJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *CleanupDispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules an asset for deletion. Non-blocking up to channelBuffer
// capacity per worker.
func (d *CleanupDispatcher) Enqueue(publicID, resourceType string) {
	if publicID == "" {
		return
	}
	if resourceType == "" {
		resourceType = "image"
	}
	d.workers[d.shardIndex(publicID)] <- DeleteJob{PublicID: publicID, ResourceType: resourceType}
}

// shardIndex maps a public id deterministically to a worker index.
func (d *CleanupDispatcher) shardIndex(publicID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(publicID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *CleanupDispatcher) runWorker(ctx context.Context, id int, ch <-chan DeleteJob) {
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-ch:
			if !ok {
				return
			}
			if err := d.storage.Delete(ctx, job.PublicID, job.ResourceType); err != nil {
				metrics.CleanupFailuresTotal.Inc()
				d.log.Warn().Err(err).
					Str("public_id", job.PublicID).
					Int("worker_id", id).
					Msg("background media delete failed")
				continue
			}
			d.log.Debug().Str("public_id", job.PublicID).Msg("superseded media asset deleted")
		}
	}
}
