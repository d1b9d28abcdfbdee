package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fashionstore/storefront/internal/api/metrics"
	"github.com/fashionstore/storefront/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	jobTimeout     = 30 * time.Second
)

// Dispatcher removes stored images in the background. Keys are sharded over a
// fixed set of workers by hash, so repeated jobs for one key run in order.
type Dispatcher struct {
	workers []chan string
	store   ports.ImageStore
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, store ports.ImageStore, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan string, numWorkers),
		store:   store,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan string, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
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

// Enqueue hands key to its worker without blocking. When the worker's buffer
// is full the job is dropped and logged.
func (d *Dispatcher) Enqueue(key string) {
	if key == "" {
		return
	}
	idx := d.shardIndex(key)
	select {
	case d.workers[idx] <- key:
		metrics.CleanupQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ImageCleanupsTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Str("image_key", key).Int("worker_id", idx).Msg("cleanup queue full, job dropped")
	}
}

// shardIndex maps a key deterministically to a worker index.
func (d *Dispatcher) shardIndex(key string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan string) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case key := <-ch:
			metrics.CleanupQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.process(ctx, id, key)
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, key string) {
	jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	if err := d.store.Delete(jobCtx, key); err != nil {
		metrics.ImageCleanupsTotal.WithLabelValues("error").Inc()
		d.log.Error().Err(err).
			Str("image_key", key).
			Int("worker_id", id).
			Msg("image cleanup failed")
		return
	}
	metrics.ImageCleanupsTotal.WithLabelValues("ok").Inc()
	d.log.Debug().Str("image_key", key).Int("worker_id", id).Msg("image removed")
}
