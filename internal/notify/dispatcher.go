package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
)

const (
	partitionBuffer = 100
	publishTimeout  = 5 * time.Second
)

// Stats are the dispatcher counters exposed on the health endpoint.
type Stats struct {
	Delivered uint64 `json:"delivered"`
	Failed    uint64 `json:"failed"`
	Dropped   uint64 `json:"dropped"`
}

// Dispatcher hands notifications to a Publisher and the Hub off the request path.
// Notifications are partitioned by user so each user's events keep their order.
type Dispatcher struct {
	publisher  Publisher
	hub        *Hub
	log        *zap.Logger
	partitions []chan models.Notification
	wg         sync.WaitGroup

	// sendMu guards closed; Notify holds it shared so Stop cannot close a partition mid-send.
	sendMu sync.RWMutex
	closed bool

	mu    sync.Mutex
	stats Stats
}

func NewDispatcher(publisher Publisher, hub *Hub, workers int, log *zap.Logger) *Dispatcher {
	if workers < 1 {
		workers = 1
	}
	d := &Dispatcher{
		publisher:  publisher,
		hub:        hub,
		log:        log,
		partitions: make([]chan models.Notification, workers),
	}
	for i := range d.partitions {
		d.partitions[i] = make(chan models.Notification, partitionBuffer)
	}
	return d
}

func (d *Dispatcher) Start() {
	d.log.Info("starting notification dispatcher", zap.Int("workers", len(d.partitions)))
	for i := range d.partitions {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop delivers what is already queued, then closes the publisher.
func (d *Dispatcher) Stop() {
	d.sendMu.Lock()
	if d.closed {
		d.sendMu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.partitions {
		close(ch)
	}
	d.sendMu.Unlock()

	d.log.Info("stopping notification dispatcher")
	d.wg.Wait()
	if err := d.publisher.Close(); err != nil {
		d.log.Warn("close publisher", zap.Error(err))
	}
}

// Notify implements wallet.Notifier. It never blocks; a full partition drops the event.
func (d *Dispatcher) Notify(_ context.Context, n models.Notification) {
	d.sendMu.RLock()
	defer d.sendMu.RUnlock()
	if d.closed {
		d.count(func(s *Stats) { s.Dropped++ })
		return
	}
	idx := int(uint64(n.UserID) % uint64(len(d.partitions)))
	select {
	case d.partitions[idx] <- n:
	default:
		d.count(func(s *Stats) { s.Dropped++ })
		d.log.Warn("notification queue full", zap.Int64("user_id", n.UserID), zap.Int("partition", idx))
	}
}

func (d *Dispatcher) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

func (d *Dispatcher) count(fn func(*Stats)) {
	d.mu.Lock()
	fn(&d.stats)
	d.mu.Unlock()
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()
	for n := range d.partitions[id] {
		if d.hub != nil {
			d.hub.Send(n)
		}
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		err := d.publisher.Publish(ctx, n)
		cancel()
		if err != nil {
			d.count(func(s *Stats) { s.Failed++ })
			d.log.Error("publish notification", zap.Int("worker_id", id), zap.Int64("user_id", n.UserID), zap.Error(err))
			continue
		}
		d.count(func(s *Stats) { s.Delivered++ })
	}
}
