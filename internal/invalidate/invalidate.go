package invalidate

import (
	"context"
	"sync"
	"time"
)

type Job struct {
	Kind string
	ID   string
}

func (j Job) key() string { return j.Kind + ":" + j.ID }

// Invalidator runs cache invalidations on a small worker pool, deduplicating
// jobs that are already in flight.
type Invalidator struct {
	ch    chan Job
	inFly sync.Map // key -> struct{}
	Do    func(ctx context.Context, j Job)
}

func New(capacity int, workerCount int, do func(ctx context.Context, j Job)) *Invalidator {
	if capacity <= 0 { capacity = 256 }
	if workerCount <= 0 { workerCount = 2 }
	inv := &Invalidator{ ch: make(chan Job, capacity), Do: do }
	for i := 0; i < workerCount; i++ {
		go inv.worker()
	}
	return inv
}

func (inv *Invalidator) Enqueue(j Job) {
	if _, exists := inv.inFly.LoadOrStore(j.key(), struct{}{}); exists {
		return
	}
	select {
	case inv.ch <- j:
	default:
		// drop if saturated
		inv.inFly.Delete(j.key())
	}
}

func (inv *Invalidator) worker() {
	for j := range inv.ch {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		func() {
			defer func() {
				inv.inFly.Delete(j.key())
				cancel()
			}()
			if inv.Do != nil { inv.Do(ctx, j) }
		}()
	}
}
