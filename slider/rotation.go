package slider

import (
	"sync"
	"time"
)

// Rotation advances a Slider on a timer until Stop is called. The owner of
// the view that started it must stop it.
type Rotation struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Start advances s every interval and calls onAdvance with the new index
// from the rotation goroutine. onAdvance may be nil.
func (s *Slider) Start(interval time.Duration, onAdvance func(int)) *Rotation {
	r := &Rotation{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go func() {
		defer close(r.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-r.stop:
				return
			case <-ticker.C:
				idx := s.Next()
				if onAdvance != nil {
					onAdvance(idx)
				}
			}
		}
	}()
	return r
}

// Stop ends the rotation and waits for its goroutine to exit. It is safe to
// call more than once.
func (r *Rotation) Stop() {
	r.once.Do(func() { close(r.stop) })
	<-r.done
}
