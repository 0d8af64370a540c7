// Package slider drives the homepage hero carousel.
package slider

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/raushankrgupta/glory-storefront/store"
	"github.com/raushankrgupta/glory-storefront/views"
)

// Slider is an image rotator with wraparound navigation. It is safe for
// concurrent use by a Rotation and manual controls.
type Slider struct {
	mu     sync.Mutex
	images []string
	active int
}

// New returns a slider over images; an empty list is replaced by fallback.
func New(images []string, fallback string) *Slider {
	if len(images) == 0 {
		images = []string{fallback}
	}
	return &Slider{images: append([]string(nil), images...)}
}

// Load reads homepage images in display order. Empty results and read
// failures both fall back to the single default image.
func Load(ctx context.Context, catalog store.CatalogStore, fallback string) *Slider {
	records, err := catalog.ListHomepageImages(ctx)
	if err != nil {
		log.Printf("no homepage_images collection: %v", err)
		return New(nil, fallback)
	}
	urls := make([]string, 0, len(records))
	for _, rec := range records {
		urls = append(urls, rec.URL)
	}
	return New(urls, fallback)
}

func (s *Slider) Len() int {
	return len(s.images)
}

// Images returns the slides in display order.
func (s *Slider) Images() []string {
	return append([]string(nil), s.images...)
}

func (s *Slider) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Show makes slide i active, wrapping out-of-range values.
func (s *Slider) Show(i int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = Wrap(i, len(s.images))
	return s.active
}

func (s *Slider) Next() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = NextIndex(s.active, len(s.images))
	return s.active
}

func (s *Slider) Prev() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = PrevIndex(s.active, len(s.images))
	return s.active
}

// View renders the current frame.
func (s *Slider) View(interval time.Duration) views.SliderView {
	active := s.Active()
	n := len(s.images)
	return views.SliderView{
		Images:          s.Images(),
		Active:          active,
		Prev:            PrevIndex(active, n),
		Next:            NextIndex(active, n),
		IntervalSeconds: int(interval / time.Second),
		Alt:             "Dongfeng Glory 330S",
	}
}

// NextIndex is (idx + 1) mod n.
func NextIndex(idx, n int) int {
	return Wrap(idx+1, n)
}

// PrevIndex is (idx - 1 + n) mod n.
func PrevIndex(idx, n int) int {
	return Wrap(idx-1, n)
}

// Wrap maps any integer into [0, n).
func Wrap(i, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i % n) + n) % n
}
