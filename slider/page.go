package slider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/raushankrgupta/glory-storefront/store"
	"github.com/raushankrgupta/glory-storefront/utils"
	"github.com/raushankrgupta/glory-storefront/views"
)

// LoadHomepageImages renders the hero carousel into the page with slide
// active. It is a no-op when the page has no views.HeroCarousel.
func LoadHomepageImages(ctx context.Context, page *views.Page, catalog store.CatalogStore, fallback string, slide int, interval time.Duration, logger *strings.Builder) {
	if !page.Has(views.HeroCarousel) {
		return
	}
	s := Load(ctx, catalog, fallback)
	s.Show(slide)

	html, err := views.Slider(s.View(interval))
	if err != nil {
		if logger != nil {
			utils.AddToLogMessage(logger, fmt.Sprintf("loadHomepageImages: %v", err))
		}
		return
	}
	page.Set(views.HeroCarousel, html)
}
