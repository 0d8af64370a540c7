// Package catalog renders the read-only storefront listings.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log"
	"strings"

	"github.com/raushankrgupta/glory-storefront/models"
	"github.com/raushankrgupta/glory-storefront/store"
	"github.com/raushankrgupta/glory-storefront/utils"
	"github.com/raushankrgupta/glory-storefront/views"
)

const (
	NoProductsMessage = "No products yet."
	NoModelsMessage   = "No models yet."
	NoVideosMessage   = "No videos yet."

	ProductsErrorMessage = "Error loading products."
	ModelsErrorMessage   = "Error loading models."
	VideosErrorMessage   = "Error loading videos."
)

// Renderer fills page containers from the catalog collections. Every loader
// is a no-op when its container is not on the page, and none of them retry.
type Renderer struct {
	catalog store.CatalogStore
}

func NewRenderer(catalog store.CatalogStore) *Renderer {
	return &Renderer{catalog: catalog}
}

// LoadProducts fills views.ProductsGrid, newest first.
func (r *Renderer) LoadProducts(ctx context.Context, page *views.Page, logger *strings.Builder) {
	if !page.Has(views.ProductsGrid) {
		return
	}
	products, err := r.catalog.ListProducts(ctx)
	if err != nil {
		fail(page, views.ProductsGrid, logger, "loadProducts", err, ProductsErrorMessage)
		return
	}
	if len(products) == 0 {
		page.Set(views.ProductsGrid, views.Message(NoProductsMessage))
		return
	}
	render(page, views.ProductsGrid, logger, ProductsErrorMessage, func() (template.HTML, error) {
		return views.Products(products)
	})
}

// LoadModels fills views.ModelsList grouped by category and model name.
func (r *Renderer) LoadModels(ctx context.Context, page *views.Page, logger *strings.Builder) {
	if !page.Has(views.ModelsList) {
		return
	}
	records, err := r.catalog.ListModels(ctx)
	if err != nil {
		fail(page, views.ModelsList, logger, "loadModels", err, ModelsErrorMessage)
		return
	}
	if len(records) == 0 {
		page.Set(views.ModelsList, views.Message(NoModelsMessage))
		return
	}
	groups := GroupModels(records)
	render(page, views.ModelsList, logger, ModelsErrorMessage, func() (template.HTML, error) {
		return views.Models(groups)
	})
}

// LoadVideos fills views.VideosGrid, newest first.
func (r *Renderer) LoadVideos(ctx context.Context, page *views.Page, logger *strings.Builder) {
	if !page.Has(views.VideosGrid) {
		return
	}
	videos, err := r.catalog.ListVideos(ctx)
	if err != nil {
		fail(page, views.VideosGrid, logger, "loadVideos", err, VideosErrorMessage)
		return
	}
	if len(videos) == 0 {
		page.Set(views.VideosGrid, views.Message(NoVideosMessage))
		return
	}
	render(page, views.VideosGrid, logger, VideosErrorMessage, func() (template.HTML, error) {
		return views.Videos(videos)
	})
}

// ModelDetail returns one model year for the detail view.
func (r *Renderer) ModelDetail(ctx context.Context, id string) (*models.VehicleModel, error) {
	vm, err := r.catalog.GetModel(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("showModelDetail: %w", err)
	}
	if vm.Specs == nil {
		vm.Specs = map[string]interface{}{}
	}
	return vm, nil
}

func render(page *views.Page, id string, logger *strings.Builder, errMsg string, fn func() (template.HTML, error)) {
	html, err := fn()
	if err != nil {
		fail(page, id, logger, "render "+id, err, errMsg)
		return
	}
	page.Set(id, html)
}

func fail(page *views.Page, id string, logger *strings.Builder, op string, err error, msg string) {
	if logger != nil {
		utils.AddToLogMessage(logger, fmt.Sprintf("%s: %v", op, err))
	} else {
		log.Printf("%s: %v", op, err)
	}
	page.Set(id, views.Message(msg))
}
