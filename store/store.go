// Package store holds the document-store side of the storefront: roles,
// catalog collections and carts.
package store

import (
	"context"
	"errors"

	"github.com/raushankrgupta/glory-storefront/models"
)

var (
	// ErrNotFound is returned when a keyed lookup has no document.
	ErrNotFound = errors.New("document not found")
	// ErrCartConflict is returned when an atomic cart update keeps racing.
	ErrCartConflict = errors.New("cart update conflict")
)

type RoleStore interface {
	GetRole(ctx context.Context, userID string) (*models.Role, error)
}

// CatalogStore reads and creates the create-only catalog collections.
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListModels(ctx context.Context) ([]models.VehicleModel, error)
	ListVideos(ctx context.Context) ([]models.Video, error)
	ListHomepageImages(ctx context.Context) ([]models.HomepageImage, error)

	GetProduct(ctx context.Context, id string) (*models.Product, error)
	GetModel(ctx context.Context, id string) (*models.VehicleModel, error)

	InsertProduct(ctx context.Context, p *models.Product) error
	InsertVideo(ctx context.Context, v *models.Video) error
	InsertModel(ctx context.Context, m *models.VehicleModel) error
	InsertHomepageImage(ctx context.Context, img *models.HomepageImage) error
}

// CartStore updates carts with single-document atomic operations.
type CartStore interface {
	// GetCart returns an empty cart when the user has none.
	GetCart(ctx context.Context, userID string) (*models.Cart, error)
	// AddItem increments the quantity of the line with item.ID, treating a
	// missing or zero quantity as one, or appends item with quantity one.
	AddItem(ctx context.Context, userID string, item models.CartItem) (*models.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error)
	ClearCart(ctx context.Context, userID string) error
}

// Store is everything the storefront needs from the document store.
type Store interface {
	RoleStore
	CatalogStore
	CartStore
}
