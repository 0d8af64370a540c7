// Package cart manages the signed-in user's cart.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/raushankrgupta/glory-storefront/auth"
	"github.com/raushankrgupta/glory-storefront/models"
	"github.com/raushankrgupta/glory-storefront/store"
)

// ErrSignInRequired is returned to signed-out callers; the operation does
// not complete.
var ErrSignInRequired = errors.New("sign in to add products to the cart")

// View is a cart plus its computed total.
type View struct {
	*models.Cart
	Total float64 `json:"total"`
}

type Service struct {
	carts store.CartStore
}

func NewService(carts store.CartStore) *Service {
	return &Service{carts: carts}
}

// AddToCart adds one unit of product to the caller's cart. Repeat adds of
// the same product ID increment its line.
func (s *Service) AddToCart(ctx context.Context, product models.ProductRef) (*View, error) {
	sess := auth.SessionFrom(ctx)
	if !sess.SignedIn() {
		return nil, ErrSignInRequired
	}
	if product.ID == "" {
		return nil, errors.New("product id is required")
	}

	cart, err := s.carts.AddItem(ctx, sess.UserID(), models.CartItem{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Image: product.Image,
	})
	if err != nil {
		log.Printf("addToCart %s/%s: %v", sess.UserID(), product.ID, err)
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	return newView(cart), nil
}

// Cart returns the caller's cart.
func (s *Service) Cart(ctx context.Context) (*View, error) {
	sess := auth.SessionFrom(ctx)
	if !sess.SignedIn() {
		return nil, ErrSignInRequired
	}
	cart, err := s.carts.GetCart(ctx, sess.UserID())
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	return newView(cart), nil
}

// RemoveFromCart drops the line of productID, if any.
func (s *Service) RemoveFromCart(ctx context.Context, productID string) (*View, error) {
	sess := auth.SessionFrom(ctx)
	if !sess.SignedIn() {
		return nil, ErrSignInRequired
	}
	cart, err := s.carts.RemoveItem(ctx, sess.UserID(), productID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove from cart: %w", err)
	}
	return newView(cart), nil
}

// ClearCart empties the caller's cart.
func (s *Service) ClearCart(ctx context.Context) (*View, error) {
	sess := auth.SessionFrom(ctx)
	if !sess.SignedIn() {
		return nil, ErrSignInRequired
	}
	if err := s.carts.ClearCart(ctx, sess.UserID()); err != nil {
		return nil, fmt.Errorf("failed to clear cart: %w", err)
	}
	return newView(&models.Cart{UserID: sess.UserID()}), nil
}

func newView(cart *models.Cart) *View {
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &View{Cart: cart, Total: cart.Total()}
}
