package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/glory-storefront/auth"
	"github.com/raushankrgupta/glory-storefront/cart"
	"github.com/raushankrgupta/glory-storefront/store"
	"github.com/raushankrgupta/glory-storefront/utils"
)

type AddToCartRequest struct {
	ProductID string `json:"id"`
}

// CartHandler returns the caller's cart with its total
func (s *Server) CartHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Cart")

	view, err := s.carts.Cart(r.Context())
	if err != nil {
		s.respondCartError(w, r, &logMessageBuilder, err, "Error loading cart.")
		return
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

// AddToCartHandler adds one unit of a catalog product to the caller's cart.
// Name, price and image are taken from the catalog, never from the client.
func (s *Server) AddToCartHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Add To Cart")

	if !auth.SessionFrom(r.Context()).SignedIn() {
		s.respondCartError(w, r, &logMessageBuilder, cart.ErrSignInRequired, "")
		return
	}

	productID, err := readProductID(r)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}
	if productID == "" {
		utils.RespondError(w, &logMessageBuilder, "Product id is required", http.StatusBadRequest)
		return
	}

	product, err := s.catalog.GetProduct(r.Context(), productID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.RespondError(w, &logMessageBuilder, "Product not found", http.StatusNotFound)
			return
		}
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error loading product %s: %v", productID, err))
		utils.RespondError(w, &logMessageBuilder, "Error adding to cart.", http.StatusInternalServerError)
		return
	}

	view, err := s.carts.AddToCart(r.Context(), product.Ref())
	if err != nil {
		s.respondCartError(w, r, &logMessageBuilder, err, "Error adding to cart.")
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Added %s, cart has %d line(s)", productID, len(view.Items)))

	if utils.WantsHTML(r) {
		back := r.Referer()
		if back == "" {
			back = "/"
		}
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product added to cart.",
		"cart":    view,
	})
}

// RemoveFromCartHandler drops one product line from the caller's cart
func (s *Server) RemoveFromCartHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Remove From Cart")

	view, err := s.carts.RemoveFromCart(r.Context(), r.PathValue("id"))
	if err != nil {
		s.respondCartError(w, r, &logMessageBuilder, err, "Error removing from cart.")
		return
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

// ClearCartHandler empties the caller's cart
func (s *Server) ClearCartHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer func() {
		fmt.Println(logMessageBuilder.String())
	}()
	utils.StartLogMessage(&logMessageBuilder, "Clear Cart")

	view, err := s.carts.ClearCart(r.Context())
	if err != nil {
		s.respondCartError(w, r, &logMessageBuilder, err, "Error clearing cart.")
		return
	}
	utils.RespondJSON(w, http.StatusOK, view)
}

// respondCartError sends signed-out browsers to the sign-in page; API clients
// get a 401 carrying the sign-in URL.
func (s *Server) respondCartError(w http.ResponseWriter, r *http.Request, logger *strings.Builder, err error, message string) {
	if errors.Is(err, cart.ErrSignInRequired) {
		utils.AddToLogMessage(logger, "Sign in required")
		if utils.WantsHTML(r) {
			http.Redirect(w, r, s.opts.SignInURL, http.StatusSeeOther)
			return
		}
		utils.RespondJSON(w, http.StatusUnauthorized, map[string]string{
			"error":       "Please sign in to add products to your cart.",
			"sign_in_url": s.opts.SignInURL,
		})
		return
	}
	utils.AddToLogMessage(logger, err.Error())
	utils.RespondError(w, logger, message, http.StatusInternalServerError)
}

func readProductID(r *http.Request) (string, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req AddToCartRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", err
		}
		return strings.TrimSpace(req.ProductID), nil
	}
	return strings.TrimSpace(r.FormValue("id")), nil
}
