package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	cartsvc "bookstore-api/internal/service/cart"
)

type addToCartRequest struct {
	BookID   string `json:"bookId" binding:"required"`
	Quantity int    `json:"quantity"`
}

// Quantity is a pointer so zero and negative values reach the clamp instead of
// failing the required binding.
type updateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type mergeCartRequest struct {
	SessionID string              `json:"sessionId"`
	Items     []cartsvc.MergeItem `json:"items"`
}

func getCartHandler(carts CartEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "owner not resolved"})
			return
		}
		cart, err := carts.Load(c.Request.Context(), owner)
		if err != nil {
			respondError(c, err, "failed to fetch cart")
			return
		}
		respondOK(c, "", gin.H{"cart": cart})
	}
}

func addToCartHandler(carts CartEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "owner not resolved"})
			return
		}
		var req addToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "bookId is required"})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		cart, err := carts.AddItem(c.Request.Context(), owner, req.BookID, req.Quantity)
		if err != nil {
			respondError(c, err, "failed to add item to cart")
			return
		}
		respondOK(c, "item added to cart", gin.H{"cart": cart})
	}
}

func updateQuantityHandler(carts CartEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "owner not resolved"})
			return
		}
		var req updateQuantityRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "quantity is required"})
			return
		}
		cart, err := carts.UpdateQuantity(c.Request.Context(), owner, c.Param("bookId"), *req.Quantity)
		if err != nil {
			respondError(c, err, "item not found in cart")
			return
		}
		respondOK(c, "quantity updated", gin.H{"cart": cart})
	}
}

func removeFromCartHandler(carts CartEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "owner not resolved"})
			return
		}
		cart, err := carts.RemoveItem(c.Request.Context(), owner, c.Param("bookId"))
		if err != nil {
			respondError(c, err, "failed to remove item from cart")
			return
		}
		respondOK(c, "item removed from cart", gin.H{"cart": cart})
	}
}

func clearCartHandler(carts CartEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "owner not resolved"})
			return
		}
		cart, err := carts.Clear(c.Request.Context(), owner)
		if err != nil {
			respondError(c, err, "failed to clear cart")
			return
		}
		respondOK(c, "cart cleared", gin.H{"cart": cart})
	}
}

// mergeCartHandler folds the guest cart into the authenticated user's cart at
// login. It requires a user identity; the guest session comes from the body so
// the storefront can merge right after the login round-trip.
func mergeCartHandler(carts CartEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "merge requires an authenticated user"})
			return
		}
		var req mergeCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid merge request"})
			return
		}
		cart, err := carts.Merge(c.Request.Context(), userID, req.SessionID, req.Items)
		if err != nil {
			respondError(c, err, "failed to merge cart")
			return
		}
		respondOK(c, "cart merged", gin.H{"cart": cart})
	}
}
