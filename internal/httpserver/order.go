package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bookstore-api/internal/domain"
	ordersvc "bookstore-api/internal/service/order"
)

type submitOrderRequest struct {
	Name    string                `json:"name"`
	Email   string                `json:"email"`
	Phone   string                `json:"phone"`
	Address ordersvc.AddressInput `json:"address"`
}

type orderResponse struct {
	domain.Order
	ProductIDs []string      `json:"productIds"`
	Books      []domain.Book `json:"books,omitempty"`
}

// submitOrderHandler reads the owner's cart server-side and submits its
// snapshot lines, so the order total is the total the shopper saw. It does not
// clear the cart; the storefront clears it explicitly once checkout completes.
func submitOrderHandler(orders OrderDesk, carts CartEngine) gin.HandlerFunc {
	return func(c *gin.Context) {
		owner, ok := ownerFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "owner not resolved"})
			return
		}
		var req submitOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "invalid order request"})
			return
		}

		cart, err := carts.Load(c.Request.Context(), owner)
		if err != nil {
			respondError(c, err, "failed to load cart")
			return
		}

		items := make([]ordersvc.LineInput, 0, len(cart.Items))
		for _, item := range cart.Items {
			items = append(items, ordersvc.LineInput{
				BookID:     item.BookID,
				Title:      item.Title,
				PriceCents: item.PriceCents,
				Quantity:   item.Quantity,
			})
		}

		order, err := orders.Submit(c.Request.Context(), ordersvc.SubmitInput{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
			Items:   items,
		})
		if err != nil {
			respondError(c, err, "failed to create order")
			return
		}
		respondOK(c, "order created", gin.H{"order": toOrderResponse(*order, nil)})
	}
}

func listOrdersHandler(orders OrderDesk, books Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Param("email")
		found, err := orders.ListByEmail(c.Request.Context(), email)
		if err != nil {
			respondError(c, err, "failed to fetch orders")
			return
		}

		// One batch catalog read for current book data across all orders.
		// Vanished books are simply absent from the enrichment.
		idSet := map[string]bool{}
		var ids []string
		for _, o := range found {
			for _, id := range o.ProductIDs() {
				if !idSet[id] {
					idSet[id] = true
					ids = append(ids, id)
				}
			}
		}
		enriched, err := books.GetByIDs(c.Request.Context(), ids)
		if err != nil {
			respondError(c, err, "failed to fetch order books")
			return
		}
		byID := make(map[string]domain.Book, len(enriched))
		for _, b := range enriched {
			byID[b.ID] = b
		}

		out := make([]orderResponse, 0, len(found))
		for _, o := range found {
			var orderBooks []domain.Book
			for _, id := range o.ProductIDs() {
				if b, ok := byID[id]; ok {
					orderBooks = append(orderBooks, b)
				}
			}
			out = append(out, toOrderResponse(o, orderBooks))
		}
		respondOK(c, "", gin.H{"orders": out})
	}
}

func toOrderResponse(o domain.Order, books []domain.Book) orderResponse {
	return orderResponse{
		Order:      o,
		ProductIDs: o.ProductIDs(),
		Books:      books,
	}
}
