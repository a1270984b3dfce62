package gateway

import (
	"net/http"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (g *Gateway) getCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	view, err := g.cart.Get(c.Request.Context(), userID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type addCartItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (g *Gateway) addCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req addCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
		return
	}

	cart, err := g.cart.AddItem(c.Request.Context(), userID, productID, req.Quantity, req.Size, req.Color)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type updateCartItemRequest struct {
	Quantity int    `json:"quantity"`
	Size     string `json:"size"`
	Color    string `json:"color"`
}

func (g *Gateway) updateCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}
	var req updateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := g.cart.UpdateQuantity(c.Request.Context(), userID, productID, req.Size, req.Color, req.Quantity)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (g *Gateway) removeCartItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	productID, ok := pathID(c, "productId")
	if !ok {
		return
	}

	cart, err := g.cart.RemoveItem(c.Request.Context(), userID, productID, c.Query("size"), c.Query("color"))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

type guestCartLine struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gte=1"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type mergeGuestCartRequest struct {
	Items []guestCartLine `json:"items" binding:"required,dive"`
}

// mergeGuestCart folds the client-held guest cart into the server cart
// right after login.
func (g *Gateway) mergeGuestCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req mergeGuestCartRequest
	if !bindJSON(c, &req) {
		return
	}

	items := make([]models.CartItem, 0, len(req.Items))
	for _, line := range req.Items {
		productID, err := primitive.ObjectIDFromHex(line.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId: " + line.ProductID})
			return
		}
		items = append(items, models.CartItem{
			ProductID: productID,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
		})
	}

	cart, err := g.cart.MergeGuestCart(c.Request.Context(), userID, items)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (g *Gateway) clearCart(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := g.cart.Clear(c.Request.Context(), userID); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
