package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type createOrderRequest struct {
	Address addressRequest `json:"address" binding:"required"`
}

// createOrder snapshots the cart into a pending order and returns the
// gateway order details the browser needs for the checkout widget.
func (g *Gateway) createOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req createOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	intent, err := g.checkout.CreateOrder(c.Request.Context(), userID, req.Address.toModel())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, intent)
}

type verifyPaymentRequest struct {
	GatewayOrderID   string `json:"razorpayOrderId" binding:"required"`
	GatewayPaymentID string `json:"razorpayPaymentId" binding:"required"`
	Signature        string `json:"razorpaySignature" binding:"required"`
}

func (g *Gateway) verifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := g.checkout.VerifyPayment(c.Request.Context(), req.GatewayOrderID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "payment verified", "order": order})
}

func (g *Gateway) listOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orders, err := g.checkout.ListOrders(c.Request.Context(), userID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (g *Gateway) getOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := g.checkout.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
