package gateway

import (
	"net/http"
	"strconv"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/gin-gonic/gin"
)

func (g *Gateway) dashboard(c *gin.Context) {
	stats, err := g.admin.Dashboard(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (g *Gateway) adminListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := models.OrderStatus(c.Query("status"))

	orders, total, err := g.admin.ListOrders(c.Request.Context(), status, page, limit)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders, "total": total, "page": page, "limit": limit})
}

type updateOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Placed Packed Shipped Delivered Cancelled"`
}

func (g *Gateway) updateOrderStatus(c *gin.Context) {
	orderID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := g.admin.UpdateOrderStatus(c.Request.Context(), orderID, models.OrderStatus(req.Status))
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}
