package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (g *Gateway) listProductReviews(c *gin.Context) {
	productID, ok := pathID(c, "id")
	if !ok {
		return
	}

	reviews, err := g.reviews.ListByProduct(c.Request.Context(), productID)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

type createReviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment" binding:"max=2000"`
}

func (g *Gateway) createReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req createReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	productID, err := primitive.ObjectIDFromHex(req.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid productId"})
		return
	}

	user, err := g.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		g.respondError(c, err)
		return
	}

	review, err := g.reviews.Create(c.Request.Context(), userID, user.Name, productID, req.Rating, req.Comment)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

type updateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=2000"`
}

func (g *Gateway) updateReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := g.reviews.Update(c.Request.Context(), userID, reviewID, req.Rating, req.Comment)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (g *Gateway) deleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := g.reviews.Delete(c.Request.Context(), userID, isAdmin(c), reviewID); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}
