package gateway

import (
	"net/http"
	"strconv"

	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/models"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/repository"
	"github.com/Sourabhkumar077/AmarJyoti-sub000/pkg/service"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// listProducts composes the catalog query from the URL: category, price
// range, fabric, color, free-text search, sort and pagination.
func (g *Gateway) listProducts(c *gin.Context) {
	q := repository.ProductQuery{
		Fabric: c.Query("fabric"),
		Color:  c.Query("color"),
		Search: c.Query("q"),
		Sort:   c.Query("sort"),
	}

	if raw := c.Query("category"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category"})
			return
		}
		q.CategoryID = &id
	}
	if raw := c.Query("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid minPrice"})
			return
		}
		q.MinPrice = &v
	}
	if raw := c.Query("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid maxPrice"})
			return
		}
		q.MaxPrice = &v
	}
	q.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	q.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

	page, err := g.catalog.ListProducts(c.Request.Context(), q)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (g *Gateway) getProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	product, err := g.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (g *Gateway) listCategories(c *gin.Context) {
	categories, err := g.catalog.ListCategories(c.Request.Context())
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

type createProductRequest struct {
	Name        string   `json:"name" binding:"required,min=2,max=200"`
	Description string   `json:"description" binding:"required"`
	CategoryID  string   `json:"categoryId" binding:"required"`
	Price       float64  `json:"price" binding:"required,gt=0"`
	Stock       int      `json:"stock" binding:"gte=0"`
	Fabric      string   `json:"fabric"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Images      []string `json:"images"`
}

func (g *Gateway) createProduct(c *gin.Context) {
	var req createProductRequest
	if !bindJSON(c, &req) {
		return
	}
	categoryID, err := primitive.ObjectIDFromHex(req.CategoryID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid categoryId"})
		return
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  categoryID,
		Price:       req.Price,
		Stock:       req.Stock,
		Fabric:      req.Fabric,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Images:      req.Images,
	}
	if err := g.catalog.CreateProduct(c.Request.Context(), product); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

type updateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=2,max=200"`
	Description *string  `json:"description"`
	CategoryID  *string  `json:"categoryId"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
	Fabric      *string  `json:"fabric"`
	Sizes       []string `json:"sizes"`
	Colors      []string `json:"colors"`
	Images      []string `json:"images"`
	Active      *bool    `json:"active"`
}

func (g *Gateway) updateProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	update := service.ProductUpdate{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Fabric:      req.Fabric,
		Sizes:       req.Sizes,
		Colors:      req.Colors,
		Images:      req.Images,
		Active:      req.Active,
	}
	if req.CategoryID != nil {
		categoryID, err := primitive.ObjectIDFromHex(*req.CategoryID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid categoryId"})
			return
		}
		update.CategoryID = &categoryID
	}

	product, err := g.catalog.UpdateProduct(c.Request.Context(), id, update)
	if err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (g *Gateway) deleteProduct(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := g.catalog.DeleteProduct(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

type categoryRequest struct {
	Name        string `json:"name" binding:"required,min=2,max=100"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

func (g *Gateway) createCategory(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
	}
	if err := g.catalog.CreateCategory(c.Request.Context(), category); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (g *Gateway) updateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req categoryRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := g.catalog.UpdateCategory(c.Request.Context(), id, req.Name, req.Description, req.Image); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category updated"})
}

func (g *Gateway) deleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := g.catalog.DeleteCategory(c.Request.Context(), id); err != nil {
		g.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}
