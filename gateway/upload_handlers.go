package gateway

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// uploadImage stores a product image on disk under a generated name and
// returns its public URL.
func (g *Gateway) uploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	if file.Size > g.config.Upload.MaxSizeMB<<20 {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("image exceeds %d MB", g.config.Upload.MaxSizeMB)})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only jpg, jpeg, png and webp files are allowed"})
		return
	}

	filename := uuid.NewString() + ext
	destination := filepath.Join(g.config.Upload.Dir, filename)
	if err := c.SaveUploadedFile(file, destination); err != nil {
		g.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": g.config.Upload.PublicPath + "/" + filename})
}
