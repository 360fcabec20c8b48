package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"math-buddy/utils"
	"math-buddy/web/types"
)

// GenerateImage handles POST /api/image. The result status is always
// in-band; only malformed requests produce a non-200.
func (h *Handler) GenerateImage(c *gin.Context) {
	var req types.ImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res := h.images.Generate(c.Request.Context(), req.Prompt, req.Theme, req.Format)
	c.JSON(http.StatusOK, types.ImageResponse{
		ImageURL: res.ImageURL,
		Status:   res.Status,
		Message:  res.Message,
	})
}

// ServeImage handles GET /static/images/:filename, serving generated
// illustrations with long-lived caching since each file is written once
// under a unique name.
func (h *Handler) ServeImage(c *gin.Context) {
	filename := utils.SanitizeFilename(c.Param("filename"))
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid filename"})
		return
	}

	path := filepath.Join(h.cfg.StaticDir, "images", filename)
	if !utils.FileExists(path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not found"})
		return
	}

	c.Header("Access-Control-Allow-Origin", "*")
	c.Header("Cache-Control", "public, max-age=86400")
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		c.Header("Content-Type", "image/png")
	case ".jpg", ".jpeg":
		c.Header("Content-Type", "image/jpeg")
	case ".webp":
		c.Header("Content-Type", "image/webp")
	}
	c.File(path)
}
