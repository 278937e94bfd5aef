package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/pautahq/pauta/internal/imagecache"
)

type ImagesHandler struct {
	cache *imagecache.Cache
}

func NewImagesHandler(r *gin.Engine, cache *imagecache.Cache) *ImagesHandler {
	handler := &ImagesHandler{cache: cache}
	r.GET("/images/inline", handler.Inline)
	return handler
}

// Inline returns the image at ?url= as a base64 data URL.
func (h *ImagesHandler) Inline(c *gin.Context) {
	src := c.Query("url")
	if src == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "url is required"})
		return
	}
	dataURL, err := h.cache.DataURL(c.Request.Context(), src)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, imagecache.ErrNotImage):
			status = http.StatusUnsupportedMediaType
		case errors.Is(err, imagecache.ErrUnsupportedScheme), errors.Is(err, imagecache.ErrBlockedAddress):
			status = http.StatusBadRequest
		}
		abortWithError(c, status, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dataUrl": dataURL})
}
