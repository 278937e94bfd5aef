package restapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pautahq/pauta/internal/plugins/db/supadb"
)

type SupabaseHandler struct {
	client *supadb.Client
}

func NewSupabaseHandler(r *gin.Engine, client *supadb.Client) *SupabaseHandler {
	if client == nil {
		return nil
	}

	handler := &SupabaseHandler{client: client}
	group := r.Group("/supabase")
	group.GET("/health", handler.Health)
	group.GET("/sessions", handler.ListSessions)

	return handler
}

func (h *SupabaseHandler) Health(c *gin.Context) {
	if err := h.client.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *SupabaseHandler) ListSessions(c *gin.Context) {
	limit := uint64(50)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = parsed
	}
	sessions, err := h.client.Sessions().List(c.Request.Context(), uint(limit))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sessions)
}
