package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pautahq/pauta/internal/chat"
	"github.com/pautahq/pauta/internal/core"
)

type SessionsHandler struct {
	router *core.Router
}

func NewSessionsHandler(r *gin.Engine, router *core.Router) *SessionsHandler {
	handler := &SessionsHandler{router: router}
	group := r.Group("/sessions")
	group.GET("/:name", handler.Get)
	group.POST("/:name/messages", handler.Append)
	return handler
}

func (h *SessionsHandler) Get(c *gin.Context) {
	name := c.Param("name")
	messages, err := h.router.History(c.Request.Context(), name)
	if err != nil {
		abortWithError(c, statusFor(err), err)
		return
	}
	if messages == nil {
		messages = []chat.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"name": name, "messages": messages})
}

func (h *SessionsHandler) Append(c *gin.Context) {
	var msg chat.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	if role, ok := chat.ParseRole(string(msg.Role)); ok {
		msg.Role = role
	}
	if err := h.router.Record(c.Request.Context(), c.Param("name"), msg); err != nil {
		abortWithError(c, statusFor(err), err)
		return
	}
	c.Status(http.StatusNoContent)
}
