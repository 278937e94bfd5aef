package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"github.com/pautahq/pauta/internal/chat"
	"github.com/pautahq/pauta/internal/core"
	"github.com/pautahq/pauta/internal/intent"
	"github.com/pautahq/pauta/internal/plugins/db/fsdb"
)

type messageRequest struct {
	// Pointer so that an empty message binds; classifiers accept any text.
	Message *string `json:"message" binding:"required"`
}

type referenceRequest struct {
	History []chat.Message `json:"history"`
	Message *string        `json:"message" binding:"required"`
}

type FormatsHandler struct{}

func NewFormatsHandler(r *gin.Engine) *FormatsHandler {
	handler := &FormatsHandler{}
	group := r.Group("/formats")
	group.GET("", handler.List)
	group.GET("/alternatives", handler.Alternatives)
	return handler
}

func (h *FormatsHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, intent.Formats())
}

func (h *FormatsHandler) Alternatives(c *gin.Context) {
	c.JSON(http.StatusOK, intent.AlternativeFormats(c.Query("current")))
}

type IntentHandler struct {
	router *core.Router
}

func NewIntentHandler(r *gin.Engine, router *core.Router) *IntentHandler {
	handler := &IntentHandler{router: router}
	group := r.Group("/intent")
	group.POST("/format", handler.Format)
	group.POST("/image", handler.Image)
	group.POST("/reference", handler.Reference)
	group.POST("/resolve", handler.Resolve)
	return handler
}

func (h *IntentHandler) Format(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, intent.DetectFormat(*req.Message))
}

func (h *IntentHandler) Image(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, intent.DetectImageGenerationRequest(*req.Message))
}

func (h *IntentHandler) Reference(c *gin.Context) {
	var req referenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	if err := validateHistory(req.History); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	c.JSON(http.StatusOK, intent.DetectContextualReference(req.History, *req.Message))
}

func (h *IntentHandler) Resolve(c *gin.Context) {
	var req core.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	if err := validateHistory(req.History); err != nil {
		abortWithError(c, http.StatusBadRequest, err)
		return
	}
	res, err := h.router.Resolve(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func validateHistory(history []chat.Message) error {
	for i, msg := range history {
		if !msg.Role.Valid() {
			return errors.Wrapf(core.ErrInvalidRole, "history[%d]: %q", i, msg.Role)
		}
	}
	return nil
}

// statusFor maps router and store errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrEmptyMessage),
		errors.Is(err, core.ErrInvalidRole),
		errors.Is(err, fsdb.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNoStore):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
