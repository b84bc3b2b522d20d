package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-api/internal/app"
)

// NameHandler serves the /names list used by the browser and mobile clients.
type NameHandler struct {
	service *app.NameService
}

// NewNameHandler creates a new name handler.
func NewNameHandler(service *app.NameService) *NameHandler {
	return &NameHandler{service: service}
}

// List handles GET /names.
func (h *NameHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.Names("", h.service.ListNames(c.Request.Context())))
}

// Add handles POST /names.
func (h *NameHandler) Add(c *gin.Context) {
	var req dto.NameRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	names, err := h.service.AddName(c.Request.Context(), *req.Name)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Names("Name added successfully", names))
}

// Clear handles DELETE /names.
func (h *NameHandler) Clear(c *gin.Context) {
	h.service.ClearNames(c.Request.Context())
	c.JSON(http.StatusOK, dto.Names("", nil))
}

// RegisterRoutes mounts the name routes on rg.
func (h *NameHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Add)
	rg.DELETE("", h.Clear)
}
