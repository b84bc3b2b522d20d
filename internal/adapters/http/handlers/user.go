package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-api/internal/app"
	"github.com/jsamuelsen/quote-api/internal/domain"
)

// UserHandler serves the read-only /api/users resource.
type UserHandler struct {
	service *app.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(service *app.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// List handles GET /api/users.
func (h *UserHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromUsers(h.service.ListUsers(c.Request.Context())))
}

// Get handles GET /api/users/:id. An id that is not an integer cannot name
// a user, so it is reported as not found rather than malformed.
func (h *UserHandler) Get(c *gin.Context) {
	raw := c.Param("id")

	id, err := strconv.Atoi(raw)
	if err != nil {
		dto.HandleError(c, domain.NewNotFoundError("user", raw))
		return
	}

	u, err := h.service.GetUser(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromUser(u))
}

// RegisterRoutes mounts the user routes on rg.
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
}
