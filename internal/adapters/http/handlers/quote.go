package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-api/internal/app"
)

// QuoteHandler serves the /api/quotes resource.
type QuoteHandler struct {
	service *app.QuoteService
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(service *app.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// List handles GET /api/quotes.
func (h *QuoteHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.FromQuotes(h.service.ListQuotes(c.Request.Context())))
}

// Random handles GET /api/quotes/random. An empty store answers 404
// EMPTY_COLLECTION.
func (h *QuoteHandler) Random(c *gin.Context) {
	q, err := h.service.RandomQuote(c.Request.Context())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuote(q))
}

// Get handles GET /api/quotes/:id.
func (h *QuoteHandler) Get(c *gin.Context) {
	q, err := h.service.GetQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromQuote(q))
}

// Create handles POST /api/quotes and answers 201 with the stored quote.
func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.CreateQuoteRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.HandleError(c, err)
		return
	}

	text, author := req.Values()

	q, err := h.service.CreateQuote(c.Request.Context(), text, author)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Header("Location", "/api/quotes/"+q.ID)
	c.JSON(http.StatusCreated, dto.FromQuote(q))
}

// Delete handles DELETE /api/quotes/:id and echoes the removed quote.
func (h *QuoteHandler) Delete(c *gin.Context) {
	q, err := h.service.DeleteQuote(c.Request.Context(), c.Param("id"))
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeletedQuoteResponse{Removed: dto.FromQuote(q)})
}

// RegisterRoutes mounts the quote routes on rg. The literal /random route
// wins over /:id in gin's tree regardless of order.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/random", h.Random)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.DELETE("/:id", h.Delete)
}
