package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	defaultGreetingName = "there"
	dateTimeLayout      = "Monday, January 2, 2006 at 3:04:05 PM"
)

// GreetingHandler serves the plain-text convenience routes.
type GreetingHandler struct {
	now func() time.Time
}

// NewGreetingHandler creates a greeting handler. A nil clock means time.Now.
func NewGreetingHandler(now func() time.Time) *GreetingHandler {
	if now == nil {
		now = time.Now
	}

	return &GreetingHandler{now: now}
}

// Root handles GET / when no static site is configured.
func (h *GreetingHandler) Root(c *gin.Context) {
	c.String(http.StatusOK, "Hello from the server!")
}

// DateTime handles GET /datetime.
func (h *GreetingHandler) DateTime(c *gin.Context) {
	c.String(http.StatusOK, "Current date and time: "+h.now().Format(dateTimeLayout))
}

// Greet handles GET /greet?name= and GET /greet/:name.
func (h *GreetingHandler) Greet(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		name = strings.TrimSpace(c.Query("name"))
	}

	if name == "" {
		name = defaultGreetingName
	}

	c.String(http.StatusOK, "Hello, %s!", name)
}
