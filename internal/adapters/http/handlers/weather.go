package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quote-api/internal/adapters/http/dto"
	"github.com/jsamuelsen/quote-api/internal/app"
)

// WeatherHandler serves GET /api/weather.
type WeatherHandler struct {
	service *app.WeatherService
}

// NewWeatherHandler creates a new weather handler.
func NewWeatherHandler(service *app.WeatherService) *WeatherHandler {
	return &WeatherHandler{service: service}
}

// Current handles GET /api/weather?city= or ?lat=&lon=.
func (h *WeatherHandler) Current(c *gin.Context) {
	var q dto.WeatherQuery
	if err := dto.BindQuery(c, &q); err != nil {
		dto.HandleError(c, err)
		return
	}

	report, err := h.service.CurrentWeather(c.Request.Context(), q.Domain())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromWeather(report))
}
