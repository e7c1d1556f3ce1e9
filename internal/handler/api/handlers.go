package api

import "github.com/labstack/echo/v4"

// Handlers bundles the route groups behind one registration point.
type Handlers struct {
	analytics *AnalyticsHandler
	data      *DataHandler
}

func NewHandlers(analytics *AnalyticsHandler, data *DataHandler) *Handlers {
	return &Handlers{analytics: analytics, data: data}
}

func (h *Handlers) RegisterRoutes(e *echo.Echo) {
	h.analytics.RegisterRoutes(e)
	h.data.RegisterRoutes(e)
}
