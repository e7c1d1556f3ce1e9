package api

import (
	"time"

	"github.com/labstack/echo/v4"

	"BarPulse/internal/analytics"
	"BarPulse/internal/domain/models"
	"BarPulse/internal/usecase"
	xhttp "BarPulse/pkg/http"
	applogger "BarPulse/pkg/logger"
	"BarPulse/pkg/util"
)

// AnalyticsHandler serves the bar-analytics endpoints: VWAP, rolling
// indicators, market-structure context and trading hours.
type AnalyticsHandler struct {
	logger     *applogger.Logger
	indicators *usecase.IndicatorService
	context    *usecase.ContextService
}

func NewAnalyticsHandler(logger *applogger.Logger, indicators *usecase.IndicatorService, ctxSvc *usecase.ContextService) *AnalyticsHandler {
	return &AnalyticsHandler{logger: logger, indicators: indicators, context: ctxSvc}
}

func (h *AnalyticsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/hours", h.Hours)

	g := e.Group("/api")
	g.GET("/vwap", h.Vwap)
	g.GET("/indicators", h.Indicators)
	g.GET("/context/levels", h.ContextLevels)
}

func (h *AnalyticsHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC(),
	})
}

// Hours reports the weekly closure status for now or an explicit ?at=.
func (h *AnalyticsHandler) Hours(c echo.Context) error {
	at := time.Now().UTC()
	if raw := c.QueryParam("at"); raw != "" {
		t, ok := util.ParseTime(raw)
		if !ok {
			return xhttp.AppErrorResponse(c, xhttp.BadRequestError("bad at time "+raw))
		}
		at = t.UTC()
	}
	return xhttp.SuccessResponse(c, analytics.WeekendStatus(at))
}

func (h *AnalyticsHandler) Vwap(c echo.Context) error {
	req := &models.VwapRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.indicators.Vwap(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("vwap usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsHandler) Indicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.indicators.Indicators(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("indicators usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalyticsHandler) ContextLevels(c echo.Context) error {
	req := &models.ContextLevelsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.context.Levels(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("context levels usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, res)
}
