package api

import (
	"github.com/labstack/echo/v4"

	"BarPulse/internal/domain/models"
	"BarPulse/internal/usecase"
	xhttp "BarPulse/pkg/http"
	applogger "BarPulse/pkg/logger"
)

// DataHandler serves raw bar passthrough, trade search and the trade
// journal.
type DataHandler struct {
	logger  *applogger.Logger
	bars    *usecase.IndicatorService
	trades  *usecase.TradeService
	journal *usecase.JournalService
}

func NewDataHandler(logger *applogger.Logger, bars *usecase.IndicatorService, trades *usecase.TradeService, journal *usecase.JournalService) *DataHandler {
	return &DataHandler{logger: logger, bars: bars, trades: trades, journal: journal}
}

func (h *DataHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/bars", h.Bars)
	g.GET("/trades", h.Trades)
	g.POST("/journal", h.JournalCreate)
}

func (h *DataHandler) Bars(c echo.Context) error {
	req := &models.BarsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.bars.Bars(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("bars usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DataHandler) Trades(c echo.Context) error {
	req := &models.TradesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.trades.Search(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("trades usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *DataHandler) JournalCreate(c echo.Context) error {
	req := &models.JournalCreateRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	entry, err := h.journal.Create(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("journal usecase error", applogger.Error(err))
		return xhttp.AppErrorResponse(c, toAppError(err))
	}
	return xhttp.CreatedResponse(c, entry)
}
