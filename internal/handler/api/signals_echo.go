package api

import (
	"SigScan/internal/domain/models"
	drepo "SigScan/internal/domain/repository"
	"SigScan/internal/usecase"
	xhttp "SigScan/pkg/http"
	xlogger "SigScan/pkg/logger"

	"github.com/labstack/echo/v4"
)

// SignalsEchoHandler exposes the signal query surface over Echo.
type SignalsEchoHandler struct {
	logger  *xlogger.Logger
	query   *usecase.QueryService
	scanner *usecase.Scanner
	stream  drepo.PriceStream // optional
}

func NewSignalsEchoHandler(logger *xlogger.Logger, query *usecase.QueryService, scanner *usecase.Scanner, stream drepo.PriceStream) *SignalsEchoHandler {
	return &SignalsEchoHandler{logger: logger, query: query, scanner: scanner, stream: stream}
}

func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/signals", h.List)
	g.GET("/stats", h.Stats)
	g.DELETE("/signals/:id", h.Delete)
	g.GET("/health", h.Health)
}

// List returns the live signals matching the query filters, newest first.
func (h *SignalsEchoHandler) List(c echo.Context) error {
	req := &models.ListSignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	views, err := h.query.List(c.Request().Context(), req)
	if err != nil {
		h.logger.Error("list signals error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.ListResponse(c, views, int64(len(views)))
}

// Stats returns store aggregates plus the last scan time.
func (h *SignalsEchoHandler) Stats(c echo.Context) error {
	res, err := h.query.Stats(c.Request().Context())
	if err != nil {
		h.logger.Error("stats error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

// Delete removes a signal by id.
func (h *SignalsEchoHandler) Delete(c echo.Context) error {
	id := c.Param("id")
	if id == "" {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("id is required"))
	}

	ok, err := h.query.Delete(c.Request().Context(), id)
	if err != nil {
		h.logger.Error("delete signal error", xlogger.String("id", id), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	if !ok {
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("signal %s not found", id))
	}
	return xhttp.SuccessResponse(c, map[string]string{"deleted": id})
}

type healthResponse struct {
	Status          string `json:"status"`
	Signals         int    `json:"signals"`
	Scanning        bool   `json:"scanning"`
	LastScan        string `json:"last_scan,omitempty"`
	StreamConnected bool   `json:"stream_connected"`
}

// Health reports liveness and scanner state.
func (h *SignalsEchoHandler) Health(c echo.Context) error {
	res := healthResponse{Status: "ok"}
	if h.query != nil {
		st, err := h.query.Stats(c.Request().Context())
		if err == nil {
			res.Signals = st.Total
			res.LastScan = st.LastScan
		}
	}
	if h.scanner != nil {
		res.Scanning = h.scanner.IsScanning()
	}
	if h.stream != nil {
		res.StreamConnected = h.stream.IsConnected()
	}
	return xhttp.SuccessResponse(c, res)
}
