package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pampers23/admin-shoe/pkg/logger"
	"go.uber.org/zap"
)

// Health handles the health check endpoint; ?check=db also pings the database
func (h *Handler) Health(c echo.Context) error {
	log := logger.FromEcho(c)

	response := map[string]interface{}{
		"status": "ok",
		"time":   h.now().UTC().Format(timeLayout),
	}

	if c.QueryParam("check") == "db" {
		if err := h.store.Ping(c.Request().Context()); err != nil {
			log.Error("Database ping error", zap.Error(err))
			response["status"] = "error"
			response["db_status"] = "error"
			response["db_error"] = "Failed to ping database"
			return c.JSON(http.StatusInternalServerError, response)
		}
		response["db_status"] = "ok"
	}

	return c.JSON(http.StatusOK, response)
}
