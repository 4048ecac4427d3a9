package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pampers23/admin-shoe/pkg/logger"
	"go.uber.org/zap"
)

// HeaderRequestID carries the request id in both directions
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware tags each request with an id and a request-scoped logger.
// An incoming X-Request-ID is reused when present.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		requestID := req.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
			req.Header.Set(HeaderRequestID, requestID)
		}
		c.Response().Header().Set(HeaderRequestID, requestID)
		c.Set("request_id", requestID)

		logger.BindRequest(c, logger.GetLogger().With(zap.String("request_id", requestID)))

		return next(c)
	}
}
