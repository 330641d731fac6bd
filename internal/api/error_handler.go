package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/rryowa/bookstore/internal/client"
	"github.com/rryowa/bookstore/internal/service"
	"github.com/rryowa/bookstore/internal/util"
)

func ErrorHandler(log *zap.SugaredLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if isUnauthorizedTokenError(err) {
			writeReason(c, log, http.StatusUnauthorized, err.Error())
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			if he.Code == http.StatusInternalServerError {
				log.Errorw("HTTP error", "error", err, "uri", c.Request().RequestURI)
			}
			msg, ok := he.Message.(string)
			if !ok {
				msg = http.StatusText(he.Code)
			}
			writeReason(c, log, he.Code, msg)
			return
		}

		if status := util.StatusCode(err); status != 0 {
			writeReason(c, log, status, err.Error())
			return
		}

		log.Errorw("unhandled error", "error", err, "uri", c.Request().RequestURI)
		writeReason(c, log, http.StatusInternalServerError, "internal server error")
	}
}

func writeReason(c echo.Context, log *zap.SugaredLogger, status int, reason string) {
	if err := c.JSON(status, map[string]string{"reason": reason}); err != nil {
		log.Errorw("failed to write json response", "error", err)
	}
}

func isUnauthorizedTokenError(err error) bool {
	return errors.Is(err, service.ErrTokenInvalid) ||
		errors.Is(err, service.ErrTokenRevoked) ||
		errors.Is(err, client.ErrAuthenticationRequired)
}
