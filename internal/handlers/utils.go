package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/hashicorp/go-hclog"
	"github.com/labstack/echo/v4"
	"github.com/tpanh/rentd/internal/errors"
)

func logError(err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(err, 1)
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ErrorHandler renders every error as a {code, message} JSON body. Errors
// without a stable definition collapse into the generic system error, their
// details go to the log, never to the client.
func ErrorHandler(logger hclog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var appErr *errors.AppError
		if !stderrors.As(err, &appErr) {
			var httpErr *echo.HTTPError
			if stderrors.As(err, &httpErr) {
				appErr = &errors.AppError{
					Code:    errors.ErrUncategorized.Code,
					Message: http.StatusText(httpErr.Code),
					Status:  httpErr.Code,
				}
			} else {
				logger.Error("Unexpected error", "path", c.Path(), "err", err)
				appErr = errors.ErrUncategorized
			}
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(appErr.Status)
			return
		}

		_ = c.JSON(appErr.Status, errorResponse{Code: appErr.Code, Message: appErr.Message})
	}
}
