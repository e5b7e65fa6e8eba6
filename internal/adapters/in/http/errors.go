package http

import (
	"errors"
	"net/http"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/product"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps a use-case error to its HTTP status:
//
//	403 authorization failures
//	404 missing orders, items, products
//	409 workflow conflicts: bad transition, insufficient stock, lock timeout
//	400 everything the caller can fix in the request
func writeError(ctx echo.Context, err error) error {
	code := statusCode(err)
	message := err.Error()
	if code == http.StatusInternalServerError {
		// Internal details stay in the logs.
		message = "internal server error"
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

func statusCode(err error) int {
	switch {
	case errors.Is(err, services.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, product.ErrInsufficientStock),
		errors.Is(err, errs.ErrLockTimeout),
		errors.Is(err, commands.ErrOrderNotReturnable),
		errors.Is(err, order.ErrOrderIsTerminal):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, order.ErrOrderHasNoItems),
		errors.Is(err, commands.ErrOrderItemsAreRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
