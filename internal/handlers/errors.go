package handlers

import (
	stderrors "errors"
	"log"

	domain "pawpay/internal/errors"
	"pawpay/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// respondDomainError maps domain errors onto HTTP statuses. Anything
// unrecognized is a 500 with a generic message so internals never leak.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case stderrors.Is(err, domain.ErrWalletNotFound),
		stderrors.Is(err, domain.ErrWithdrawalNotFound),
		stderrors.Is(err, domain.ErrTransactionNotFound),
		stderrors.Is(err, domain.ErrBookingNotFound),
		stderrors.Is(err, domain.ErrUserNotFound):
		return utils.NotFound(c, err.Error())
	case stderrors.Is(err, domain.ErrWalletExists),
		stderrors.Is(err, domain.ErrInvalidStateTransition):
		return utils.Conflict(c, err.Error())
	case stderrors.Is(err, domain.ErrInvalidAmount),
		stderrors.Is(err, domain.ErrInvalidBankDetails):
		return utils.BadRequest(c, err.Error())
	case stderrors.Is(err, domain.ErrInsufficientBalance),
		stderrors.Is(err, domain.ErrLimitExceeded):
		return utils.UnprocessableEntity(c, err.Error())
	case stderrors.Is(err, domain.ErrForbidden):
		return utils.Forbidden(c, err.Error())
	default:
		// Balance invariant violations land here too: full detail to the
		// log, nothing to the client.
		log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
		return utils.InternalError(c, "internal server error")
	}
}
