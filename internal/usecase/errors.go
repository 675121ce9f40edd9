package usecase

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Raviram02/HostelBite/internal/domain/model"
	"github.com/Raviram02/HostelBite/internal/domain/pricing"
	"github.com/Raviram02/HostelBite/internal/payment"
	repo "github.com/Raviram02/HostelBite/internal/repository"
)

// HTTPError is what use cases return to handlers. Err keeps the domain
// error for errors.Is checks.
type HTTPError struct {
	Status  int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%d: %s: %v", e.Status, e.Message, e.Err)
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func (e *HTTPError) Unwrap() error { return e.Err }

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func wrapHTTPError(status int, message string, err error) error {
	return &HTTPError{Status: status, Message: message, Err: err}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// orderError maps domain and store errors to responses.
func orderError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := AsHTTPError(err); ok {
		return err
	}

	switch {
	case errors.Is(err, repo.ErrNotFound):
		return wrapHTTPError(http.StatusNotFound, "Order not found", err)
	case errors.Is(err, model.ErrUnknownStatus):
		return wrapHTTPError(http.StatusBadRequest, "Invalid status", err)
	case errors.Is(err, model.ErrIllegalTransition):
		return wrapHTTPError(http.StatusConflict, err.Error(), err)
	case errors.Is(err, model.ErrPaidIrreversible):
		return wrapHTTPError(http.StatusConflict, "Paid order cannot be marked unpaid", err)
	case errors.Is(err, model.ErrNoChangeRequested):
		return wrapHTTPError(http.StatusUnprocessableEntity, "No changes to update", err)
	case errors.Is(err, repo.ErrVersionConflict):
		return wrapHTTPError(http.StatusConflict, "Order was modified concurrently, please retry", err)
	default:
		return wrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
}

// quoteError maps pricing failures. Everything but a lookup outage is the caller's fault.
func quoteError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrEmptyCart):
		return wrapHTTPError(http.StatusBadRequest, "Cart is empty", err)
	case errors.Is(err, pricing.ErrInvalidQuantity),
		errors.Is(err, pricing.ErrProductNotFound),
		errors.Is(err, pricing.ErrProductUnavailable),
		errors.Is(err, pricing.ErrAmountTooLarge):
		return wrapHTTPError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, model.ErrUnknownOrderMode):
		return wrapHTTPError(http.StatusBadRequest, "Invalid order mode", err)
	default:
		return wrapHTTPError(http.StatusInternalServerError, "db error", err)
	}
}

func paymentError(err error) error {
	switch {
	case errors.Is(err, payment.ErrInvalidSignature):
		return wrapHTTPError(http.StatusBadRequest, "Invalid payment signature", err)
	case errors.Is(err, payment.ErrCorrelationMismatch), errors.Is(err, payment.ErrMissingCorrelation):
		return wrapHTTPError(http.StatusBadRequest, "Payment does not match the order", err)
	case errors.Is(err, payment.ErrGateway):
		return wrapHTTPError(http.StatusBadGateway, "Payment gateway unavailable", err)
	default:
		return wrapHTTPError(http.StatusInternalServerError, "payment error", err)
	}
}
