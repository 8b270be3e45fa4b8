package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// ValidationError means the input was malformed; nothing was changed.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError means a referenced record does not exist.
type NotFoundError struct {
	Resource string
	Ref      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Ref)
}

func NotFound(resource, ref string) error {
	return &NotFoundError{Resource: resource, Ref: ref}
}

// PreconditionError means the request was well-formed but the record is in
// a state that forbids it; nothing was changed.
type PreconditionError struct {
	Msg string
}

func (e *PreconditionError) Error() string { return e.Msg }

func Precondition(format string, args ...any) error {
	return &PreconditionError{Msg: fmt.Sprintf(format, args...)}
}

// TransactionError wraps a storage-level failure. The whole operation was
// rolled back, so the caller may retry it.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// CouponRejectionReason identifies which validation step rejected a coupon.
type CouponRejectionReason string

const (
	CouponInactive     CouponRejectionReason = "Inactive"
	CouponNotYetValid  CouponRejectionReason = "NotYetValid"
	CouponExpired      CouponRejectionReason = "Expired"
	CouponLimitReached CouponRejectionReason = "LimitReached"
	CouponBelowMinimum CouponRejectionReason = "BelowMinimum"
)

type CouponRejection struct {
	Reason CouponRejectionReason
	Msg    string
}

func (e *CouponRejection) Error() string { return e.Msg }

func RejectCoupon(reason CouponRejectionReason, format string, args ...any) error {
	return &CouponRejection{Reason: reason, Msg: fmt.Sprintf(format, args...)}
}

// HTTPStatus maps an error to the response status used by the handlers.
func HTTPStatus(err error) int {
	var (
		validation   *ValidationError
		notFound     *NotFoundError
		precondition *PreconditionError
		rejection    *CouponRejection
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &rejection):
		return http.StatusBadRequest
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &precondition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
