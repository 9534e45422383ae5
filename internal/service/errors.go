package service

import apperrors "github.com/spec-kit/storefront-service/pkg/util"

// Sentinel errors returned by the stores. All are recoverable conflicts or
// validation failures; lookups signal absence through return values instead.
var (
	ErrInvalidEmail       = apperrors.NewValidationError("invalid email provided", nil)
	ErrWeakPassword       = apperrors.NewValidationError("password does not meet the minimum length", nil)
	ErrDuplicateEmail     = apperrors.NewConflict("an account with that email already exists", nil)
	ErrPasswordUnchanged  = apperrors.NewConflict("new password is the same as the old password", nil)
	ErrInvalidCredentials = apperrors.NewUnauthorized("invalid email or password")

	ErrDuplicateBarcode = apperrors.NewConflict("a product with that barcode already exists", nil)
	ErrNegativePrice    = apperrors.NewValidationError("price must not be negative", nil)
	ErrNegativeStock    = apperrors.NewValidationError("stock must not be negative", nil)
	ErrInvalidDiscount  = apperrors.NewValidationError("discount must be a fraction in [0, 1)", nil)

	ErrEmptyCart         = apperrors.NewConflict("cannot place an order from an empty cart", nil)
	ErrUnknownProduct    = apperrors.NewConflict("product is not available in the catalog", nil)
	ErrInsufficientStock = apperrors.NewConflict("requested quantity exceeds available stock", nil)
	ErrInvalidQuantity   = apperrors.NewValidationError("quantity must be positive", nil)
	ErrInvalidTransition = apperrors.NewConflict("illegal status transition", nil)
	ErrUnknownOrder      = apperrors.NewConflict("no order with that id exists", nil)
)
