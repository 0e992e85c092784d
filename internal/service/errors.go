package service

import (
	"errors"

	"github.com/nikolayk812/storefront/internal/apperr"
	"github.com/nikolayk812/storefront/internal/repository"
)

var (
	ErrCartFinalized    = errors.New("cart already finalized")
	ErrProductNotInCart = errors.New("product is not in the cart")
	ErrAddressNotOwned  = errors.New("address does not belong to the user")
	ErrTaxIDMissing     = errors.New("user has no verified tax id")
	ErrEmptyCart        = errors.New("cart has no items")
	ErrCurrencyMismatch = errors.New("product currency differs from cart currency")
	ErrBadCredentials   = errors.New("invalid email or password")
)

// missingAsValidation reports a referenced entity that does not exist as a
// caller error, and anything else as internal.
func missingAsValidation(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.Wrap(apperr.CodeValidation, err, message)
	}
	return apperr.Wrap(apperr.CodeInternal, err, message)
}

// missingAsNotFound is missingAsValidation for direct lookups.
func missingAsNotFound(err error, message string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.Wrap(apperr.CodeNotFound, err, message)
	}
	return apperr.Wrap(apperr.CodeInternal, err, message)
}

func validation(err error) error {
	return apperr.Wrap(apperr.CodeValidation, err, err.Error())
}
