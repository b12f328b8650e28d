package lotto

import "errors"

// Validation errors
var (
	ErrInvalidTicketSize        = errors.New("ticket must have exactly 6 numbers")
	ErrNullOrMissingNumber      = errors.New("ticket number is missing")
	ErrDuplicateNumber          = errors.New("ticket numbers must be unique")
	ErrNumberOutOfRange         = errors.New("number out of range")
	ErrBonusNumberCollision     = errors.New("bonus number is already a winning number")
	ErrBelowMinimumPrice        = errors.New("purchase amount is below the ticket price")
	ErrNotAMultipleOfUnitPrice  = errors.New("purchase amount is not a multiple of the ticket price")
	ErrInvalidAmountFormat      = errors.New("purchase amount is not a number")
	ErrTicketLimitExceeded      = errors.New("purchase amount exceeds the ticket limit")
	ErrEmptyBatch               = errors.New("ticket batch is empty")
	ErrDivisionByZeroProfitRate = errors.New("profit rate requires a positive purchase amount")
)

var ErrUnknownTier = errors.New("unknown prize tier")

var validationErrors = []error{
	ErrInvalidTicketSize,
	ErrNullOrMissingNumber,
	ErrDuplicateNumber,
	ErrNumberOutOfRange,
	ErrBonusNumberCollision,
	ErrBelowMinimumPrice,
	ErrNotAMultipleOfUnitPrice,
	ErrInvalidAmountFormat,
	ErrTicketLimitExceeded,
	ErrEmptyBatch,
	ErrDivisionByZeroProfitRate,
}

// IsValidationError reports whether err was caused by invalid caller input.
func IsValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
