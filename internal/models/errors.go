package models

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers match with errors.Is; returned errors wrap one of
// these with the offending field or id.
var (
	// Not found
	ErrGroupNotFound = errors.New("group not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrDebtNotFound  = errors.New("debt not found")
	ErrNotAMember    = errors.New("user is not an active member of the group")
	ErrInvalidInvite = errors.New("invite code not found")

	// Conflict
	ErrAlreadyMember    = errors.New("user is already a member of the group")
	ErrAlreadySettled   = errors.New("debt is not pending")
	ErrCapacityExceeded = errors.New("group has reached its member limit")
	ErrVersionConflict  = errors.New("group was modified concurrently")
	ErrDuplicateCode    = errors.New("code already in use")
	ErrEmailExists      = errors.New("email already registered")

	// Validation
	ErrValidation              = errors.New("validation failed")
	ErrInvalidAmount           = errors.New("amount must be a positive number")
	ErrUnsupportedCurrency     = errors.New("unsupported currency")
	ErrCurrencyNotAllowed      = errors.New("currency differs from group default and multiple currencies are disabled")
	ErrInvalidPayer            = errors.New("payer is not an active member of the group")
	ErrInvalidSplit            = errors.New("invalid split")
	ErrInvalidSplitParticipant = errors.New("split participant is not an active member of the group")
	ErrSplitMismatch           = errors.New("split amounts do not add up to the expense amount")
	ErrReceiptRequired         = errors.New("group requires a receipt for every expense")

	// Precondition
	ErrOutstandingDebt  = errors.New("member has pending debts")
	ErrOutstandingDebts = errors.New("group has pending debts")
	ErrGroupArchived    = errors.New("group is archived")
	ErrInviteExpired    = errors.New("invite code has expired")
	ErrOwnerCannotLeave = errors.New("owner cannot leave the group; delete it instead")
	ErrNotFriend        = errors.New("user is not in your friend list")

	// Permission
	ErrForbidden = errors.New("permission denied")
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindValidation
	KindPrecondition
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindValidation:
		return "validation"
	case KindPrecondition:
		return "precondition_failed"
	case KindForbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

var kinds = []struct {
	kind    Kind
	targets []error
}{
	{KindNotFound, []error{ErrGroupNotFound, ErrUserNotFound, ErrDebtNotFound, ErrNotAMember, ErrInvalidInvite}},
	{KindConflict, []error{ErrAlreadyMember, ErrAlreadySettled, ErrCapacityExceeded, ErrVersionConflict, ErrDuplicateCode, ErrEmailExists}},
	{KindValidation, []error{ErrValidation, ErrInvalidAmount, ErrUnsupportedCurrency, ErrCurrencyNotAllowed, ErrInvalidPayer,
		ErrInvalidSplit, ErrInvalidSplitParticipant, ErrSplitMismatch, ErrReceiptRequired}},
	{KindPrecondition, []error{ErrOutstandingDebt, ErrOutstandingDebts, ErrGroupArchived, ErrInviteExpired, ErrOwnerCannotLeave, ErrNotFriend}},
	{KindForbidden, []error{ErrForbidden}},
}

// KindOf returns the error kind for err. Unknown errors are KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return KindInternal
	}
	for _, k := range kinds {
		for _, target := range k.targets {
			if errors.Is(err, target) {
				return k.kind
			}
		}
	}
	return KindInternal
}

// ValidationError represents a validation failure on one field.
// It unwraps to Err (one of the sentinels above, ErrValidation by default).
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s: %s", e.cause(), e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.cause()
}

func (e *ValidationError) cause() error {
	if e.Err == nil {
		return ErrValidation
	}
	return e.Err
}

// invalid builds a ValidationError for field.
func invalid(err error, field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Err: err}
}
