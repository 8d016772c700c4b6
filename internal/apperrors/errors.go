package apperrors

import (
	"errors"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the operation conflicts with the current state of the resource.
var ErrConflict = errors.New("conflict")

// ErrInternal is a generic internal error returned when details must not leak to callers.
var ErrInternal = errors.New("internal error")

// ErrPeriodLocked indicates an attempt to post into a locked fiscal period.
// Fatal: the triggering business operation must not complete.
var ErrPeriodLocked = errors.New("fiscal period is locked")

// ErrRuleNotFound indicates no posting rule exists for an event type.
// Expected outcome; triggers the fallback posting path.
var ErrRuleNotFound = errors.New("no posting rule found")

// ErrUnknownContextKey indicates a rule line referenced a context key
// that was not supplied by the caller.
var ErrUnknownContextKey = errors.New("unknown context key")

// ErrResolution indicates a rule line could not be expanded against the
// posting context (unknown key, unresolvable dynamic account).
var ErrResolution = errors.New("rule resolution failed")

// ErrUnbalancedEntry indicates an expanded rule produced lines whose
// debits and credits do not match. This points at a broken rule
// configuration and is surfaced loudly.
var ErrUnbalancedEntry = errors.New("journal entry does not balance")
