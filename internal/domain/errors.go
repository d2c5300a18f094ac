package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist, or exists but is hidden from the caller by the
// visibility policy. The two cases are deliberately indistinguishable so a
// response never leaks the existence of data the caller may not see.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, unknown role name).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when an authenticated caller attempts a mutation
// their role does not permit (e.g. a viewer creating an expense, a
// non-owner promoting a member). Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrRegistryUnavailable is returned when the participant registry cannot be
// read because of an infrastructure failure (connection loss, timeout).
// It must never be collapsed into ErrNotFound: the policy evaluator fails
// closed on this error, and handlers surface it as HTTP 503 "unable to load
// trip data", distinct from "you don't have access".
var ErrRegistryUnavailable = errors.New("participant registry unavailable")
