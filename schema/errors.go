package schema

import (
	"errors"
)

// Business-rule errors. These are synchronous and non-retryable: they are
// decided locally from validated input plus freshly resolved ledger state
// and never reach the ledger.
var (
	ErrInvalidDomain           = errors.New("invalid_domain")
	ErrInvalidLabel            = errors.New("invalid_label")
	ErrDomainLocked            = errors.New("domain_locked") // registered, unexpired, not owned by requester
	ErrDomainNotFound          = errors.New("domain_not_found")
	ErrSubdomainExists         = errors.New("subdomain_exists")
	ErrNotOwner                = errors.New("not_owner")
	ErrNotParentOwner          = errors.New("not_parent_owner")
	ErrAmbiguousTransferTarget = errors.New("ambiguous_transfer_target") // both or neither of target / balanceId
	ErrDomainInTransfer        = errors.New("domain_in_transfer")        // token currently held by nobody

	ErrUnknownCommand = errors.New("unknown_command")
)

// Storage errors.
var (
	ErrNotExist = errors.New("not_exist_record")
)

// IsBusinessError reports whether err belongs to the local taxonomy above,
// as opposed to a ledger resolution failure. Handlers map the former to a
// client error and the latter to an upstream error.
func IsBusinessError(err error) bool {
	for _, e := range []error{
		ErrInvalidDomain,
		ErrInvalidLabel,
		ErrDomainLocked,
		ErrDomainNotFound,
		ErrSubdomainExists,
		ErrNotOwner,
		ErrNotParentOwner,
		ErrAmbiguousTransferTarget,
		ErrDomainInTransfer,
		ErrUnknownCommand,
	} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
