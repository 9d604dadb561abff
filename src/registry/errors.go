package registry

import "errors"

type Kind int

const (
	KindAuthorization Kind = iota
	KindValidation
	KindNotFound
	KindConflict
	KindCapacity
	KindCryptographic
	KindExternal
	KindState
)

func (self Kind) String() string {
	switch self {
	case KindAuthorization:
		return "authorization"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindCapacity:
		return "capacity"
	case KindCryptographic:
		return "cryptographic"
	case KindExternal:
		return "external"
	case KindState:
		return "state"
	}
	return ""
}

// Rejected precondition. Code names the exact condition that failed.
type Error struct {
	Code string
	Kind Kind
}

func newError(code string, kind Kind) *Error {
	return &Error{Code: code, Kind: kind}
}

func (self *Error) Error() string {
	return self.Code
}

// Registry error wrapped in err, if any
func AsError(err error) (out *Error, ok bool) {
	ok = errors.As(err, &out)
	return
}

var (
	// Authorization
	ErrOnlyOwner                       = newError("ONLY_OWNER", KindAuthorization)
	ErrOnlyAggregator                  = newError("ONLY_AGGREGATOR", KindAuthorization)
	ErrOnlyCommittee                   = newError("ONLY_COMMITTEE", KindAuthorization)
	ErrOnlyManager                     = newError("ONLY_MANAGER", KindAuthorization)
	ErrInvalidSender                   = newError("INVALID_SENDER", KindAuthorization)
	ErrOnlyAggregatorCanIncrementSlots = newError("ONLY_AGGREGATOR_CAN_INCREMENT_SLOTS", KindAuthorization)
	ErrManagerCantSelfRemove           = newError("MANAGER_CANT_SELF_REMOVE", KindAuthorization)

	// Validation
	ErrEmptyId                 = newError("EMPTY_ID", KindValidation)
	ErrEmptyMetadata           = newError("EMPTY_METADATA", KindValidation)
	ErrEmptyResolver           = newError("EMPTY_RESOLVER", KindValidation)
	ErrEmptyManagers           = newError("EMPTY_MANAGERS", KindValidation)
	ErrEmptyRuleName           = newError("EMPTY_RULE_NAME", KindValidation)
	ErrLengthMismatch          = newError("LENGTH_MISMATCH", KindValidation)
	ErrInvalidQty              = newError("INVALID_QTY", KindValidation)
	ErrInvalidPrice            = newError("INVALID_PRICE", KindValidation)
	ErrPriceHigherThanMaxPrice = newError("PRICE_HIGHER_THAN_MAX_PRICE", KindValidation)
	ErrInvalidContentHash      = newError("INVALID_CONTENT_HASH", KindValidation)
	ErrInvalidRoot             = newError("INVALID_ROOT", KindValidation)
	ErrInvalidAddress          = newError("INVALID_ADDRESS", KindValidation)
	ErrValueIsTheSame          = newError("VALUE_IS_THE_SAME", KindValidation)
	ErrOverflow                = newError("OVERFLOW", KindValidation)

	// Existence
	ErrInvalidThirdParty       = newError("INVALID_THIRD_PARTY", KindNotFound)
	ErrInvalidItem             = newError("INVALID_ITEM", KindNotFound)
	ErrThirdPartyAlreadyExists = newError("THIRD_PARTY_ALREADY_EXISTS", KindConflict)
	ErrItemAlreadyExists       = newError("ITEM_ALREADY_EXISTS", KindConflict)
	ErrItemIsApproved          = newError("ITEM_IS_APPROVED", KindConflict)

	// Capacity
	ErrNoItemSlotsAvailable = newError("NO_ITEM_SLOTS_AVAILABLE", KindCapacity)

	// Signatures
	ErrMessageAlreadyProcessed = newError("MESSAGE_ALREADY_PROCESSED", KindConflict)
	ErrInvalidSigner           = newError("INVALID_SIGNER", KindCryptographic)
	ErrInvalidSignature        = newError("INVALID_SIGNATURE", KindCryptographic)

	// External dependencies
	ErrInvalidRateFromOracle   = newError("INVALID_RATE_FROM_ORACLE", KindExternal)
	ErrStateChangeInStaticCall = newError("STATE_CHANGE_IN_STATIC_CALL", KindExternal)
	ErrStaticCallFinished      = newError("STATIC_CALL_FINISHED", KindExternal)

	// Lifecycle
	ErrNotInitialized     = newError("NOT_INITIALIZED", KindState)
	ErrAlreadyInitialized = newError("ALREADY_INITIALIZED", KindState)
)
