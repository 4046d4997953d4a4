package bridge

import "errors"

// Error strings mirror the assertion messages of the on-chain bridge
// contract so oracle tooling written against it keeps working.
var (
	ErrMissingAuthority = errors.New("Missing required authority")
	ErrNotInitialized   = errors.New("Not initialized")

	ErrAlreadyInitialized = errors.New("Already initialized")
	ErrChainExists        = errors.New("This chain is already listed")
	ErrChainNotFound      = errors.New("This chain is not listed")
	ErrOracleExists       = errors.New("Oracle is already registered")
	ErrOracleNotFound     = errors.New("Oracle not found")
	ErrNotAnOracle        = errors.New("Account is not an oracle")

	ErrWrongToken       = errors.New("Wrong token")
	ErrFeeOutOfRange    = errors.New("Variable fee has to be between 0 and 0.20")
	ErrFeeTooHigh       = errors.New("Fees are too high relative to the minimum amount of token transfers")
	ErrInvalidThreshold = errors.New("Needed confirmation amount has to be grater than 0")

	ErrRefInvalid       = errors.New("Ref is not valid")
	ErrQuantityMismatch = errors.New("Quantity mismatch")
	ErrAccountMismatch  = errors.New("Account mismatch")
	ErrAlreadyApproved  = errors.New("Oracle has already approved")
	ErrReceiptCompleted = errors.New("This teleport is already completed")
	ErrReceiptNotFound  = errors.New("Receipt does not exist.")
	ErrAssetInvalid     = errors.New("Asset not valid")
	ErrNegativeQuantity = errors.New("Quantity cannot be negative")

	ErrAmountInvalid       = errors.New("Amount is not valid")
	ErrBelowMinimum        = errors.New("Transfer is below minimum token amount")
	ErrNoDeposit           = errors.New("Deposit not found")
	ErrInsufficientDeposit = errors.New("Not enough deposited")

	ErrTeleportNotFound   = errors.New("Teleport not found")
	ErrTeleportIDNotFound = errors.New("Teleport id not found")
	ErrAlreadySigned      = errors.New("Oracle has already signed")
	ErrDuplicateSignature = errors.New("Already signed with this signature")
	ErrAlreadyClaimed     = errors.New("Already marked as claimed")
	ErrTeleportClaimed    = errors.New("Teleport is already claimed")
	ErrNotExpired         = errors.New("Teleport has not expired")

	ErrFrozenIn      = errors.New("Incoming transfers are currently frozen")
	ErrFrozenOut     = errors.New("Outgoing transfers are currently frozen")
	ErrFrozenCancel  = errors.New("Cancel is currently frozen")
	ErrFrozenOracles = errors.New("Oracle registration is currently frozen")
)
