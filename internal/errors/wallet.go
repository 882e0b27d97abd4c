package errors

var (
	ErrWalletNotFound = &DomainError{
		Code:    "WALLET_NOT_FOUND",
		Message: "wallet not found",
	}
	ErrWalletExists = &DomainError{
		Code:    "WALLET_EXISTS",
		Message: "wallet already exists",
	}
	ErrInsufficientBalance = &DomainError{
		Code:    "INSUFFICIENT_BALANCE",
		Message: "insufficient wallet balance",
	}
	ErrInvalidAmount = &DomainError{
		Code:    "INVALID_AMOUNT",
		Message: "invalid amount",
	}
	// ErrInvariantViolation means an operation would have driven a balance
	// negative. It indicates a logic defect, never normal input, and always
	// aborts the whole unit of work.
	ErrInvariantViolation = &DomainError{
		Code:    "BALANCE_INVARIANT_VIOLATION",
		Message: "operation failed",
	}
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "wallet transaction not found",
	}
	ErrBookingNotFound = &DomainError{
		Code:    "BOOKING_NOT_FOUND",
		Message: "booking not found",
	}
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
)
