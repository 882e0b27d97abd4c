package errors

var (
	ErrWithdrawalNotFound = &DomainError{
		Code:    "WITHDRAWAL_NOT_FOUND",
		Message: "withdrawal not found",
	}
	ErrForbidden = &DomainError{
		Code:    "FORBIDDEN",
		Message: "operation not allowed for this account",
	}
	ErrLimitExceeded = &DomainError{
		Code:    "WITHDRAWAL_LIMIT_EXCEEDED",
		Message: "withdrawal limit exceeded",
	}
	ErrInvalidStateTransition = &DomainError{
		Code:    "INVALID_STATE_TRANSITION",
		Message: "withdrawal is not in a state that allows this operation",
	}
	ErrInvalidBankDetails = &DomainError{
		Code:    "INVALID_BANK_DETAILS",
		Message: "bank details are incomplete",
	}
)
