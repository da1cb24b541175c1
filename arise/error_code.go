package arise

const (
	// INVALID_ARGUMENT_ERROR_CODE represents an error for invalid input arguments.
	INVALID_ARGUMENT_ERROR_CODE = 3
	// NOT_FOUND_ERROR_CODE represents an error for a resource not being found.
	NOT_FOUND_ERROR_CODE = 5
	// FAILED_PRECONDITION_ERROR_CODE represents an error for a failed precondition.
	FAILED_PRECONDITION_ERROR_CODE = 9
	// INTERNAL_ERROR_CODE represents an internal error.
	INTERNAL_ERROR_CODE = 13
)

// codedError carries a user-presentable message and a gRPC-style status code.
type codedError struct {
	message string
	code    int
}

func (e *codedError) Error() string { return e.message }

func (e *codedError) Code() int { return e.code }

// NewError creates an error with a message and a status code.
func NewError(message string, code int) error {
	return &codedError{message: message, code: code}
}

// ErrorCode extracts the status code from an error created by NewError.
// Unknown errors report INTERNAL.
func ErrorCode(err error) int {
	if ce, ok := err.(*codedError); ok {
		return ce.code
	}
	return INTERNAL_ERROR_CODE
}

var (
	ErrInternal           = NewError("internal error occurred", 13) // INTERNAL
	ErrBadInput           = NewError("bad input", 3)                // INVALID_ARGUMENT
	ErrSystemNotAvailable = NewError("system not available", 13)    // INTERNAL
	ErrSystemNotFound     = NewError("system not found", 13)        // INTERNAL

	ErrQuestTitleRequired = NewError("quest title is required", 3)                      // INVALID_ARGUMENT
	ErrActiveDaysRequired = NewError("repeatable quest needs at least one active day", 3) // INVALID_ARGUMENT
	ErrObjectiveTitleRequired = NewError("objective title is required", 3)              // INVALID_ARGUMENT
	ErrUnknownRank        = NewError("unknown quest rank", 3)                           // INVALID_ARGUMENT

	ErrUnknownShopItem     = NewError("shop item not found", 5)            // NOT_FOUND
	ErrInsufficientEssence = NewError("not enough essence", 9)             // FAILED_PRECONDITION
	ErrBoosterAlreadyActive = NewError("a booster of this kind is already active", 9) // FAILED_PRECONDITION

	ErrLibraryTitleRequired = NewError("library item title is required", 3) // INVALID_ARGUMENT
)
