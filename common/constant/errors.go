package constant

import "errors"

// Business error sentinels surfaced by the lifecycle engine and triple store
// adapter. These are compared with errors.Is against the wrapped error
// returned from internal/engine and internal/tsa before being translated
// into the HTTP-facing error types in common/errors.go.
var (
	ResourceNotExistsBusinessError = errors.New("0001")
	TombstoneBusinessError         = errors.New("0002")
	SingleSubjectBusinessError     = errors.New("0003")
	RefIntViolationBusinessError   = errors.New("0004")
	ServerManagedTermBusinessError = errors.New("0005")
	InvalidResourceBusinessError   = errors.New("0006")
	InvalidTripleBusinessError     = errors.New("0007")
	StoreBusinessError             = errors.New("0008")
	InternalServerBusinessError    = errors.New("0009")
	BadRequestBusinessError        = errors.New("0010")

	UnexpectedFieldsInTheRequestBusinessError = errors.New("0011")
	MissingFieldsInRequestBusinessError       = errors.New("0012")
)

// Plain sentinels used by common/errors.go's fallback-path constructors and
// common/net/http's request-body validation, which don't route through
// ValidateBusinessError's errors.Is dispatch and so don't need the
// "BusinessError" suffix convention above.
var (
	ErrInternalServer               = errors.New("internal server error")
	ErrUnexpectedFieldsInTheRequest = errors.New("unexpected fields in the request")
	ErrBadRequest                   = errors.New("bad request")

	ErrMetadataKeyLengthExceeded   = errors.New("metadata key length exceeded")
	ErrMetadataValueLengthExceeded = errors.New("metadata value length exceeded")
	ErrInvalidMetadataNesting      = errors.New("invalid metadata nesting")
	ErrInvalidPathParameter        = errors.New("invalid path parameter")
)
