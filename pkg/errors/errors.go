package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

var ErrAlreadyExists = fmt.Errorf("already exists")
var ErrInternal = fmt.Errorf("internal error")
var ErrUnavailable = fmt.Errorf("unavailable")
var ErrNotFound = fmt.Errorf("not found")
var ErrRequest = fmt.Errorf("request error")
var ErrBadRequest = fmt.Errorf("bad request")
var ErrBadResponse = fmt.Errorf("bad response")
var ErrInvalidRequest = fmt.Errorf("invalid request")
var ErrUnknownTenant = fmt.Errorf("unknown tenant")

// ErrConversion is matched by every error produced while translating a query
// or a stored document, regardless of its more specific kind.
var ErrConversion = fmt.Errorf("conversion error")

var ErrUnsupportedVariant = fmt.Errorf("unsupported variant")
var ErrDisallowedVariant = fmt.Errorf("disallowed variant")
var ErrArityMismatch = fmt.Errorf("arity mismatch")
var ErrUnknownOperator = fmt.Errorf("unknown operator")
var ErrNoConverterForTag = fmt.Errorf("no converter for tag")
var ErrDocumentParseFailure = fmt.Errorf("document parse failure")

type myError struct {
	msg    string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

func NewAlreadyExistsError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrAlreadyExists,
	}
}

func NewBadRequestDataError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrBadRequest,
	}
}

func NewInvalidRequestError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInvalidRequest,
	}
}

func NewNotFoundError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrNotFound,
	}
}

func NewUnknownTenantError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrUnknownTenant,
	}
}

func NewUnavailableError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrUnavailable,
	}
}

// ConversionError is returned when a query or a stored document can not be
// translated. Kind is one of the conversion sentinels above.
type ConversionError struct {
	Kind error
	msg  string
}

func (ce ConversionError) Error() string {
	return fmt.Sprintf("%s: %s", ce.Kind.Error(), ce.msg)
}

func (ce ConversionError) Is(target error) bool {
	return target == ce.Kind || target == ErrConversion
}

func NewConversionError(kind error, format string, args ...any) error {
	return &ConversionError{
		Kind: kind,
		msg:  fmt.Sprintf(format, args...),
	}
}

const (
	problemTypeBase string = "https://diwise.io/entity-service/errors/"

	TypeAlreadyExists      string = problemTypeBase + "AlreadyExists"
	TypeBadRequestData     string = problemTypeBase + "BadRequestData"
	TypeConversionFailure  string = problemTypeBase + "ConversionFailure"
	TypeInternalError      string = problemTypeBase + "InternalError"
	TypeInvalidRequest     string = problemTypeBase + "InvalidRequest"
	TypeNonexistentTenant  string = problemTypeBase + "NonexistentTenant"
	TypeResourceNotFound   string = problemTypeBase + "ResourceNotFound"
	TypeServiceUnavailable string = problemTypeBase + "ServiceUnavailable"
	TypeUnauthorized       string = problemTypeBase + "UnauthorizedRequest"
)

// NewErrorFromProblemReport maps a problem report received from the entity
// service back into an error that matches the sentinels in this package
func NewErrorFromProblemReport(code int, contentType string, body []byte) error {
	report := &struct {
		Type   string `json:"type"`
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}{}

	err := json.Unmarshal(body, report)
	if err != nil {
		if code == http.StatusServiceUnavailable || code == http.StatusBadGateway {
			return NewUnavailableError(fmt.Sprintf("service responded with %d", code))
		}
		return fmt.Errorf("failed to process problem report from entity service: %s (%w)", err.Error(), ErrBadResponse)
	}

	switch {
	case code == http.StatusNotFound || report.Type == TypeResourceNotFound:
		if report.Type == TypeNonexistentTenant {
			return NewUnknownTenantError(report.Detail)
		}
		return NewNotFoundError(report.Detail)
	case report.Type == TypeNonexistentTenant:
		return NewUnknownTenantError(report.Detail)
	case report.Type == TypeBadRequestData:
		return NewBadRequestDataError(report.Detail)
	case report.Type == TypeConversionFailure:
		return &myError{msg: report.Detail, target: ErrConversion}
	case report.Type == TypeInvalidRequest:
		return NewInvalidRequestError(report.Detail)
	case report.Type == TypeAlreadyExists:
		return NewAlreadyExistsError(report.Detail)
	case code == http.StatusServiceUnavailable || report.Type == TypeServiceUnavailable:
		return NewUnavailableError(report.Detail)
	}

	return NewInternalError(
		fmt.Sprintf("[code: %d] unknown problem report of type \"%s\" with detail \"%s\" received",
			code, report.Type, report.Detail,
		),
		"",
	)
}
