package errors

import (
	"encoding/json"
	"errors"
	"net/http"
)

// ProblemDetails stores details about a certain problem according to RFC7807
// See https://tools.ietf.org/html/rfc7807
type ProblemDetails interface {
	ContentType() string
	Type() string
	Title() string
	Detail() string
	MarshalJSON() ([]byte, error)
	WriteResponse(w http.ResponseWriter)
}

// ProblemDetailsImpl is an implementation of the ProblemDetails interface
type ProblemDetailsImpl struct {
	typ     string
	title   string
	detail  string
	code    int
	traceID string
}

const (
	// ProblemReportContentType as required by https://tools.ietf.org/html/rfc7807
	ProblemReportContentType string = "application/problem+json"
)

func newProblem(typ, title, detail string, code int, traceID string) ProblemDetailsImpl {
	return ProblemDetailsImpl{
		typ:     typ,
		title:   title,
		detail:  detail,
		code:    code,
		traceID: traceID,
	}
}

// AlreadyExists reports that the request tries to create an already existing resource
type AlreadyExists struct {
	ProblemDetailsImpl
}

func NewAlreadyExists(detail, traceID string) *AlreadyExists {
	return &AlreadyExists{newProblem(TypeAlreadyExists, "Already Exists", detail, http.StatusConflict, traceID)}
}

// BadRequestData reports that the request includes input data which does not meet the requirements of the operation
type BadRequestData struct {
	ProblemDetailsImpl
}

func NewBadRequestData(detail, traceID string) *BadRequestData {
	return &BadRequestData{newProblem(TypeBadRequestData, "Bad Request Data", detail, http.StatusBadRequest, traceID)}
}

func ReportNewBadRequestData(w http.ResponseWriter, detail, traceID string) {
	NewBadRequestData(detail, traceID).WriteResponse(w)
}

// ConversionFailure reports that a query or a stored document could not be translated
type ConversionFailure struct {
	ProblemDetailsImpl
}

func NewConversionFailure(detail, traceID string) *ConversionFailure {
	return &ConversionFailure{newProblem(TypeConversionFailure, "Conversion Failure", detail, http.StatusBadRequest, traceID)}
}

// InvalidRequest reports that the request associated to the operation is syntactically
// invalid or includes wrong content
type InvalidRequest struct {
	ProblemDetailsImpl
}

func NewInvalidRequest(detail, traceID string) *InvalidRequest {
	return &InvalidRequest{newProblem(TypeInvalidRequest, "Invalid Request", detail, http.StatusBadRequest, traceID)}
}

func ReportNewInvalidRequest(w http.ResponseWriter, detail, traceID string) {
	NewInvalidRequest(detail, traceID).WriteResponse(w)
}

// InternalError reports that there has been an error during the operation execution
type InternalError struct {
	ProblemDetailsImpl
}

func (ie InternalError) Error() string {
	return ie.detail
}

func (ie InternalError) Is(target error) bool {
	return target == ErrInternal
}

func NewInternalError(detail, traceID string) *InternalError {
	return &InternalError{newProblem(TypeInternalError, "Internal Error", detail, http.StatusInternalServerError, traceID)}
}

func ReportNewInternalError(w http.ResponseWriter, detail, traceID string) {
	NewInternalError(detail, traceID).WriteResponse(w)
}

// NotFound reports that the request failed with a not found error of some kind
type NotFound struct {
	ProblemDetailsImpl
}

func NewNotFound(detail, traceID string) *NotFound {
	return &NotFound{newProblem(TypeResourceNotFound, "Not Found", detail, http.StatusNotFound, traceID)}
}

func ReportNotFoundError(w http.ResponseWriter, detail, traceID string) {
	NewNotFound(detail, traceID).WriteResponse(w)
}

type ServiceUnavailable struct {
	ProblemDetailsImpl
}

func NewServiceUnavailable(detail, traceID string) *ServiceUnavailable {
	return &ServiceUnavailable{newProblem(TypeServiceUnavailable, "Service Unavailable", detail, http.StatusServiceUnavailable, traceID)}
}

type UnauthorizedRequest struct {
	ProblemDetailsImpl
}

func NewUnauthorizedRequest(detail, traceID string) *UnauthorizedRequest {
	return &UnauthorizedRequest{newProblem(TypeUnauthorized, "Unauthorized Request", detail, http.StatusUnauthorized, traceID)}
}

func ReportUnauthorizedRequest(w http.ResponseWriter, detail, traceID string) {
	NewUnauthorizedRequest(detail, traceID).WriteResponse(w)
}

// UnknownTenant reports that the request tries to interact with an unknown tenant
type UnknownTenant struct {
	ProblemDetailsImpl
}

func NewUnknownTenant(detail, traceID string) *UnknownTenant {
	return &UnknownTenant{newProblem(TypeNonexistentTenant, "Non Existent Tenant", detail, http.StatusNotFound, traceID)}
}

// NewProblemFromError picks the problem report matching the kind of err
func NewProblemFromError(err error, traceID string) ProblemDetails {
	detail := err.Error()

	switch {
	case errors.Is(err, ErrConversion):
		return NewConversionFailure(detail, traceID)
	case errors.Is(err, ErrAlreadyExists):
		return NewAlreadyExists(detail, traceID)
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestData(detail, traceID)
	case errors.Is(err, ErrInvalidRequest):
		return NewInvalidRequest(detail, traceID)
	case errors.Is(err, ErrNotFound):
		return NewNotFound(detail, traceID)
	case errors.Is(err, ErrUnknownTenant):
		return NewUnknownTenant(detail, traceID)
	case errors.Is(err, ErrUnavailable):
		return NewServiceUnavailable(detail, traceID)
	}

	return NewInternalError(detail, traceID)
}

// ContentType returns the ContentType to be used when returning this problem
func (p *ProblemDetailsImpl) ContentType() string {
	return ProblemReportContentType
}

func (p *ProblemDetailsImpl) Type() string {
	return p.typ
}

func (p *ProblemDetailsImpl) Title() string {
	return p.title
}

func (p *ProblemDetailsImpl) Detail() string {
	return p.detail
}

// MarshalJSON is called when a ProblemDetailsImpl instance should be serialized to JSON
func (p *ProblemDetailsImpl) MarshalJSON() ([]byte, error) {
	var traceID *string

	if p.traceID != "" {
		traceID = &p.traceID
	}

	return json.Marshal(struct {
		Type    string  `json:"type"`
		Title   string  `json:"title"`
		Detail  string  `json:"detail"`
		TraceID *string `json:"traceID,omitempty"`
	}{
		Type:    p.typ,
		Title:   p.title,
		Detail:  p.detail,
		TraceID: traceID,
	})
}

// ResponseCode returns the HTTP response code to be used when returning a specific problem
func (p *ProblemDetailsImpl) ResponseCode() int {
	if p.code != 0 {
		return p.code
	}

	return http.StatusBadRequest
}

// WriteResponse writes the contents of this instance to a http.ResponseWriter
func (p *ProblemDetailsImpl) WriteResponse(w http.ResponseWriter) {
	w.Header().Add("Content-Type", p.ContentType())
	w.Header().Add("Content-Language", "en")
	w.WriteHeader(p.ResponseCode())

	pdbytes, err := json.MarshalIndent(p, "", "  ")
	if err == nil {
		w.Write(pdbytes)
	}
}
