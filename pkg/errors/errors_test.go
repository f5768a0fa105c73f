package errors

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/matryer/is"
)

func TestConversionErrorMatchesItsKindAndTheConversionSentinel(t *testing.T) {
	is := is.New(t)

	err := fmt.Errorf("converting selection: %w", NewConversionError(ErrArityMismatch, "AVG expects %d argument", 1))

	is.True(errors.Is(err, ErrArityMismatch))
	is.True(errors.Is(err, ErrConversion))
	is.True(!errors.Is(err, ErrUnknownOperator))

	var ce *ConversionError
	is.True(errors.As(err, &ce))
	is.Equal(ce.Kind, ErrArityMismatch)
}

func TestProblemReportRoundTrip(t *testing.T) {
	testCases := []struct {
		err    error
		target error
		code   int
	}{
		{NewNotFoundError("no such entity"), ErrNotFound, 404},
		{NewUnknownTenantError("nope"), ErrUnknownTenant, 404},
		{NewBadRequestDataError("bad json"), ErrBadRequest, 400},
		{NewInvalidRequestError("missing type"), ErrInvalidRequest, 400},
		{NewAlreadyExistsError("duplicate"), ErrAlreadyExists, 409},
		{NewUnavailableError("store is down"), ErrUnavailable, 503},
		{NewConversionError(ErrUnknownOperator, "MEDIAN"), ErrConversion, 400},
		{fmt.Errorf("boom"), ErrInternal, 500},
	}

	for _, tc := range testCases {
		t.Run(tc.target.Error(), func(t *testing.T) {
			is := is.New(t)

			w := httptest.NewRecorder()
			NewProblemFromError(tc.err, "trace").WriteResponse(w)

			is.Equal(w.Code, tc.code)
			is.Equal(w.Header().Get("Content-Type"), ProblemReportContentType)

			err := NewErrorFromProblemReport(w.Code, w.Header().Get("Content-Type"), w.Body.Bytes())
			is.True(errors.Is(err, tc.target))
		})
	}
}

func TestUnparseableProblemReportFromGatewayIsUnavailable(t *testing.T) {
	is := is.New(t)

	err := NewErrorFromProblemReport(502, "text/html", []byte("<html>bad gateway</html>"))
	is.True(errors.Is(err, ErrUnavailable))

	err = NewErrorFromProblemReport(400, "text/html", []byte("<html>"))
	is.True(errors.Is(err, ErrBadResponse))
}
