package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeDataUnavailable, "cannot read positions from %s", "closed_positions.csv")
	suite.NotNil(err)
	suite.Equal(ErrCodeDataUnavailable, err.Code)
	suite.Equal("cannot read positions from closed_positions.csv", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeQueryFailed, "query failed", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeQueryFailed, err.Code)
	suite.Equal("query failed", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeDataParseFailed, cause, "bad row for instrument: %s", "AAPL")
	suite.NotNil(err)
	suite.Equal(ErrCodeDataParseFailed, err.Code)
	suite.Equal("bad row for instrument: AAPL", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataUnavailable, "data unavailable", cause)
	suite.Equal("[200] data unavailable: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataUnavailable, "data unavailable", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestUnwrapNil() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Nil(err.Unwrap())
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeDataUnavailable, "data unavailable")
	suite.Equal(ErrCodeDataUnavailable, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeWrapped() {
	inner := New(ErrCodeDataUnavailable, "data unavailable")
	wrapped := fmt.Errorf("loading report: %w", inner)
	suite.Equal(ErrCodeDataUnavailable, GetCode(wrapped))
}

func (suite *ErrorTestSuite) TestGetCodePlainError() {
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain")))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := New(ErrCodeReportWriteFailed, "write failed")
	suite.True(HasCode(err, ErrCodeReportWriteFailed))
	suite.False(HasCode(err, ErrCodeDataUnavailable))
}
