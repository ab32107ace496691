package errors_test

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/yuru-sha/roguelike-sub000/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "out of bounds",
			code:     errors.CodeOutOfBounds,
			message:  "tile (90,2) outside 80x43",
			expected: "OUT_OF_BOUNDS: tile (90,2) outside 80x43",
		},
		{
			name:     "save io failure",
			code:     errors.CodeSaveIOFailure,
			message:  "disk full",
			expected: "SAVE_IO_FAILURE: disk full",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
		})
	}
}

func (s *ErrorsTestSuite) TestWrapPreservesCode() {
	base := errors.New(errors.CodeSaveIntegrityFailure, "checksum mismatch").WithMeta("slot", 0)
	wrapped := errors.Wrap(base, "load slot 0")

	s.Equal(errors.CodeSaveIntegrityFailure, wrapped.Code)
	s.True(errors.IsSaveIntegrityFailure(wrapped))
	s.Equal(0, wrapped.Meta["slot"])
	s.True(errors.Is(wrapped, errors.New(errors.CodeSaveIntegrityFailure, "")))
}

func (s *ErrorsTestSuite) TestWrapForeignError() {
	wrapped := errors.WrapWithCode(fs.ErrPermission, errors.CodeSaveIOFailure, "write slot")

	s.True(errors.IsSaveIOFailure(wrapped))
	s.True(stderrors.Is(wrapped, fs.ErrPermission))
	s.Nil(errors.Wrap(nil, "noop"))
	s.Equal(errors.CodeInternal, errors.GetCode(fs.ErrPermission))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
}

func (s *ErrorsTestSuite) TestRecoverable() {
	s.True(errors.CodePathfindingFailure.Recoverable())
	s.True(errors.CodeOutOfBounds.Recoverable())
	s.False(errors.CodeSaveIOFailure.Recoverable())
	s.False(errors.CodeSaveIntegrityFailure.Recoverable())
}
