package response

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorIs(t *testing.T) {
	wrapped := ErrNotFound.WithOrigin(errors.New("record missing"))
	require.ErrorIs(t, wrapped, ErrNotFound)
	require.NotErrorIs(t, wrapped, ErrDatabase)
}

func TestWithOriginKeepsCode(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	e := ErrDatabase.WithOrigin(cause)

	require.Equal(t, ErrDatabase.Code, e.Code)
	require.Equal(t, ErrDatabase.Message, e.Message)
	require.Contains(t, e.Origin, "connection refused")
	require.Equal(t, cause, errors.Unwrap(e))
	require.NotNil(t, e.StackTrace())

	// 错误码表里的单例不被污染
	require.Empty(t, ErrDatabase.Origin)
}

func TestWithTips(t *testing.T) {
	e := ErrNotFound.WithTips("用户不存在")
	require.Equal(t, ErrNotFound.Code, e.Code)
	require.Contains(t, e.Message, ErrNotFound.Message)
	require.Contains(t, e.Message, "用户不存在")
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[int32]int{
		ErrInvalidRequest.Code:  400,
		ErrInvalidPassword.Code: 400,
		ErrAlreadyExists.Code:   400,
		ErrTokenInvalid.Code:    401,
		ErrUnauthorized.Code:    401,
		ErrForbidden.Code:       403,
		ErrNotFound.Code:        404,
		ErrInternal.Code:        500,
		ErrDatabase.Code:        500,
	}
	for code, want := range cases {
		require.Equal(t, want, httpStatus(code), "code %d", code)
	}
}
