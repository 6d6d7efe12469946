package validator

import (
	"testing"

	"dicel-erp/internal/errs"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
	Month    int    `json:"month" validate:"min=1,max=12"`
	Status   string `json:"status" validate:"omitempty,oneof=Pending Approved"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{Email: "a@b.co", Password: "secret123", Month: 3}))

	cases := []struct {
		in   sample
		want string
	}{
		{sample{Password: "secret123", Month: 1}, "email is required"},
		{sample{Email: "nope", Password: "secret123", Month: 1}, "email must be a valid email"},
		{sample{Email: "a@b.co", Password: "short", Month: 1}, ErrInvalidPassword.Error()},
		{sample{Email: "a@b.co", Password: "secret123", Month: 13}, "month must be at most 12"},
		{sample{Email: "a@b.co", Password: "secret123", Month: 1, Status: "Maybe"}, "status must be one of: Pending, Approved"},
	}
	for _, tc := range cases {
		err := Struct(tc.in)
		require.Error(t, err)
		require.Equal(t, errs.KindValidation, errs.Kind(err))
		require.Equal(t, tc.want, errs.Message(err))
	}
}

func TestValidatePassword(t *testing.T) {
	require.NoError(t, ValidatePassword("abcdefg1"))
	require.Error(t, ValidatePassword("abcdefgh"))
	require.Error(t, ValidatePassword("12345678"))
	require.Error(t, ValidatePassword("a1"))
}

func TestValidateEmail(t *testing.T) {
	require.NoError(t, ValidateEmail("ada@dicel.example"))
	require.Error(t, ValidateEmail("ada@"))
}
