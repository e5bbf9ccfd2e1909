package validator

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestIsValidAddress(t *testing.T) {
	req := require.New(t)

	req.True(IsValidAddress("0x5f4ec3df9cbd43714fe2740f5e3616155c5b8419"))
	req.False(IsValidAddress("0x5f4ec3df9cbd43714fe2740f5e3616155c5b84"))
	req.False(IsValidAddress("not an address"))
	req.False(IsValidAddress(""))
}

func TestCustomValidatorAddressTag(t *testing.T) {
	req := require.New(t)

	v := NewCustomValidator(validator.New())

	type params struct {
		Token string `validate:"required,address"`
	}

	req.NoError(v.Validate(&params{Token: "0x5f4eC3Df9cbd43714FE2740f5E3616155c5b8419"}))
	req.NoError(v.Validate(&params{Token: "0x5f4ec3df9cbd43714fe2740f5e3616155c5b8419"}))
	req.Error(v.Validate(&params{Token: "0x123"}))
	req.Error(v.Validate(&params{}))
}
