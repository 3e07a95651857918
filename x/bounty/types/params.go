package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// DefaultMaxURILength is the default cap on a submission URI.
const DefaultMaxURILength = 200

// Params configure the bounty module.
type Params struct {
	// Denom is the coin denomination locked in bounty vaults.
	Denom string `json:"denom"`
	// MaxUriLength caps the prediction artifact URI of a submission.
	MaxUriLength uint32 `json:"max_uri_length"`
}

// DefaultParams returns the default module parameters
func DefaultParams() Params {
	return Params{
		Denom:        DefaultDenom,
		MaxUriLength: DefaultMaxURILength,
	}
}

// Validate checks the params for obvious misconfiguration.
func (p Params) Validate() error {
	if err := sdk.ValidateDenom(p.Denom); err != nil {
		return ErrInvalidParams.Wrapf("denom: %v", err)
	}
	if p.MaxUriLength == 0 {
		return ErrInvalidParams.Wrap("max uri length must be positive")
	}
	return nil
}

// String implements fmt.Stringer.
func (p Params) String() string {
	return fmt.Sprintf("Params{Denom: %s, MaxUriLength: %d}", p.Denom, p.MaxUriLength)
}
