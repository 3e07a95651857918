package types

import (
	"encoding/hex"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"

	"github.com/provability/provability/x/bounty/kernel"
)

// Hash is a 32-byte commitment.
type Hash = kernel.Hash

// SeedSize is the length of the creator-chosen bounty seed.
const SeedSize = 16

// Seed lets one creator run several bounties side by side.
type Seed [SeedSize]byte

// MarshalText encodes the seed as hex.
func (s Seed) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(s[:])), nil
}

// UnmarshalText decodes a hex seed.
func (s *Seed) UnmarshalText(text []byte) error {
	bz, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("decode seed: %w", err)
	}
	if len(bz) != SeedSize {
		return fmt.Errorf("seed must be %d bytes, got %d", SeedSize, len(bz))
	}
	copy(s[:], bz)
	return nil
}

// MaxThresholdBits bounds threshold_t2 to an unsigned 128-bit value.
const MaxThresholdBits = 128

// Bounty is one contest instance with value locked in its vault.
type Bounty struct {
	Id                 sdk.AccAddress `json:"id"`
	Creator            sdk.AccAddress `json:"creator"`
	Vault              sdk.AccAddress `json:"vault"`
	Seed               Seed           `json:"seed"`
	Denom              string         `json:"denom"`
	Amount             uint64         `json:"amount"`
	DeadlineTs         int64          `json:"deadline_ts"`
	CreatedTs          int64          `json:"created_ts"`
	N                  uint32         `json:"n"`
	Scale              uint32         `json:"scale"`
	ThresholdT2        sdkmath.Uint   `json:"threshold_t2"`
	EvalSpecHash       Hash           `json:"eval_spec_hash"`
	TestsetCommitment  Hash           `json:"testset_commitment"`
	AllowedMeasurement Hash           `json:"allowed_measurement"`
	AllowedAttester    sdk.AccAddress `json:"allowed_attester"`
	IsPaid             bool           `json:"is_paid"`
	VaultBump          uint8          `json:"vault_bump"`
}

// Coins returns the locked amount as coins.
func (b Bounty) Coins() sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(b.Denom, sdkmath.NewIntFromUint64(b.Amount)))
}

// IsExpired reports whether now is strictly past the deadline.
func (b Bounty) IsExpired(now time.Time) bool {
	return now.Unix() > b.DeadlineTs
}

// Submission is a solver's commitment to a set of predictions.
type Submission struct {
	Id        sdk.AccAddress `json:"id"`
	Bounty    sdk.AccAddress `json:"bounty"`
	Solver    sdk.AccAddress `json:"solver"`
	PredsHash Hash           `json:"preds_hash"`
	Uri       string         `json:"uri"`
	CreatedTs int64          `json:"created_ts"`
}

// CreateBountyParams carries everything a creator fixes when opening a bounty.
type CreateBountyParams struct {
	Seed               Seed           `json:"seed"`
	Amount             uint64         `json:"amount"`
	DeadlineTs         int64          `json:"deadline_ts"`
	N                  uint32         `json:"n"`
	Scale              uint32         `json:"scale"`
	ThresholdT2        sdkmath.Uint   `json:"threshold_t2"`
	EvalSpecHash       Hash           `json:"eval_spec_hash"`
	TestsetCommitment  Hash           `json:"testset_commitment"`
	AllowedMeasurement Hash           `json:"allowed_measurement"`
	AllowedAttester    sdk.AccAddress `json:"allowed_attester"`
}

// ValidateThreshold checks a threshold fits the 128-bit slot of the payload.
func ValidateThreshold(t sdkmath.Uint) error {
	if t.IsNil() {
		return fmt.Errorf("threshold is nil")
	}
	if t.BigInt().BitLen() > MaxThresholdBits {
		return fmt.Errorf("threshold exceeds %d bits", MaxThresholdBits)
	}
	return nil
}

// BountyID derives the bounty identity from its creator and seed.
func BountyID(creator sdk.AccAddress, seed Seed) sdk.AccAddress {
	return address.Module(ModuleName, BountyLabel, creator, seed[:])
}

// SubmissionID derives the submission identity from the bounty and the solver.
// One solver therefore maps to exactly one submission slot per bounty.
func SubmissionID(bountyID, solver sdk.AccAddress) sdk.AccAddress {
	return address.Module(ModuleName, SubmissionLabel, bountyID, solver)
}

// VaultAddress derives the vault of a bounty for a given disambiguation bump.
// Nobody holds a key for it; only the module moves its funds.
func VaultAddress(bountyID sdk.AccAddress, bump uint8) sdk.AccAddress {
	return address.Module(ModuleName, VaultLabel, bountyID, []byte{bump})
}
