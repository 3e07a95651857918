package types

import (
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// GenesisState is the bounty module's genesis state.
type GenesisState struct {
	Params        Params              `json:"params"`
	Bounties      []Bounty            `json:"bounties"`
	Submissions   []Submission        `json:"submissions"`
	VerifyingKeys []VerifyingKeyEntry `json:"verifying_keys"`
}

// DefaultGenesis returns the default genesis state
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:        DefaultParams(),
		Bounties:      []Bounty{},
		Submissions:   []Submission{},
		VerifyingKeys: []VerifyingKeyEntry{},
	}
}

// Validate performs basic genesis state validation returning an error upon any failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	bounties := make(map[string]Bounty, len(gs.Bounties))
	for i, b := range gs.Bounties {
		if err := validateGenesisBounty(b); err != nil {
			return ErrInvalidGenesis.Wrapf("bounty %d: %v", i, err)
		}
		key := b.Id.String()
		if _, dup := bounties[key]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate bounty %s", key)
		}
		bounties[key] = b
	}

	seen := make(map[string]struct{}, len(gs.Submissions))
	for i, sub := range gs.Submissions {
		if _, ok := bounties[sub.Bounty.String()]; !ok {
			return ErrInvalidGenesis.Wrapf("submission %d references unknown bounty %s", i, sub.Bounty)
		}
		if !sub.Id.Equals(SubmissionID(sub.Bounty, sub.Solver)) {
			return ErrInvalidGenesis.Wrapf("submission %d id does not derive from bounty and solver", i)
		}
		key := sub.Id.String()
		if _, dup := seen[key]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate submission %s", key)
		}
		seen[key] = struct{}{}
	}

	keys := make(map[Hash]struct{}, len(gs.VerifyingKeys))
	for i, vk := range gs.VerifyingKeys {
		if len(vk.Key) == 0 {
			return ErrInvalidGenesis.Wrapf("verifying key %d is empty", i)
		}
		if _, dup := keys[vk.EvalSpecHash]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate verifying key for %s", vk.EvalSpecHash)
		}
		keys[vk.EvalSpecHash] = struct{}{}
	}

	return nil
}

func validateGenesisBounty(b Bounty) error {
	if b.Amount == 0 {
		return ErrBadAmount
	}
	if err := sdk.ValidateDenom(b.Denom); err != nil {
		return err
	}
	if len(b.Creator) == 0 {
		return fmt.Errorf("missing creator")
	}
	if !b.Id.Equals(BountyID(b.Creator, b.Seed)) {
		return fmt.Errorf("id does not derive from creator and seed")
	}
	if !b.Vault.Equals(VaultAddress(b.Id, b.VaultBump)) {
		return ErrVaultAuthority.Wrap("vault does not derive from id and bump")
	}
	return ValidateThreshold(b.ThresholdT2)
}

// MustMarshalJSON encodes the state, panicking on failure.
func (gs GenesisState) MustMarshalJSON() json.RawMessage {
	bz, err := json.Marshal(gs)
	if err != nil {
		panic(fmt.Sprintf("marshal %s genesis: %v", ModuleName, err))
	}
	return bz
}

// UnmarshalGenesis decodes a raw genesis message.
func UnmarshalGenesis(bz json.RawMessage) (*GenesisState, error) {
	var gs GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return nil, ErrInvalidGenesis.Wrapf("decode: %v", err)
	}
	return &gs, nil
}
