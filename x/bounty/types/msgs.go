package types

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// MsgServer is the transaction surface of the bounty module.
type MsgServer interface {
	CreateBounty(context.Context, *MsgCreateBounty) (*MsgCreateBountyResponse, error)
	Submit(context.Context, *MsgSubmit) (*MsgSubmitResponse, error)
	FinalizeWithAttestation(context.Context, *MsgFinalizeWithAttestation) (*MsgFinalizeWithAttestationResponse, error)
	RegisterVerifyingKey(context.Context, *MsgRegisterVerifyingKey) (*MsgRegisterVerifyingKeyResponse, error)
}

// MsgCreateBounty opens a bounty and funds its vault from the creator.
type MsgCreateBounty struct {
	Creator string             `json:"creator"`
	Params  CreateBountyParams `json:"params"`
}

// MsgCreateBountyResponse returns the derived identities of the new bounty.
type MsgCreateBountyResponse struct {
	BountyId string `json:"bounty_id"`
	Vault    string `json:"vault"`
}

// MsgSubmit registers a solver's prediction commitment.
type MsgSubmit struct {
	Solver    string `json:"solver"`
	BountyId  string `json:"bounty_id"`
	PredsHash Hash   `json:"preds_hash"`
	Uri       string `json:"uri"`
}

// MsgSubmitResponse returns the derived submission identity.
type MsgSubmitResponse struct {
	SubmissionId string `json:"submission_id"`
}

// MsgFinalizeWithAttestation pays the vault to the solver of a passing, proven
// submission.
type MsgFinalizeWithAttestation struct {
	Signer           string `json:"signer"`
	BountyId         string `json:"bounty_id"`
	SubmissionId     string `json:"submission_id"`
	AttestedPayload  []byte `json:"attested_payload"`
	AttestationProof []byte `json:"attestation_proof"`
}

// MsgFinalizeWithAttestationResponse is empty on success.
type MsgFinalizeWithAttestationResponse struct{}

// MsgRegisterVerifyingKey installs the verifying key of an evaluation program.
// Only the module authority may send it.
type MsgRegisterVerifyingKey struct {
	Authority    string `json:"authority"`
	EvalSpecHash Hash   `json:"eval_spec_hash"`
	VerifyingKey []byte `json:"verifying_key"`
}

// MsgRegisterVerifyingKeyResponse returns the measurement of the key.
type MsgRegisterVerifyingKeyResponse struct {
	Measurement Hash `json:"measurement"`
}

// ValidateBasic performs stateless checks.
func (msg *MsgCreateBounty) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Creator); err != nil {
		return ErrInvalidAddress.Wrapf("invalid creator address: %v", err)
	}
	if msg.Params.Amount == 0 {
		return ErrBadAmount.Wrap("amount must be positive")
	}
	if err := ValidateThreshold(msg.Params.ThresholdT2); err != nil {
		return ErrInvalidParams.Wrap(err.Error())
	}
	if len(msg.Params.AllowedAttester) != 0 {
		if err := sdk.VerifyAddressFormat(msg.Params.AllowedAttester); err != nil {
			return ErrInvalidAddress.Wrapf("invalid attester address: %v", err)
		}
	}
	return nil
}

// ValidateBasic performs stateless checks.
func (msg *MsgSubmit) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Solver); err != nil {
		return ErrInvalidAddress.Wrapf("invalid solver address: %v", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.BountyId); err != nil {
		return ErrInvalidAddress.Wrapf("invalid bounty id: %v", err)
	}
	return nil
}

// ValidateBasic performs stateless checks.
func (msg *MsgFinalizeWithAttestation) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Signer); err != nil {
		return ErrInvalidAddress.Wrapf("invalid signer address: %v", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.BountyId); err != nil {
		return ErrInvalidAddress.Wrapf("invalid bounty id: %v", err)
	}
	if _, err := sdk.AccAddressFromBech32(msg.SubmissionId); err != nil {
		return ErrInvalidAddress.Wrapf("invalid submission id: %v", err)
	}
	if len(msg.AttestedPayload) == 0 {
		return ErrBadPayload.Wrap("payload cannot be empty")
	}
	if len(msg.AttestationProof) == 0 {
		return ErrBadAttestation.Wrap("attestation proof cannot be empty")
	}
	return nil
}

// ValidateBasic performs stateless checks.
func (msg *MsgRegisterVerifyingKey) ValidateBasic() error {
	if _, err := sdk.AccAddressFromBech32(msg.Authority); err != nil {
		return ErrInvalidAddress.Wrapf("invalid authority address: %v", err)
	}
	if len(msg.VerifyingKey) == 0 {
		return ErrBadAttestation.Wrap("verifying key cannot be empty")
	}
	return nil
}
