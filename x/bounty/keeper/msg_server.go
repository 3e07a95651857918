package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provability/provability/x/bounty/types"
)

var _ types.MsgServer = msgServer{}

type msgServer struct {
	Keeper
}

// NewMsgServerImpl returns an implementation of the MsgServer interface
func NewMsgServerImpl(keeper Keeper) types.MsgServer {
	return &msgServer{Keeper: keeper}
}

// CreateBounty handles opening and funding a new bounty
func (ms msgServer) CreateBounty(goCtx context.Context, msg *types.MsgCreateBounty) (*types.MsgCreateBountyResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	creator, err := sdk.AccAddressFromBech32(msg.Creator)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid creator address: %v", err)
	}

	b, err := ms.Keeper.CreateBounty(goCtx, creator, msg.Params)
	if err != nil {
		return nil, err
	}

	return &types.MsgCreateBountyResponse{
		BountyId: b.Id.String(),
		Vault:    b.Vault.String(),
	}, nil
}

// Submit handles a solver's prediction commitment
func (ms msgServer) Submit(goCtx context.Context, msg *types.MsgSubmit) (*types.MsgSubmitResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	solver, err := sdk.AccAddressFromBech32(msg.Solver)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid solver address: %v", err)
	}
	bountyID, err := sdk.AccAddressFromBech32(msg.BountyId)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid bounty id: %v", err)
	}

	sub, err := ms.Keeper.Submit(goCtx, solver, bountyID, msg.PredsHash, msg.Uri)
	if err != nil {
		return nil, err
	}

	return &types.MsgSubmitResponse{SubmissionId: sub.Id.String()}, nil
}

// FinalizeWithAttestation handles settlement of a bounty
func (ms msgServer) FinalizeWithAttestation(goCtx context.Context, msg *types.MsgFinalizeWithAttestation) (*types.MsgFinalizeWithAttestationResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	signer, err := sdk.AccAddressFromBech32(msg.Signer)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid signer address: %v", err)
	}
	bountyID, err := sdk.AccAddressFromBech32(msg.BountyId)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid bounty id: %v", err)
	}
	submissionID, err := sdk.AccAddressFromBech32(msg.SubmissionId)
	if err != nil {
		return nil, types.ErrInvalidAddress.Wrapf("invalid submission id: %v", err)
	}

	if err := ms.Keeper.FinalizeWithAttestation(goCtx, signer, bountyID, submissionID, msg.AttestedPayload, msg.AttestationProof); err != nil {
		return nil, err
	}

	return &types.MsgFinalizeWithAttestationResponse{}, nil
}

// RegisterVerifyingKey handles installing a verifying key
func (ms msgServer) RegisterVerifyingKey(goCtx context.Context, msg *types.MsgRegisterVerifyingKey) (*types.MsgRegisterVerifyingKeyResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}

	measurement, err := ms.Keeper.RegisterVerifyingKey(goCtx, msg.Authority, msg.EvalSpecHash, msg.VerifyingKey)
	if err != nil {
		return nil, err
	}

	return &types.MsgRegisterVerifyingKeyResponse{Measurement: measurement}, nil
}
