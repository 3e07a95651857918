package types

import (
	sdkerrors "cosmossdk.io/errors"
)

// Bounty module sentinel errors
var (
	// Validation errors, raised before any state is touched
	ErrBadDeadline = sdkerrors.Register(ModuleName, 2, "bad deadline")
	ErrBadAmount   = sdkerrors.Register(ModuleName, 3, "bad amount")
	ErrInvalidURI  = sdkerrors.Register(ModuleName, 4, "invalid submission uri")

	// Temporal errors
	ErrExpired = sdkerrors.Register(ModuleName, 10, "bounty expired")

	// Settlement errors
	ErrAlreadyPaid    = sdkerrors.Register(ModuleName, 20, "already paid")
	ErrBadPayload     = sdkerrors.Register(ModuleName, 21, "bad payload")
	ErrBadAttestation = sdkerrors.Register(ModuleName, 22, "bad attestation")
	ErrDidNotPass     = sdkerrors.Register(ModuleName, 23, "did not pass threshold")
	ErrInvalidProof   = sdkerrors.Register(ModuleName, 24, "the provided proof is invalid")

	// Verifying key registry
	ErrVerifyingKeyNotFound = sdkerrors.Register(ModuleName, 25, "verifying key not registered")

	// Record lookup errors
	ErrBountyNotFound     = sdkerrors.Register(ModuleName, 30, "bounty not found")
	ErrSubmissionNotFound = sdkerrors.Register(ModuleName, 31, "submission not found")
	ErrSubmissionExists   = sdkerrors.Register(ModuleName, 32, "submission already exists for solver")
	ErrBountyExists       = sdkerrors.Register(ModuleName, 33, "bounty already exists")

	// Vault errors
	ErrVaultDerivation = sdkerrors.Register(ModuleName, 40, "no vault bump available")
	ErrVaultAuthority  = sdkerrors.Register(ModuleName, 41, "vault authority re-derivation failed")

	// Misc
	ErrUnauthorized   = sdkerrors.Register(ModuleName, 50, "unauthorized")
	ErrInvalidAddress = sdkerrors.Register(ModuleName, 51, "invalid address")
	ErrInvalidGenesis = sdkerrors.Register(ModuleName, 52, "invalid genesis state")
	ErrInvalidParams  = sdkerrors.Register(ModuleName, 53, "invalid params")
)
