package keeper

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"

	"github.com/provability/provability/x/bounty/kernel"
	"github.com/provability/provability/x/bounty/types"
)

// CreateBounty opens a bounty for creator and locks its amount in a freshly
// derived vault. Nothing is written unless the transfer succeeds.
func (k Keeper) CreateBounty(ctx context.Context, creator sdk.AccAddress, p types.CreateBountyParams) (types.Bounty, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "create_bounty")
	k.mu.Lock()
	defer k.mu.Unlock()

	b, err := k.createBounty(ctx, creator, p)
	if err != nil {
		k.recordFailure("create_bounty", err)
		return types.Bounty{}, err
	}

	k.metrics.BountiesCreated.Inc()
	k.metrics.ValueLocked.Add(float64(b.Amount))
	k.Logger(ctx).Info("bounty created", "bounty", b.Id.String(), "creator", creator.String(), "amount", b.Amount)
	return b, nil
}

func (k Keeper) createBounty(ctx context.Context, creator sdk.AccAddress, p types.CreateBountyParams) (types.Bounty, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	now := k.Now(ctx)

	// CHECKS
	if p.DeadlineTs <= now {
		return types.Bounty{}, types.ErrBadDeadline.Wrapf("deadline %d is not after %d", p.DeadlineTs, now)
	}
	if p.Amount == 0 {
		return types.Bounty{}, types.ErrBadAmount.Wrap("amount must be positive")
	}
	if err := types.ValidateThreshold(p.ThresholdT2); err != nil {
		return types.Bounty{}, types.ErrInvalidParams.Wrap(err.Error())
	}

	bountyID := types.BountyID(creator, p.Seed)
	if k.HasBounty(ctx, bountyID) {
		return types.Bounty{}, types.ErrBountyExists.Wrapf("bounty %s", bountyID)
	}
	vault, bump, err := k.findVaultBump(ctx, bountyID)
	if err != nil {
		return types.Bounty{}, err
	}

	b := types.Bounty{
		Id:                 bountyID,
		Creator:            creator,
		Vault:              vault,
		Seed:               p.Seed,
		Denom:              k.GetParams(ctx).Denom,
		Amount:             p.Amount,
		DeadlineTs:         p.DeadlineTs,
		CreatedTs:          now,
		N:                  p.N,
		Scale:              p.Scale,
		ThresholdT2:        p.ThresholdT2,
		EvalSpecHash:       p.EvalSpecHash,
		TestsetCommitment:  p.TestsetCommitment,
		AllowedMeasurement: p.AllowedMeasurement,
		AllowedAttester:    p.AllowedAttester,
		IsPaid:             false,
		VaultBump:          bump,
	}

	// EFFECTS and INTERACTIONS in a cache context, written only if both succeed
	cacheCtx, writeFn := sdkCtx.CacheContext()
	if err := k.SetBounty(cacheCtx, b); err != nil {
		return types.Bounty{}, err
	}
	if err := k.lockInVault(cacheCtx, b); err != nil {
		return types.Bounty{}, fmt.Errorf("failed to lock bounty funds: %w", err)
	}

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBountyCreated,
			sdk.NewAttribute(types.AttributeKeyBountyID, b.Id.String()),
			sdk.NewAttribute(types.AttributeKeyCreator, b.Creator.String()),
			sdk.NewAttribute(types.AttributeKeyVault, b.Vault.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, b.Coins().String()),
			sdk.NewAttribute(types.AttributeKeyDeadline, strconv.FormatInt(b.DeadlineTs, 10)),
		),
	)
	writeFn()

	return b, nil
}

// Submit registers solver's prediction commitment for a bounty. A solver holds
// at most one submission per bounty.
func (k Keeper) Submit(ctx context.Context, solver, bountyID sdk.AccAddress, predsHash types.Hash, uri string) (types.Submission, error) {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "submit")
	k.mu.Lock()
	defer k.mu.Unlock()

	sub, err := k.submit(ctx, solver, bountyID, predsHash, uri)
	if err != nil {
		k.recordFailure("submit", err)
		return types.Submission{}, err
	}

	k.metrics.SubmissionsCreated.Inc()
	k.Logger(ctx).Info("submission accepted", "bounty", bountyID.String(), "solver", solver.String())
	return sub, nil
}

func (k Keeper) submit(ctx context.Context, solver, bountyID sdk.AccAddress, predsHash types.Hash, uri string) (types.Submission, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	b, err := k.GetBounty(ctx, bountyID)
	if err != nil {
		return types.Submission{}, err
	}
	now := k.clock.Now(ctx)
	if b.IsExpired(now) {
		return types.Submission{}, types.ErrExpired.Wrapf("bounty %s closed at %d", bountyID, b.DeadlineTs)
	}

	maxURI := k.GetParams(ctx).MaxUriLength
	if uint32(len(uri)) > maxURI {
		return types.Submission{}, types.ErrInvalidURI.Wrapf("uri length %d exceeds %d", len(uri), maxURI)
	}
	if k.HasSubmission(ctx, bountyID, solver) {
		return types.Submission{}, types.ErrSubmissionExists.Wrapf("solver %s on bounty %s", solver, bountyID)
	}

	sub := types.Submission{
		Id:        types.SubmissionID(bountyID, solver),
		Bounty:    bountyID,
		Solver:    solver,
		PredsHash: predsHash,
		Uri:       uri,
		CreatedTs: now.Unix(),
	}
	if err := k.SetSubmission(ctx, sub); err != nil {
		return types.Submission{}, err
	}

	sdkCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSubmission,
			sdk.NewAttribute(types.AttributeKeyBountyID, bountyID.String()),
			sdk.NewAttribute(types.AttributeKeySubmissionID, sub.Id.String()),
			sdk.NewAttribute(types.AttributeKeySolver, solver.String()),
			sdk.NewAttribute(types.AttributeKeyPredsHash, predsHash.String()),
			sdk.NewAttribute(types.AttributeKeyURI, uri),
		),
	)
	return sub, nil
}

// FinalizeWithAttestation pays a bounty's vault to the solver of a submission
// once its attested result passes and the attestation verifies. It succeeds at
// most once per bounty.
func (k Keeper) FinalizeWithAttestation(
	ctx context.Context,
	signer, bountyID, submissionID sdk.AccAddress,
	payload, attestation []byte,
) error {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), "finalize")
	k.mu.Lock()
	defer k.mu.Unlock()

	b, err := k.finalize(ctx, signer, bountyID, submissionID, payload, attestation)
	if err != nil {
		k.recordFailure("finalize", err)
		if errors.Is(err, types.ErrBadAttestation) || errors.Is(err, types.ErrInvalidProof) {
			sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
				sdk.NewEvent(
					types.EventTypeAttestationRejected,
					sdk.NewAttribute(types.AttributeKeyBountyID, bountyID.String()),
					sdk.NewAttribute(types.AttributeKeySubmissionID, submissionID.String()),
					sdk.NewAttribute(types.AttributeKeyReason, err.Error()),
				),
			)
		}
		return err
	}

	k.metrics.BountiesFinalized.Inc()
	k.metrics.ValueReleased.Add(float64(b.Amount))
	k.Logger(ctx).Info("bounty finalized", "bounty", bountyID.String(), "submission", submissionID.String())
	return nil
}

func (k Keeper) finalize(
	ctx context.Context,
	signer, bountyID, submissionID sdk.AccAddress,
	payload, attestation []byte,
) (types.Bounty, error) {
	sdkCtx := sdk.UnwrapSDKContext(ctx)

	b, err := k.GetBounty(ctx, bountyID)
	if err != nil {
		return b, err
	}

	// Temporal and terminal-state checks come first.
	if b.IsPaid {
		return b, types.ErrAlreadyPaid.Wrapf("bounty %s", bountyID)
	}
	if b.IsExpired(k.clock.Now(ctx)) {
		return b, types.ErrExpired.Wrapf("bounty %s closed at %d", bountyID, b.DeadlineTs)
	}

	sub, err := k.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return b, err
	}

	// Structural checks on the claim.
	result, err := types.DecodeAttestedResult(payload)
	if err != nil {
		return b, err
	}
	if !sub.Bounty.Equals(b.Id) {
		return b, types.ErrBadPayload.Wrapf("submission %s belongs to bounty %s", sub.Id, sub.Bounty)
	}
	if err := result.MatchBounty(b, sub); err != nil {
		return b, err
	}

	// Policy.
	if !result.Pass {
		return b, types.ErrDidNotPass
	}

	// Proof.
	if err := k.verifyAttestation(ctx, signer, b, sub, payload, result, attestation); err != nil {
		return b, err
	}

	// EFFECTS then INTERACTIONS, committed together.
	cacheCtx, writeFn := sdkCtx.CacheContext()
	b.IsPaid = true
	if err := k.SetBounty(cacheCtx, b); err != nil {
		return b, err
	}
	if err := k.releaseFromVault(cacheCtx, b, sub.Solver); err != nil {
		if errorsmod.IsOf(err, types.ErrVaultAuthority) {
			return b, err
		}
		return b, fmt.Errorf("failed to release bounty funds: %w", err)
	}

	cacheCtx.EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeBountyFinalized,
			sdk.NewAttribute(types.AttributeKeyBountyID, b.Id.String()),
			sdk.NewAttribute(types.AttributeKeySubmissionID, sub.Id.String()),
			sdk.NewAttribute(types.AttributeKeySolver, sub.Solver.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, b.Coins().String()),
		),
	)
	writeFn()

	return b, nil
}

// verifyAttestation checks who may finalize, decodes the attestation envelope,
// resolves the verifying key allowed for the bounty and verifies the proof
// against public inputs rebuilt from ledger state.
func (k Keeper) verifyAttestation(
	ctx context.Context,
	signer sdk.AccAddress,
	b types.Bounty,
	sub types.Submission,
	payload []byte,
	result types.AttestedResult,
	attestation []byte,
) error {
	// A configured attester is the only party that may vouch for the score.
	if len(b.AllowedAttester) != 0 {
		if !signer.Equals(b.AllowedAttester) {
			return types.ErrBadAttestation.Wrapf("signer %s is not the allowed attester", signer)
		}
	} else if !signer.Equals(sub.Solver) {
		return types.ErrBadAttestation.Wrapf("signer %s is not the solver", signer)
	}

	env, journal, err := types.DecodeAttestationEnvelope(attestation)
	if err != nil {
		return err
	}
	if want := kernel.TrainSize(int(b.N)); len(journal.TrainIndices) != want {
		return types.ErrBadAttestation.Wrapf("journal commits %d train rows, bounty of %d rows needs %d", len(journal.TrainIndices), b.N, want)
	}

	vk, err := k.GetVerifyingKey(ctx, b.EvalSpecHash)
	if err != nil {
		return types.ErrBadAttestation.Wrap(err.Error())
	}
	if m := types.Measurement(vk); m != b.AllowedMeasurement {
		return types.ErrBadAttestation.Wrapf("verifying key measurement %s is not the allowed %s", m, b.AllowedMeasurement)
	}

	start := time.Now()
	ok, err := k.verifier.Verify(ctx, vk, env.Proof, types.NewPublicInputs(payload, result, journal))
	k.metrics.ProofVerificationTime.Observe(time.Since(start).Seconds())
	if err != nil {
		return types.ErrBadAttestation.Wrapf("verifier: %v", err)
	}
	if !ok {
		return types.ErrInvalidProof
	}
	return nil
}

func (k Keeper) recordFailure(transition string, err error) {
	reason := "internal"
	if codespace, code, _ := errorsmod.ABCIInfo(err, false); codespace == types.ModuleName {
		reason = strconv.FormatUint(uint64(code), 10)
	}
	k.metrics.TransitionsFailed.WithLabelValues(transition, reason).Inc()
	telemetry.IncrCounterWithLabels(
		[]string{types.ModuleName, "transition_failed"},
		1,
		[]metrics.Label{
			telemetry.NewLabel("transition", transition),
			telemetry.NewLabel("reason", reason),
		},
	)
	if errors.Is(err, types.ErrBadAttestation) || errors.Is(err, types.ErrInvalidProof) {
		k.metrics.AttestationsRejected.WithLabelValues(reason).Inc()
	}
}
