package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	storeprefix "cosmossdk.io/store/prefix"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provability/provability/x/bounty/types"
)

// Records are not protobuf messages; they persist as JSON.
func marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func unmarshal(bz []byte, v any) error {
	return json.Unmarshal(bz, v)
}

// GetBounty returns a bounty by id.
func (k Keeper) GetBounty(ctx context.Context, bountyID sdk.AccAddress) (types.Bounty, error) {
	var b types.Bounty
	bz := k.getStore(ctx).Get(BountyKey(bountyID))
	if bz == nil {
		return b, types.ErrBountyNotFound.Wrapf("bounty %s", bountyID)
	}
	if err := unmarshal(bz, &b); err != nil {
		return b, fmt.Errorf("failed to unmarshal bounty %s: %w", bountyID, err)
	}
	return b, nil
}

// HasBounty reports whether a bounty record exists.
func (k Keeper) HasBounty(ctx context.Context, bountyID sdk.AccAddress) bool {
	return k.getStore(ctx).Has(BountyKey(bountyID))
}

// SetBounty stores a bounty and its creator index.
func (k Keeper) SetBounty(ctx context.Context, b types.Bounty) error {
	bz, err := marshal(b)
	if err != nil {
		return fmt.Errorf("failed to marshal bounty: %w", err)
	}
	store := k.getStore(ctx)
	store.Set(BountyKey(b.Id), bz)
	store.Set(BountyByCreatorKey(b.Creator, b.Id), []byte{})
	return nil
}

// IterateBounties walks every bounty in key order until cb returns true.
func (k Keeper) IterateBounties(ctx context.Context, cb func(b types.Bounty) (stop bool, err error)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.BountyKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var b types.Bounty
		if err := unmarshal(iterator.Value(), &b); err != nil {
			return fmt.Errorf("failed to unmarshal bounty: %w", err)
		}
		stop, err := cb(b)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return nil
}

// BountiesByCreator returns the ids of all bounties opened by creator.
func (k Keeper) BountiesByCreator(ctx context.Context, creator sdk.AccAddress) []sdk.AccAddress {
	idx := storeprefix.NewStore(k.getStore(ctx), BountiesByCreatorPrefix(creator))
	iterator := idx.Iterator(nil, nil)
	defer iterator.Close()

	var ids []sdk.AccAddress
	for ; iterator.Valid(); iterator.Next() {
		key := iterator.Key()
		if len(key) == 0 || int(key[0]) != len(key)-1 {
			continue
		}
		ids = append(ids, sdk.AccAddress(cloneBytes(key[1:])))
	}
	return ids
}

// GetSubmission returns the submission of solver to a bounty.
func (k Keeper) GetSubmission(ctx context.Context, bountyID, solver sdk.AccAddress) (types.Submission, error) {
	return k.getSubmissionByKey(ctx, SubmissionKey(bountyID, solver))
}

// GetSubmissionByID returns a submission by its derived id.
func (k Keeper) GetSubmissionByID(ctx context.Context, submissionID sdk.AccAddress) (types.Submission, error) {
	primary := k.getStore(ctx).Get(SubmissionIDKey(submissionID))
	if primary == nil {
		return types.Submission{}, types.ErrSubmissionNotFound.Wrapf("submission %s", submissionID)
	}
	return k.getSubmissionByKey(ctx, primary)
}

func (k Keeper) getSubmissionByKey(ctx context.Context, key []byte) (types.Submission, error) {
	var sub types.Submission
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return sub, types.ErrSubmissionNotFound
	}
	if err := unmarshal(bz, &sub); err != nil {
		return sub, fmt.Errorf("failed to unmarshal submission: %w", err)
	}
	return sub, nil
}

// HasSubmission reports whether solver already holds the slot of a bounty.
func (k Keeper) HasSubmission(ctx context.Context, bountyID, solver sdk.AccAddress) bool {
	return k.getStore(ctx).Has(SubmissionKey(bountyID, solver))
}

// SetSubmission stores a submission and its id index.
func (k Keeper) SetSubmission(ctx context.Context, sub types.Submission) error {
	bz, err := marshal(sub)
	if err != nil {
		return fmt.Errorf("failed to marshal submission: %w", err)
	}
	key := SubmissionKey(sub.Bounty, sub.Solver)
	store := k.getStore(ctx)
	store.Set(key, bz)
	store.Set(SubmissionIDKey(sub.Id), key)
	return nil
}

// SubmissionsByBounty returns every submission made to a bounty.
func (k Keeper) SubmissionsByBounty(ctx context.Context, bountyID sdk.AccAddress) ([]types.Submission, error) {
	subStore := storeprefix.NewStore(k.getStore(ctx), SubmissionsByBountyPrefix(bountyID))
	iterator := subStore.Iterator(nil, nil)
	defer iterator.Close()

	var subs []types.Submission
	for ; iterator.Valid(); iterator.Next() {
		var sub types.Submission
		if err := unmarshal(iterator.Value(), &sub); err != nil {
			return nil, fmt.Errorf("failed to unmarshal submission: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

// IterateSubmissions walks every submission of every bounty.
func (k Keeper) IterateSubmissions(ctx context.Context, cb func(sub types.Submission) (stop bool, err error)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.SubmissionKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var sub types.Submission
		if err := unmarshal(iterator.Value(), &sub); err != nil {
			return fmt.Errorf("failed to unmarshal submission: %w", err)
		}
		stop, err := cb(sub)
		if err != nil {
			return err
		}
		if stop {
			break
		}
	}
	return nil
}

// IsExpired reports whether a bounty's deadline has passed at ledger time.
func (k Keeper) IsExpired(ctx context.Context, bountyID sdk.AccAddress) (bool, error) {
	b, err := k.GetBounty(ctx, bountyID)
	if err != nil {
		return false, err
	}
	return b.IsExpired(k.clock.Now(ctx)), nil
}
