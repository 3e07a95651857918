package keeper

import (
	"context"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provability/provability/x/bounty/types"
)

// RegisterVerifyingKey installs the verifying key of an evaluation program.
// Only the module authority may register keys; re-registering replaces the key
// and therefore its measurement.
func (k Keeper) RegisterVerifyingKey(ctx context.Context, authority string, evalSpecHash types.Hash, vk []byte) (types.Hash, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if authority != k.authority {
		return types.Hash{}, types.ErrUnauthorized.Wrapf("expected %s, got %s", k.authority, authority)
	}
	if len(vk) == 0 {
		return types.Hash{}, types.ErrBadAttestation.Wrap("verifying key cannot be empty")
	}

	k.SetVerifyingKey(ctx, evalSpecHash, vk)
	measurement := types.Measurement(vk)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeVerifyingKeyRegister,
			sdk.NewAttribute(types.AttributeKeyEvalSpecHash, evalSpecHash.String()),
			sdk.NewAttribute(types.AttributeKeyMeasurement, measurement.String()),
		),
	)
	k.metrics.VerifyingKeysRegistered.Inc()
	k.Logger(ctx).Info("verifying key registered", "eval_spec_hash", evalSpecHash.String(), "measurement", measurement.String())

	return measurement, nil
}

// SetVerifyingKey stores a verifying key without authority checks.
func (k Keeper) SetVerifyingKey(ctx context.Context, evalSpecHash types.Hash, vk []byte) {
	k.getStore(ctx).Set(VerifyingKeyKey(evalSpecHash), cloneBytes(vk))
}

// GetVerifyingKey returns the verifying key registered for an evaluation program.
func (k Keeper) GetVerifyingKey(ctx context.Context, evalSpecHash types.Hash) ([]byte, error) {
	bz := k.getStore(ctx).Get(VerifyingKeyKey(evalSpecHash))
	if bz == nil {
		return nil, types.ErrVerifyingKeyNotFound.Wrapf("eval spec %s", evalSpecHash)
	}
	return bz, nil
}

// GetAllVerifyingKeys returns every registered key in key order.
func (k Keeper) GetAllVerifyingKeys(ctx context.Context) []types.VerifyingKeyEntry {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.VerifyingKeyPrefix)
	defer iterator.Close()

	var entries []types.VerifyingKeyEntry
	for ; iterator.Valid(); iterator.Next() {
		var entry types.VerifyingKeyEntry
		copy(entry.EvalSpecHash[:], iterator.Key()[len(types.VerifyingKeyPrefix):])
		entry.Key = cloneBytes(iterator.Value())
		entries = append(entries, entry)
	}
	return entries
}
