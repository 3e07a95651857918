package keeper

import (
	"context"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provability/provability/x/bounty/types"
)

// findVaultBump searches bumps from 255 downwards and returns the first one
// whose derived vault address has never been used.
func (k Keeper) findVaultBump(ctx context.Context, bountyID sdk.AccAddress) (sdk.AccAddress, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		vault := types.VaultAddress(bountyID, uint8(bump))
		if !k.accountKeeper.HasAccount(ctx, vault) {
			return vault, uint8(bump), nil
		}
	}
	return nil, 0, types.ErrVaultDerivation.Wrapf("bounty %s", bountyID)
}

// vaultAuthority re-derives the vault of b from its stored id and bump. The
// module only ever signs for a vault that derives back to the stored address.
func vaultAuthority(b types.Bounty) (sdk.AccAddress, error) {
	derived := types.VaultAddress(b.Id, b.VaultBump)
	if !derived.Equals(b.Vault) {
		return nil, types.ErrVaultAuthority.Wrapf("bounty %s: stored vault %s, derived %s", b.Id, b.Vault, derived)
	}
	return derived, nil
}

// lockInVault moves amount from the creator into the bounty's vault.
func (k Keeper) lockInVault(ctx context.Context, b types.Bounty) error {
	return k.bankKeeper.SendCoins(ctx, b.Creator, b.Vault, b.Coins())
}

// releaseFromVault moves the full locked amount to recipient under the vault's
// re-derived authority.
func (k Keeper) releaseFromVault(ctx context.Context, b types.Bounty, recipient sdk.AccAddress) error {
	vault, err := vaultAuthority(b)
	if err != nil {
		return err
	}
	return k.bankKeeper.SendCoins(ctx, vault, recipient, b.Coins())
}

// VaultBalance returns the balance held in a bounty's vault.
func (k Keeper) VaultBalance(ctx context.Context, bountyID sdk.AccAddress) (sdk.Coin, error) {
	b, err := k.GetBounty(ctx, bountyID)
	if err != nil {
		return sdk.Coin{}, err
	}
	return k.bankKeeper.GetBalance(ctx, b.Vault, b.Denom), nil
}
