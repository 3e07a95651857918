package keeper

import (
	"fmt"

	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provability/provability/x/bounty/types"
)

// RegisterInvariants registers all bounty module invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "vault-balance",
		VaultBalanceInvariant(k))
	ir.RegisterRoute(types.ModuleName, "vault-authority",
		VaultAuthorityInvariant(k))
	ir.RegisterRoute(types.ModuleName, "submission-ownership",
		SubmissionOwnershipInvariant(k))
}

// AllInvariants runs all invariants of the bounty module
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		res, stop := VaultBalanceInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		res, stop = VaultAuthorityInvariant(k)(ctx)
		if stop {
			return res, stop
		}
		return SubmissionOwnershipInvariant(k)(ctx)
	}
}

// VaultBalanceInvariant checks every unpaid bounty still holds at least its
// locked amount in its vault.
func VaultBalanceInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken int
			msg    string
		)

		err := k.IterateBounties(ctx, func(b types.Bounty) (bool, error) {
			if b.IsPaid {
				return false, nil
			}
			balance := k.bankKeeper.GetBalance(ctx, b.Vault, b.Denom)
			if balance.Amount.LT(sdkmath.NewIntFromUint64(b.Amount)) {
				broken++
				msg += fmt.Sprintf("\tbounty %s: vault holds %s, locked %d%s\n", b.Id, balance, b.Amount, b.Denom)
			}
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "vault-balance",
				fmt.Sprintf("error iterating bounties: %v", err)), true
		}

		return sdk.FormatInvariant(types.ModuleName, "vault-balance",
			fmt.Sprintf("%d underfunded vaults found\n%s", broken, msg)), broken > 0
	}
}

// VaultAuthorityInvariant checks every stored vault re-derives from its
// bounty id and bump.
func VaultAuthorityInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken int
			msg    string
		)

		err := k.IterateBounties(ctx, func(b types.Bounty) (bool, error) {
			if _, err := vaultAuthority(b); err != nil {
				broken++
				msg += fmt.Sprintf("\t%v\n", err)
			}
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "vault-authority",
				fmt.Sprintf("error iterating bounties: %v", err)), true
		}

		return sdk.FormatInvariant(types.ModuleName, "vault-authority",
			fmt.Sprintf("%d vaults do not re-derive\n%s", broken, msg)), broken > 0
	}
}

// SubmissionOwnershipInvariant checks every submission belongs to an existing
// bounty and carries the id derived from that bounty and its solver.
func SubmissionOwnershipInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			broken int
			msg    string
		)

		err := k.IterateSubmissions(ctx, func(sub types.Submission) (bool, error) {
			switch {
			case !k.HasBounty(ctx, sub.Bounty):
				broken++
				msg += fmt.Sprintf("\tsubmission %s references missing bounty %s\n", sub.Id, sub.Bounty)
			case !sub.Id.Equals(types.SubmissionID(sub.Bounty, sub.Solver)):
				broken++
				msg += fmt.Sprintf("\tsubmission %s does not derive from its bounty and solver\n", sub.Id)
			}
			return false, nil
		})
		if err != nil {
			return sdk.FormatInvariant(types.ModuleName, "submission-ownership",
				fmt.Sprintf("error iterating submissions: %v", err)), true
		}

		return sdk.FormatInvariant(types.ModuleName, "submission-ownership",
			fmt.Sprintf("%d orphaned submissions found\n%s", broken, msg)), broken > 0
	}
}
