package keeper_test

import (
	"testing"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	keepertest "github.com/provability/provability/testutil/keeper"
	"github.com/provability/provability/x/bounty/types"
)

func TestGenesisRoundTrip(t *testing.T) {
	l := newLedger(t)
	_, err := l.Keeper.Submit(l.Ctx, addr("solver-2"), l.bounty.Id, hashOf("p2"), "ipfs://p2")
	require.NoError(t, err)
	require.NoError(t, l.finalize(l.Ctx, l.solver, l.payload(t, true), l.attestation(t)))

	exported, err := l.Keeper.ExportGenesis(l.Ctx)
	require.NoError(t, err)
	require.NoError(t, exported.Validate())
	require.Len(t, exported.Bounties, 1)
	require.Len(t, exported.Submissions, 2)
	require.Len(t, exported.VerifyingKeys, 1)
	require.True(t, exported.Bounties[0].IsPaid)

	// The JSON form is what the module hands to the app.
	decoded, err := types.UnmarshalGenesis(exported.MustMarshalJSON())
	require.NoError(t, err)

	fresh := keepertest.BountyKeeper(t, &stubVerifier{ok: true})
	require.NoError(t, fresh.Keeper.InitGenesis(fresh.Ctx, *decoded))

	reexported, err := fresh.Keeper.ExportGenesis(fresh.Ctx)
	require.NoError(t, err)
	require.Equal(t, exported.MustMarshalJSON(), reexported.MustMarshalJSON())

	sub, err := fresh.Keeper.GetSubmissionByID(fresh.Ctx, l.sub.Id)
	require.NoError(t, err)
	require.Equal(t, l.sub.PredsHash, sub.PredsHash)
	require.Equal(t, []sdk.AccAddress{l.bounty.Id}, fresh.Keeper.BountiesByCreator(fresh.Ctx, l.creator))
}

func TestInitGenesisRejectsInvalidState(t *testing.T) {
	f := keepertest.BountyKeeper(t, &stubVerifier{ok: true})

	gs := types.DefaultGenesis()
	gs.Params.Denom = ""
	require.Error(t, f.Keeper.InitGenesis(f.Ctx, *gs))

	gs = types.DefaultGenesis()
	gs.VerifyingKeys = []types.VerifyingKeyEntry{{EvalSpecHash: hashOf("spec")}}
	require.ErrorIs(t, f.Keeper.InitGenesis(f.Ctx, *gs), types.ErrInvalidGenesis)
}

func TestDefaultGenesisIsValid(t *testing.T) {
	require.NoError(t, types.DefaultGenesis().Validate())
}
