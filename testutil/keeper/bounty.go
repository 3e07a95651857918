package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/codec"
	"github.com/cosmos/cosmos-sdk/codec/address"
	codectypes "github.com/cosmos/cosmos-sdk/codec/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authkeeper "github.com/cosmos/cosmos-sdk/x/auth/keeper"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	bankkeeper "github.com/cosmos/cosmos-sdk/x/bank/keeper"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	govtypes "github.com/cosmos/cosmos-sdk/x/gov/types"
	"github.com/stretchr/testify/require"

	"github.com/provability/provability/x/bounty/keeper"
	"github.com/provability/provability/x/bounty/types"
)

// FaucetName is the test-only module account allowed to mint funds.
const FaucetName = "faucet"

// GenesisTime is the block time of a fresh test context.
var GenesisTime = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// BountyFixture bundles a bounty keeper with the real auth and bank keepers
// backing it.
type BountyFixture struct {
	Keeper        *keeper.Keeper
	Ctx           sdk.Context
	AccountKeeper authkeeper.AccountKeeper
	BankKeeper    bankkeeper.BaseKeeper
	Authority     string
}

// BountyKeeper creates a bounty keeper over an in-memory multistore. The
// ledger clock reads the context block time.
func BountyKeeper(t testing.TB, verifier types.ProofVerifier) *BountyFixture {
	storeKey := storetypes.NewKVStoreKey(types.StoreKey)
	authStoreKey := storetypes.NewKVStoreKey(authtypes.StoreKey)
	bankStoreKey := storetypes.NewKVStoreKey(banktypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(storeKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(authStoreKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(bankStoreKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	registry := codectypes.NewInterfaceRegistry()
	authtypes.RegisterInterfaces(registry)
	banktypes.RegisterInterfaces(registry)
	cdc := codec.NewProtoCodec(registry)
	authority := authtypes.NewModuleAddress(govtypes.ModuleName)

	maccPerms := map[string][]string{
		FaucetName: {authtypes.Minter},
	}

	accountKeeper := authkeeper.NewAccountKeeper(
		cdc,
		runtime.NewKVStoreService(authStoreKey),
		authtypes.ProtoBaseAccount,
		maccPerms,
		address.NewBech32Codec(sdk.GetConfig().GetBech32AccountAddrPrefix()),
		sdk.GetConfig().GetBech32AccountAddrPrefix(),
		authority.String(),
	)

	bankKeeper := bankkeeper.NewBaseKeeper(
		cdc,
		runtime.NewKVStoreService(bankStoreKey),
		accountKeeper,
		map[string]bool{},
		authority.String(),
		log.NewNopLogger(),
	)

	k := keeper.NewKeeper(
		runtime.NewKVStoreService(storeKey),
		bankKeeper,
		accountKeeper,
		verifier,
		types.BlockTimeClock{},
		authority.String(),
	)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{Time: GenesisTime}, false, log.NewNopLogger())
	require.NoError(t, k.SetParams(ctx, types.DefaultParams()))

	return &BountyFixture{
		Keeper:        k,
		Ctx:           ctx,
		AccountKeeper: accountKeeper,
		BankKeeper:    bankKeeper,
		Authority:     authority.String(),
	}
}

// Fund mints amount of the default denom into addr.
func (f *BountyFixture) Fund(t testing.TB, addr sdk.AccAddress, amount uint64) {
	t.Helper()
	coins := sdk.NewCoins(sdk.NewCoin(types.DefaultDenom, sdkmath.NewIntFromUint64(amount)))
	require.NoError(t, f.BankKeeper.MintCoins(f.Ctx, FaucetName, coins))
	require.NoError(t, f.BankKeeper.SendCoinsFromModuleToAccount(f.Ctx, FaucetName, addr, coins))
}

// Balance returns the default-denom balance of addr.
func (f *BountyFixture) Balance(addr sdk.AccAddress) uint64 {
	return f.BankKeeper.GetBalance(f.Ctx, addr, types.DefaultDenom).Amount.Uint64()
}

// At returns the fixture context moved to the given block time.
func (f *BountyFixture) At(ts time.Time) sdk.Context {
	return f.Ctx.WithBlockTime(ts)
}
