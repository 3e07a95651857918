package keeper

import (
	"context"
	"fmt"
	"sync"

	"cosmossdk.io/core/store"
	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/provability/provability/x/bounty/types"
)

// Keeper is the escrow ledger of the bounty module. It owns bounty and
// submission records, the verifying key registry and the vault custodian.
type Keeper struct {
	storeService  store.KVStoreService
	bankKeeper    types.BankKeeper
	accountKeeper types.AccountKeeper
	verifier      types.ProofVerifier
	clock         types.Clock
	authority     string

	// mu serializes state transitions so a second finalize always observes
	// the paid flag written by the first.
	mu *sync.Mutex

	metrics *BountyMetrics
}

// NewKeeper creates a new bounty Keeper instance. A nil verifier or clock
// panics: the ledger cannot settle without them.
func NewKeeper(
	storeService store.KVStoreService,
	bankKeeper types.BankKeeper,
	accountKeeper types.AccountKeeper,
	verifier types.ProofVerifier,
	clock types.Clock,
	authority string,
) *Keeper {
	if verifier == nil {
		panic("bounty keeper requires a proof verifier")
	}
	if clock == nil {
		panic("bounty keeper requires a clock")
	}
	if _, err := sdk.AccAddressFromBech32(authority); err != nil {
		panic(fmt.Sprintf("invalid bounty authority address: %s", err))
	}

	return &Keeper{
		storeService:  storeService,
		bankKeeper:    bankKeeper,
		accountKeeper: accountKeeper,
		verifier:      verifier,
		clock:         clock,
		authority:     authority,
		mu:            &sync.Mutex{},
		metrics:       NewBountyMetrics(),
	}
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// GetAuthority returns the address allowed to register verifying keys.
func (k Keeper) GetAuthority() string {
	return k.authority
}

// Now returns the ledger time for ctx.
func (k Keeper) Now(ctx context.Context) int64 {
	return k.clock.Now(ctx).Unix()
}

// getStore returns the module KVStore in its legacy form, for prefix iteration.
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	return runtime.KVStoreAdapter(k.storeService.OpenKVStore(ctx))
}

// GetParams returns the module params, falling back to defaults.
func (k Keeper) GetParams(ctx context.Context) types.Params {
	bz := k.getStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := unmarshal(bz, &params); err != nil {
		k.Logger(ctx).Error("failed to decode params, using defaults", "error", err)
		return types.DefaultParams()
	}
	return params
}

// SetParams validates and stores the module params.
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}
