package types

import (
	"context"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Clock is the shared time source deadlines are checked against.
type Clock interface {
	Now(ctx context.Context) time.Time
}

// BlockTimeClock reads the time from the block header carried by ctx.
type BlockTimeClock struct{}

var _ Clock = BlockTimeClock{}

// Now returns the current block time.
func (BlockTimeClock) Now(ctx context.Context) time.Time {
	return sdk.UnwrapSDKContext(ctx).BlockTime()
}

// FixedClock always returns the same instant. Useful in tests and tooling.
type FixedClock time.Time

var _ Clock = FixedClock{}

// Now returns the fixed instant.
func (c FixedClock) Now(context.Context) time.Time {
	return time.Time(c)
}
