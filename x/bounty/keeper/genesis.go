package keeper

import (
	"context"
	"fmt"

	"github.com/provability/provability/x/bounty/types"
)

// InitGenesis initializes the bounty module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, data types.GenesisState) error {
	if err := data.Validate(); err != nil {
		return err
	}

	if err := k.SetParams(ctx, data.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}

	for _, b := range data.Bounties {
		if err := k.SetBounty(ctx, b); err != nil {
			return fmt.Errorf("failed to initialize bounty %s: %w", b.Id, err)
		}
	}

	for _, sub := range data.Submissions {
		if err := k.SetSubmission(ctx, sub); err != nil {
			return fmt.Errorf("failed to initialize submission %s: %w", sub.Id, err)
		}
	}

	for _, entry := range data.VerifyingKeys {
		k.SetVerifyingKey(ctx, entry.EvalSpecHash, entry.Key)
	}

	return nil
}

// ExportGenesis returns the bounty module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genesis := types.DefaultGenesis()
	genesis.Params = k.GetParams(ctx)

	err := k.IterateBounties(ctx, func(b types.Bounty) (bool, error) {
		genesis.Bounties = append(genesis.Bounties, b)
		return false, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export bounties: %w", err)
	}

	err = k.IterateSubmissions(ctx, func(sub types.Submission) (bool, error) {
		genesis.Submissions = append(genesis.Submissions, sub)
		return false, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export submissions: %w", err)
	}

	genesis.VerifyingKeys = append(genesis.VerifyingKeys, k.GetAllVerifyingKeys(ctx)...)

	return genesis, nil
}
