package interfaces

import (
	"context"

	"github.com/lovelaced/polkadot-locks-report/types"
)

// ChainSource reads the chain state lock computation depends on
type ChainSource interface {
	CurrentBlock(ctx context.Context) (types.BlockNumber, error)
	Voting(ctx context.Context, account types.AccountID) (types.VotingState, error)
	// Referendum returns nil without an error when the referendum does not exist
	Referendum(ctx context.Context, id types.ReferendumIndex) (*types.Referendum, error)
	VestingSchedules(ctx context.Context, account types.AccountID) ([]types.VestingSchedule, error)
	BalanceLocks(ctx context.Context, account types.AccountID) ([]types.BalanceLock, error)
}
