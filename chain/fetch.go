package chain

import (
	"context"
	"fmt"

	"github.com/lovelaced/polkadot-locks-report/interfaces"
	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/sirupsen/logrus"
)

var logger = logrus.StandardLogger().WithField("module", "chain")

// FetchAccount reads everything lock computation needs for one account.
// Referenda that do not exist on chain are left out of the snapshot.
func FetchAccount(ctx context.Context, src interfaces.ChainSource, account types.AccountID, address string) (types.AccountSnapshot, error) {
	snapshot := types.AccountSnapshot{
		Account:   account,
		Address:   address,
		Referenda: make(map[types.ReferendumIndex]types.Referendum),
	}

	voting, err := src.Voting(ctx, account)
	if err != nil {
		return snapshot, fmt.Errorf("error reading voting state of %v: %w", address, err)
	}
	snapshot.Voting = voting

	for _, id := range voting.ReferencedReferenda() {
		ref, err := src.Referendum(ctx, id)
		if err != nil {
			return snapshot, fmt.Errorf("error reading referendum #%d: %w", id, err)
		}
		if ref == nil {
			logger.WithFields(logrus.Fields{"address": address, "referendum": id}).Warn("voted referendum not found")
			continue
		}
		snapshot.Referenda[id] = *ref
	}

	snapshot.Vesting, err = src.VestingSchedules(ctx, account)
	if err != nil {
		return snapshot, fmt.Errorf("error reading vesting schedules of %v: %w", address, err)
	}

	snapshot.Locks, err = src.BalanceLocks(ctx, account)
	if err != nil {
		return snapshot, fmt.Errorf("error reading balance locks of %v: %w", address, err)
	}

	return snapshot, nil
}
