package locks

import (
	"math/big"

	"github.com/lovelaced/polkadot-locks-report/types"
)

// Aggregate reduces the records of one balance class to the account's
// effective lock. The chain enforces the single most restrictive lock, so the
// largest amount wins and, among records with that amount, the latest unlock.
// Records of other classes are ignored.
func Aggregate(account types.AccountID, class types.LockClass, records []types.LockRecord, current types.BlockNumber) types.AggregatedLock {
	agg := types.AggregatedLock{
		Account: account,
		Class:   class,
		Amount:  new(big.Int),
	}

	var best *types.LockRecord
	for i := range records {
		r := &records[i]
		if r.Class != class || r.Amount == nil {
			continue
		}
		agg.Contributing++

		if best == nil {
			best = r
			continue
		}
		switch r.Amount.Cmp(best.Amount) {
		case 1:
			best = r
		case 0:
			if r.Unlock.After(best.Unlock) {
				best = r
			}
		}
	}

	if best == nil {
		return agg
	}
	agg.Amount.Set(best.Amount)
	agg.Unlock = best.Unlock
	agg.Active = best.Unlock.ActiveAt(current)
	return agg
}

// AggregateAccount returns the voting and vesting locks of an account
func AggregateAccount(account types.AccountID, records []types.LockRecord, current types.BlockNumber) (voting, vesting types.AggregatedLock) {
	return Aggregate(account, types.LockClassVoting, records, current),
		Aggregate(account, types.LockClassVesting, records, current)
}
