package report

import (
	"math/big"

	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/lovelaced/polkadot-locks-report/utils"
)

const secondsPerDay = 24 * 60 * 60

type ladderCategory struct {
	name  string
	class string
	// maxDays is the inclusive upper bound, -1 for unbounded
	maxDays int64
}

// longest first, as presented
var ladderCategories = []ladderCategory{
	{"Locked Until Referendum Ends", "locked-until-referendum-ends", -1},
	{"Locked 60+ Days", "locked-60-plus-days", -1},
	{"Locked 29-60 Days", "locked-29-60-days", 60},
	{"Locked 15-28 Days", "locked-15-28-days", 28},
	{"Locked 8-14 Days", "locked-8-14-days", 14},
	{"Locked 1-7 Days", "locked-1-7-days", 7},
	{"Locked 0 Days", "locked-0-days", 0},
}

const (
	categoryIndefinite = 0
	categoryLongest    = 1
)

// daysUntil is the number of whole days until block unlock, 0 or less when passed
func daysUntil(unlock, current types.BlockNumber, secondsPerBlock uint64) int64 {
	seconds := (int64(unlock) - int64(current)) * int64(secondsPerBlock)
	return seconds / secondsPerDay
}

func categorize(unlock types.UnlockPoint, current types.BlockNumber, secondsPerBlock uint64) int {
	if unlock.Indefinite {
		return categoryIndefinite
	}
	days := daysUntil(unlock.Block, current, secondsPerBlock)
	for i := len(ladderCategories) - 1; i > categoryLongest; i-- {
		if days <= ladderCategories[i].maxDays {
			return i
		}
	}
	return categoryLongest
}

// LiquidityLadder buckets the voting lock records of an account by time until
// unlock. Each bucket shows the largest lock in it, ties go to the later unlock.
func LiquidityLadder(records []types.LockRecord, current types.BlockNumber, chainConfig types.ChainConfig) []types.LiquidityBucket {
	type best struct {
		amount *big.Int
		unlock types.UnlockPoint
	}
	buckets := make([]*best, len(ladderCategories))

	for _, r := range records {
		if r.Class != types.LockClassVoting || r.Amount == nil {
			continue
		}
		i := categorize(r.Unlock, current, chainConfig.SecondsPerBlock)
		b := buckets[i]
		if b == nil {
			buckets[i] = &best{amount: r.Amount, unlock: r.Unlock}
			continue
		}
		cmp := r.Amount.Cmp(b.amount)
		if cmp > 0 || (cmp == 0 && r.Unlock.After(b.unlock)) {
			b.amount, b.unlock = r.Amount, r.Unlock
		}
	}

	ladder := make([]types.LiquidityBucket, 0, len(ladderCategories))
	for i, c := range ladderCategories {
		if buckets[i] == nil {
			ladder = append(ladder, types.LiquidityBucket{Category: c.name, Amount: "none", Class: "none"})
			continue
		}
		ladder = append(ladder, types.LiquidityBucket{
			Category: c.name,
			Amount:   utils.PlancksToTokens(buckets[i].amount, chainConfig.TokenDecimals).StringFixed(int32(chainConfig.TokenDecimals)),
			Class:    c.class,
		})
	}
	return ladder
}
