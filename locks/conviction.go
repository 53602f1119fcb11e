package locks

import (
	"fmt"

	"github.com/lovelaced/polkadot-locks-report/types"
)

// Params are the chain constants used by the calculators
type Params struct {
	// VoteLockingPeriod is the base lock period of a Locked1x vote, in blocks
	VoteLockingPeriod uint32
}

// ParamsFromChainConfig extracts the lock parameters of a chain
func ParamsFromChainConfig(cfg types.ChainConfig) Params {
	return Params{VoteLockingPeriod: cfg.VoteLockingPeriod}
}

// ResolveConviction maps a conviction and ballot kind to the number of base
// locking periods the balance stays locked after the referendum concludes.
// Locked{n}x locks for 2^(n-1) periods, None and abstained balances for none.
// An invalid conviction is a programming error and panics.
func (p Params) ResolveConviction(conviction types.Conviction, kind types.BallotKind) types.ConvictionMultiplier {
	if !conviction.Valid() {
		panic(fmt.Sprintf("unknown conviction value: %d", uint8(conviction)))
	}

	m := types.ConvictionMultiplier{PeriodBlocks: p.VoteLockingPeriod}
	switch kind {
	case types.BallotAbstain:
		return m
	case types.BallotStandard, types.BallotSplit, types.BallotSplitAbstain:
		if conviction == types.ConvictionNone {
			return m
		}
		m.Periods = 1 << (conviction - 1)
		return m
	}
	panic(fmt.Sprintf("unknown ballot kind: %d", uint8(kind)))
}
