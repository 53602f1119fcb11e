package locks

import (
	"fmt"
	"math"
	"math/big"

	"github.com/lovelaced/polkadot-locks-report/types"
)

type component struct {
	name    types.VoteComponent
	kind    types.BallotKind
	amount  *big.Int
	convict types.Conviction
}

// components splits a ballot into its lockable balance components
func components(vote types.Vote) []component {
	switch b := vote.Ballot.(type) {
	case types.StandardVote:
		name := types.ComponentNay
		if b.Aye {
			name = types.ComponentAye
		}
		return []component{{name, types.BallotStandard, b.Balance, b.Conviction}}
	case types.SplitVote:
		return []component{
			{types.ComponentAye, types.BallotSplit, b.Aye, vote.SplitConviction},
			{types.ComponentNay, types.BallotSplit, b.Nay, vote.SplitConviction},
		}
	case types.SplitAbstainVote:
		return []component{
			{types.ComponentAye, types.BallotSplitAbstain, b.Aye, vote.SplitConviction},
			{types.ComponentNay, types.BallotSplitAbstain, b.Nay, vote.SplitConviction},
			{types.ComponentAbstain, types.BallotAbstain, b.Abstain, types.ConvictionNone},
		}
	case nil:
		return nil
	}
	panic(fmt.Sprintf("unknown account vote %T", vote.Ballot))
}

// ComputeVoteLock derives the lock records of a vote. Split ballots produce
// one record per non-zero component. Votes on ongoing referenda stay locked
// until the referendum concludes, votes on cancelled, timed out or killed
// referenda unlock at the conclusion block.
func (p Params) ComputeVoteLock(account types.AccountID, vote types.Vote, referendum types.Referendum) ([]types.LockRecord, error) {
	if vote.ReferendumID != referendum.ID {
		return nil, fmt.Errorf("%w: vote on #%d, referendum #%d", ErrReferendumMismatch, vote.ReferendumID, referendum.ID)
	}

	var records []types.LockRecord
	for _, c := range components(vote) {
		if c.amount == nil || c.amount.Sign() == 0 {
			continue
		}
		if err := checkBalance(c.amount); err != nil {
			return nil, fmt.Errorf("referendum #%d %s balance: %w", vote.ReferendumID, c.name, err)
		}

		record := types.LockRecord{
			Account: account,
			Class:   types.LockClassVoting,
			Amount:  new(big.Int).Set(c.amount),
			Source: types.LockSource{
				Kind:         types.SourceVote,
				Class:        vote.Class,
				ReferendumID: vote.ReferendumID,
				Component:    c.name,
				Conviction:   c.convict,
			},
		}

		if !referendum.Status.Concluded() {
			record.Unlock = types.UnlockPoint{Indefinite: true}
			records = append(records, record)
			continue
		}

		multiplier := p.ResolveConviction(c.convict, c.kind)
		if referendum.Status.NoEnactment() {
			multiplier.Periods = 0
		}
		unlock, err := addBlocks(referendum.ConclusionBlock, multiplier.Duration())
		if err != nil {
			return nil, fmt.Errorf("referendum #%d unlock block: %w", vote.ReferendumID, err)
		}
		record.Unlock = types.UnlockPoint{Block: unlock}
		records = append(records, record)
	}
	return records, nil
}

// ComputeDelegationLock locks a delegated balance for as long as the delegation lasts
func (p Params) ComputeDelegationLock(account types.AccountID, delegation types.Delegation) (*types.LockRecord, error) {
	if delegation.Balance == nil || delegation.Balance.Sign() == 0 {
		return nil, nil
	}
	if err := checkBalance(delegation.Balance); err != nil {
		return nil, fmt.Errorf("delegation class %d balance: %w", delegation.Class, err)
	}
	return &types.LockRecord{
		Account: account,
		Class:   types.LockClassVoting,
		Amount:  new(big.Int).Set(delegation.Balance),
		Unlock:  types.UnlockPoint{Indefinite: true},
		Source: types.LockSource{
			Kind:       types.SourceDelegation,
			Class:      delegation.Class,
			Conviction: delegation.Conviction,
		},
	}, nil
}

// ComputePriorLock turns the prior lock of a class into a lock record
func (p Params) ComputePriorLock(account types.AccountID, prior types.PriorLock) (*types.LockRecord, error) {
	if prior.Balance == nil || prior.Balance.Sign() == 0 {
		return nil, nil
	}
	if err := checkBalance(prior.Balance); err != nil {
		return nil, fmt.Errorf("prior lock class %d balance: %w", prior.Class, err)
	}
	return &types.LockRecord{
		Account: account,
		Class:   types.LockClassVoting,
		Amount:  new(big.Int).Set(prior.Balance),
		Unlock:  types.UnlockPoint{Block: prior.UnlockBlock},
		Source: types.LockSource{
			Kind:  types.SourcePriorLock,
			Class: prior.Class,
		},
	}, nil
}

func addBlocks(base types.BlockNumber, blocks uint64) (types.BlockNumber, error) {
	sum := uint64(base) + blocks
	if blocks > math.MaxUint32 || sum > math.MaxUint32 {
		return 0, fmt.Errorf("%w: block %d + %d", ErrArithmeticOverflow, base, blocks)
	}
	return types.BlockNumber(sum), nil
}

func checkBalance(b *big.Int) error {
	if b.Sign() < 0 || b.Cmp(types.MaxBalance) > 0 {
		return fmt.Errorf("%w: balance %s", ErrArithmeticOverflow, b)
	}
	return nil
}
