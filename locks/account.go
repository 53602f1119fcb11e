package locks

import (
	"errors"
	"fmt"

	"github.com/lovelaced/polkadot-locks-report/types"
)

// RecordFailure is a lock that could not be computed
type RecordFailure struct {
	Source types.LockSource
	Err    error
}

func (f RecordFailure) String() string {
	if f.Source.Kind == "" {
		return f.Err.Error()
	}
	return fmt.Sprintf("%s: %v", f.Source, f.Err)
}

// AccountLocks is the typed outcome of computing one account
type AccountLocks struct {
	Account  types.AccountID
	Address  string
	Status   types.AccountStatus
	Records  []types.LockRecord
	Voting   types.AggregatedLock
	Vesting  types.AggregatedLock
	Failures []RecordFailure
	Locks    []types.BalanceLock
}

// VotingAuthoritative reports whether the voting aggregate covers every vote
func (a AccountLocks) VotingAuthoritative() bool {
	return a.Status != types.StatusIncomplete && a.Status != types.StatusFailed
}

// ComputeAccount computes every lock record of an account snapshot and
// aggregates them per class. Records that overflow are skipped and flagged as
// degraded; votes whose referendum is missing mark the account incomplete.
func (p Params) ComputeAccount(snapshot types.AccountSnapshot, current types.BlockNumber) AccountLocks {
	out := AccountLocks{
		Account: snapshot.Account,
		Address: snapshot.Address,
		Status:  types.StatusOK,
		Locks:   snapshot.Locks,
	}

	var overflow, missing bool
	fail := func(source types.LockSource, err error) {
		out.Failures = append(out.Failures, RecordFailure{Source: source, Err: err})
		switch {
		case errors.Is(err, ErrReferendumNotFound):
			missing = true
		default:
			overflow = true
		}
	}

	for _, vote := range snapshot.Voting.Votes {
		source := types.LockSource{Kind: types.SourceVote, Class: vote.Class, ReferendumID: vote.ReferendumID}
		referendum, ok := snapshot.Referenda[vote.ReferendumID]
		if !ok {
			fail(source, fmt.Errorf("%w: #%d", ErrReferendumNotFound, vote.ReferendumID))
			continue
		}
		records, err := p.ComputeVoteLock(snapshot.Account, vote, referendum)
		if err != nil {
			fail(source, err)
			continue
		}
		out.Records = append(out.Records, records...)
	}

	for _, prior := range snapshot.Voting.PriorLocks {
		record, err := p.ComputePriorLock(snapshot.Account, prior)
		if err != nil {
			fail(types.LockSource{Kind: types.SourcePriorLock, Class: prior.Class}, err)
			continue
		}
		if record != nil {
			out.Records = append(out.Records, *record)
		}
	}

	for _, delegation := range snapshot.Voting.Delegations {
		record, err := p.ComputeDelegationLock(snapshot.Account, delegation)
		if err != nil {
			fail(types.LockSource{Kind: types.SourceDelegation, Class: delegation.Class}, err)
			continue
		}
		if record != nil {
			out.Records = append(out.Records, *record)
		}
	}

	for i, schedule := range snapshot.Vesting {
		record, err := ComputeVestingLock(snapshot.Account, i, schedule, current)
		if err != nil {
			fail(types.LockSource{Kind: types.SourceVesting, Schedule: i}, err)
			continue
		}
		if record != nil {
			out.Records = append(out.Records, *record)
		}
	}

	out.Voting, out.Vesting = AggregateAccount(snapshot.Account, out.Records, current)

	switch {
	case missing:
		out.Status = types.StatusIncomplete
	case overflow:
		out.Status = types.StatusDegraded
	}
	return out
}
