package types

// AccountSnapshot is everything read from the chain for one account, decoded
// and ready for lock computation.
type AccountSnapshot struct {
	Account   AccountID
	Address   string
	Voting    VotingState
	Referenda map[ReferendumIndex]Referendum
	Vesting   []VestingSchedule
	Locks     []BalanceLock
}

// ReferencedReferenda returns the distinct referendum ids voted on, in vote order
func (v VotingState) ReferencedReferenda() []ReferendumIndex {
	seen := make(map[ReferendumIndex]bool, len(v.Votes))
	ids := make([]ReferendumIndex, 0, len(v.Votes))
	for _, vote := range v.Votes {
		if seen[vote.ReferendumID] {
			continue
		}
		seen[vote.ReferendumID] = true
		ids = append(ids, vote.ReferendumID)
	}
	return ids
}
