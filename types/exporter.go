package types

import (
	"encoding/hex"
	"fmt"
	"math/big"
)

// BlockNumber is the chain's native block number width
type BlockNumber uint32

// ReferendumIndex identifies a referendum
type ReferendumIndex uint32

// ClassID identifies a voting class (track) of the conviction voting pallet
type ClassID uint16

// AccountID is the 32 byte public key of an account
type AccountID [32]byte

func (a AccountID) Hex() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MaxBalance is the largest value of the chain's native u128 balance type
var MaxBalance = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))

// Conviction is the lock multiplier chosen by a voter
type Conviction uint8

const (
	ConvictionNone Conviction = iota
	ConvictionLocked1x
	ConvictionLocked2x
	ConvictionLocked3x
	ConvictionLocked4x
	ConvictionLocked5x
	ConvictionLocked6x
)

// Valid reports whether c is one of None, Locked1x .. Locked6x
func (c Conviction) Valid() bool {
	return c <= ConvictionLocked6x
}

func (c Conviction) String() string {
	if c == ConvictionNone {
		return "None"
	}
	if !c.Valid() {
		return fmt.Sprintf("Conviction(%d)", uint8(c))
	}
	return fmt.Sprintf("Locked%dx", uint8(c))
}

// ParseConviction is the inverse of Conviction.String
func ParseConviction(s string) (Conviction, error) {
	for c := ConvictionNone; c <= ConvictionLocked6x; c++ {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown conviction %q", s)
}

// BallotKind selects the conviction semantics that apply to a balance component
type BallotKind uint8

const (
	BallotStandard BallotKind = iota
	BallotSplit
	BallotSplitAbstain
	BallotAbstain
)

func (k BallotKind) String() string {
	switch k {
	case BallotStandard:
		return "standard"
	case BallotSplit:
		return "split"
	case BallotSplitAbstain:
		return "split-abstain"
	case BallotAbstain:
		return "abstain"
	}
	return fmt.Sprintf("BallotKind(%d)", uint8(k))
}

// AccountVote is a vote as stored by the conviction voting pallet. Exactly one
// of StandardVote, SplitVote and SplitAbstainVote implements it.
type AccountVote interface {
	Kind() BallotKind
	accountVote()
}

// StandardVote is an aye or nay vote with a single balance and conviction
type StandardVote struct {
	Aye        bool
	Conviction Conviction
	Balance    *big.Int
}

// SplitVote divides a balance between aye and nay without conviction
type SplitVote struct {
	Aye *big.Int
	Nay *big.Int
}

// SplitAbstainVote divides a balance between aye, nay and abstain without conviction
type SplitAbstainVote struct {
	Aye     *big.Int
	Nay     *big.Int
	Abstain *big.Int
}

func (StandardVote) Kind() BallotKind     { return BallotStandard }
func (SplitVote) Kind() BallotKind        { return BallotSplit }
func (SplitAbstainVote) Kind() BallotKind { return BallotSplitAbstain }

func (StandardVote) accountVote()     {}
func (SplitVote) accountVote()        {}
func (SplitAbstainVote) accountVote() {}

// Vote is a ballot cast by an account on a referendum
type Vote struct {
	ReferendumID ReferendumIndex
	Class        ClassID
	Ballot       AccountVote
	// Conviction applied to the aye and nay components of split ballots.
	// The pallet stores none, so this is ConvictionNone for chain data.
	SplitConviction Conviction
}

// Delegation is the voting power of a class handed to another account
type Delegation struct {
	Class      ClassID
	Target     AccountID
	Conviction Conviction
	Balance    *big.Int
}

// PriorLock is what remains locked in a class after votes were removed
type PriorLock struct {
	Class       ClassID
	UnlockBlock BlockNumber
	Balance     *big.Int
}

// VotingState is the conviction voting state of an account over all classes
type VotingState struct {
	Votes       []Vote
	Delegations []Delegation
	PriorLocks  []PriorLock
}

// ReferendumStatus is the lifecycle state of a referendum
type ReferendumStatus uint8

const (
	ReferendumOngoing ReferendumStatus = iota
	ReferendumApproved
	ReferendumRejected
	ReferendumCancelled
	ReferendumTimedOut
	ReferendumKilled
)

var referendumStatusNames = map[ReferendumStatus]string{
	ReferendumOngoing:   "ongoing",
	ReferendumApproved:  "approved",
	ReferendumRejected:  "rejected",
	ReferendumCancelled: "cancelled",
	ReferendumTimedOut:  "timedout",
	ReferendumKilled:    "killed",
}

func (s ReferendumStatus) String() string {
	if name, ok := referendumStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ReferendumStatus(%d)", uint8(s))
}

// ParseReferendumStatus is the inverse of ReferendumStatus.String
func ParseReferendumStatus(s string) (ReferendumStatus, error) {
	for status, name := range referendumStatusNames {
		if name == s {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown referendum status %q", s)
}

// Concluded reports whether the referendum reached a terminal state
func (s ReferendumStatus) Concluded() bool {
	return s != ReferendumOngoing
}

// NoEnactment reports whether the referendum ended without a decision that
// extends vote locks.
func (s ReferendumStatus) NoEnactment() bool {
	return s == ReferendumCancelled || s == ReferendumTimedOut || s == ReferendumKilled
}

// Referendum is the part of a referendum's info needed for lock computation
type Referendum struct {
	ID              ReferendumIndex
	Status          ReferendumStatus
	ConclusionBlock BlockNumber
	SubmittedBlock  BlockNumber
}

// VestingSchedule releases Locked linearly at PerBlock from StartingBlock
type VestingSchedule struct {
	Locked        *big.Int
	PerBlock      *big.Int
	StartingBlock BlockNumber
}

// BalanceLock is an entry of the balances pallet lock list (staking, voting, vesting, ...)
type BalanceLock struct {
	ID      string
	Amount  *big.Int
	Reasons uint8
}

// ChainHead is the block every report is computed against
type ChainHead struct {
	Number BlockNumber
}
