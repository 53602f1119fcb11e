package types

import (
	"fmt"
	"math/big"
)

// LockClass is the balance class a lock belongs to
type LockClass string

const (
	LockClassVoting  LockClass = "voting"
	LockClassVesting LockClass = "vesting"
)

// ConvictionMultiplier is the number of base locking periods a vote extends its lock by
type ConvictionMultiplier struct {
	Periods      uint32
	PeriodBlocks uint32
}

// Duration returns the lock extension in blocks
func (m ConvictionMultiplier) Duration() uint64 {
	return uint64(m.Periods) * uint64(m.PeriodBlocks)
}

// UnlockPoint is the block a lock expires at. Indefinite locks never expire
// while their cause (ongoing referendum, delegation) lasts.
type UnlockPoint struct {
	Block      BlockNumber `json:"block"`
	Indefinite bool        `json:"indefinite"`
}

// After reports whether p unlocks strictly later than o
func (p UnlockPoint) After(o UnlockPoint) bool {
	if p.Indefinite || o.Indefinite {
		return p.Indefinite && !o.Indefinite
	}
	return p.Block > o.Block
}

// ActiveAt reports whether a lock with this unlock point still holds at block current
func (p UnlockPoint) ActiveAt(current BlockNumber) bool {
	return p.Indefinite || p.Block > current
}

func (p UnlockPoint) String() string {
	if p.Indefinite {
		return "indefinite"
	}
	return fmt.Sprintf("#%d", p.Block)
}

// LockSourceKind names what produced a lock record
type LockSourceKind string

const (
	SourceVote       LockSourceKind = "vote"
	SourcePriorLock  LockSourceKind = "prior"
	SourceDelegation LockSourceKind = "delegation"
	SourceVesting    LockSourceKind = "vesting"
)

// VoteComponent is the direction of the balance a vote lock covers
type VoteComponent string

const (
	ComponentAye     VoteComponent = "aye"
	ComponentNay     VoteComponent = "nay"
	ComponentAbstain VoteComponent = "abstain"
)

// LockSource references the chain data a record was derived from
type LockSource struct {
	Kind         LockSourceKind  `json:"kind"`
	Class        ClassID         `json:"class"`
	ReferendumID ReferendumIndex `json:"referendum,omitempty"`
	Component    VoteComponent   `json:"component,omitempty"`
	Conviction   Conviction      `json:"conviction"`
	Schedule     int             `json:"schedule,omitempty"`
}

func (s LockSource) String() string {
	switch s.Kind {
	case SourceVote:
		return fmt.Sprintf("referendum #%d %s %s", s.ReferendumID, s.Component, s.Conviction)
	case SourcePriorLock:
		return fmt.Sprintf("prior lock class %d", s.Class)
	case SourceDelegation:
		return fmt.Sprintf("delegation class %d %s", s.Class, s.Conviction)
	case SourceVesting:
		return fmt.Sprintf("vesting schedule %d", s.Schedule)
	}
	return string(s.Kind)
}

// LockRecord is a single computed lock. Records are not modified after creation.
type LockRecord struct {
	Account AccountID
	Class   LockClass
	Amount  *big.Int
	Unlock  UnlockPoint
	Source  LockSource
}

// AggregatedLock is the effective lock of an account for one balance class
type AggregatedLock struct {
	Account      AccountID
	Class        LockClass
	Amount       *big.Int
	Unlock       UnlockPoint
	Active       bool
	Contributing int
}
