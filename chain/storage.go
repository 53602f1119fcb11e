package chain

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/centrifuge/go-substrate-rpc-client/v4/scale"
	gstypes "github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/lovelaced/polkadot-locks-report/types"
)

// variant indices of the storage enums read by the lock report
const (
	votingCasting    = 0
	votingDelegating = 1

	accountVoteStandard     = 0
	accountVoteSplit        = 1
	accountVoteSplitAbstain = 2

	referendumOngoing   = 0
	referendumApproved  = 1
	referendumRejected  = 2
	referendumCancelled = 3
	referendumTimedOut  = 4
	referendumKilled    = 5

	standardVoteAyeBit = 0x80
)

type decoder struct {
	*scale.Decoder
}

func newDecoder(raw []byte) decoder {
	return decoder{scale.NewDecoder(bytes.NewReader(raw))}
}

func (d decoder) u8() (uint8, error) {
	return d.ReadOneByte()
}

func (d decoder) u16() (uint16, error) {
	var v uint16
	err := d.Decode(&v)
	return v, err
}

func (d decoder) u32() (uint32, error) {
	var v uint32
	err := d.Decode(&v)
	return v, err
}

func (d decoder) u128() (*big.Int, error) {
	var v gstypes.U128
	if err := d.Decode(&v); err != nil {
		return nil, err
	}
	if v.Int == nil {
		return new(big.Int), nil
	}
	return new(big.Int).Set(v.Int), nil
}

func (d decoder) length() (int, error) {
	n, err := d.DecodeUintCompact()
	if err != nil {
		return 0, err
	}
	if !n.IsInt64() || n.Int64() > 1<<16 {
		return 0, fmt.Errorf("implausible sequence length %s", n)
	}
	return int(n.Int64()), nil
}

func (d decoder) account() (types.AccountID, error) {
	var account types.AccountID
	err := d.Read(account[:])
	return account, err
}

func (d decoder) conviction() (types.Conviction, error) {
	b, err := d.u8()
	if err != nil {
		return 0, err
	}
	c := types.Conviction(b)
	if !c.Valid() {
		return 0, fmt.Errorf("unknown conviction value: %d", b)
	}
	return c, nil
}

// DecodeClassLocks decodes ConvictionVoting.ClassLocksFor, the classes an
// account holds voting locks in.
func DecodeClassLocks(raw []byte) ([]types.ClassID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	d := newDecoder(raw)
	n, err := d.length()
	if err != nil {
		return nil, fmt.Errorf("class locks length: %w", err)
	}
	classes := make([]types.ClassID, 0, n)
	for i := 0; i < n; i++ {
		class, err := d.u16()
		if err != nil {
			return nil, fmt.Errorf("class lock %d class: %w", i, err)
		}
		if _, err := d.u128(); err != nil {
			return nil, fmt.Errorf("class lock %d balance: %w", i, err)
		}
		classes = append(classes, types.ClassID(class))
	}
	return classes, nil
}

func decodeAccountVote(d decoder) (types.AccountVote, error) {
	variant, err := d.u8()
	if err != nil {
		return nil, err
	}
	switch variant {
	case accountVoteStandard:
		vote, err := d.u8()
		if err != nil {
			return nil, err
		}
		conviction := types.Conviction(vote &^ standardVoteAyeBit)
		if !conviction.Valid() {
			return nil, fmt.Errorf("unknown conviction value: %d", uint8(conviction))
		}
		balance, err := d.u128()
		if err != nil {
			return nil, err
		}
		return types.StandardVote{Aye: vote&standardVoteAyeBit != 0, Conviction: conviction, Balance: balance}, nil
	case accountVoteSplit:
		aye, err := d.u128()
		if err != nil {
			return nil, err
		}
		nay, err := d.u128()
		if err != nil {
			return nil, err
		}
		return types.SplitVote{Aye: aye, Nay: nay}, nil
	case accountVoteSplitAbstain:
		aye, err := d.u128()
		if err != nil {
			return nil, err
		}
		nay, err := d.u128()
		if err != nil {
			return nil, err
		}
		abstain, err := d.u128()
		if err != nil {
			return nil, err
		}
		return types.SplitAbstainVote{Aye: aye, Nay: nay, Abstain: abstain}, nil
	}
	return nil, fmt.Errorf("unknown account vote variant %d", variant)
}

func decodePrior(d decoder, class types.ClassID) (types.PriorLock, error) {
	// delegations: votes, capital
	for i := 0; i < 2; i++ {
		if _, err := d.u128(); err != nil {
			return types.PriorLock{}, fmt.Errorf("delegations: %w", err)
		}
	}
	until, err := d.u32()
	if err != nil {
		return types.PriorLock{}, fmt.Errorf("prior lock block: %w", err)
	}
	amount, err := d.u128()
	if err != nil {
		return types.PriorLock{}, fmt.Errorf("prior lock balance: %w", err)
	}
	return types.PriorLock{Class: class, UnlockBlock: types.BlockNumber(until), Balance: amount}, nil
}

// DecodeVoting decodes ConvictionVoting.VotingFor for one class and merges it into state
func DecodeVoting(raw []byte, class types.ClassID, state *types.VotingState) error {
	if len(raw) == 0 {
		return nil
	}
	d := newDecoder(raw)
	variant, err := d.u8()
	if err != nil {
		return fmt.Errorf("voting variant: %w", err)
	}

	switch variant {
	case votingCasting:
		n, err := d.length()
		if err != nil {
			return fmt.Errorf("casting votes length: %w", err)
		}
		for i := 0; i < n; i++ {
			ref, err := d.u32()
			if err != nil {
				return fmt.Errorf("vote %d referendum: %w", i, err)
			}
			ballot, err := decodeAccountVote(d)
			if err != nil {
				return fmt.Errorf("vote %d on referendum #%d: %w", i, ref, err)
			}
			state.Votes = append(state.Votes, types.Vote{
				ReferendumID: types.ReferendumIndex(ref),
				Class:        class,
				Ballot:       ballot,
			})
		}
	case votingDelegating:
		balance, err := d.u128()
		if err != nil {
			return fmt.Errorf("delegating balance: %w", err)
		}
		target, err := d.account()
		if err != nil {
			return fmt.Errorf("delegating target: %w", err)
		}
		conviction, err := d.conviction()
		if err != nil {
			return fmt.Errorf("delegating conviction: %w", err)
		}
		state.Delegations = append(state.Delegations, types.Delegation{
			Class:      class,
			Target:     target,
			Conviction: conviction,
			Balance:    balance,
		})
	default:
		return fmt.Errorf("unknown voting variant %d", variant)
	}

	prior, err := decodePrior(d, class)
	if err != nil {
		return err
	}
	if prior.Balance.Sign() > 0 {
		state.PriorLocks = append(state.PriorLocks, prior)
	}
	return nil
}

// DecodeReferendumInfo decodes Referenda.ReferendumInfoFor. Only the variant
// and, for concluded referenda, the conclusion block are read.
func DecodeReferendumInfo(id types.ReferendumIndex, raw []byte) (*types.Referendum, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	d := newDecoder(raw)
	variant, err := d.u8()
	if err != nil {
		return nil, fmt.Errorf("referendum #%d variant: %w", id, err)
	}

	ref := &types.Referendum{ID: id}
	switch variant {
	case referendumOngoing:
		ref.Status = types.ReferendumOngoing
		return ref, nil
	case referendumApproved:
		ref.Status = types.ReferendumApproved
	case referendumRejected:
		ref.Status = types.ReferendumRejected
	case referendumCancelled:
		ref.Status = types.ReferendumCancelled
	case referendumTimedOut:
		ref.Status = types.ReferendumTimedOut
	case referendumKilled:
		ref.Status = types.ReferendumKilled
	default:
		return nil, fmt.Errorf("referendum #%d: unknown info variant %d", id, variant)
	}

	block, err := d.u32()
	if err != nil {
		return nil, fmt.Errorf("referendum #%d conclusion block: %w", id, err)
	}
	ref.ConclusionBlock = types.BlockNumber(block)
	return ref, nil
}

// DecodeVesting decodes Vesting.Vesting
func DecodeVesting(raw []byte) ([]types.VestingSchedule, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	d := newDecoder(raw)
	n, err := d.length()
	if err != nil {
		return nil, fmt.Errorf("vesting length: %w", err)
	}
	schedules := make([]types.VestingSchedule, 0, n)
	for i := 0; i < n; i++ {
		locked, err := d.u128()
		if err != nil {
			return nil, fmt.Errorf("vesting %d locked: %w", i, err)
		}
		perBlock, err := d.u128()
		if err != nil {
			return nil, fmt.Errorf("vesting %d per block: %w", i, err)
		}
		start, err := d.u32()
		if err != nil {
			return nil, fmt.Errorf("vesting %d starting block: %w", i, err)
		}
		schedules = append(schedules, types.VestingSchedule{
			Locked:        locked,
			PerBlock:      perBlock,
			StartingBlock: types.BlockNumber(start),
		})
	}
	return schedules, nil
}

// DecodeBalanceLocks decodes Balances.Locks
func DecodeBalanceLocks(raw []byte) ([]types.BalanceLock, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	d := newDecoder(raw)
	n, err := d.length()
	if err != nil {
		return nil, fmt.Errorf("balance locks length: %w", err)
	}
	locks := make([]types.BalanceLock, 0, n)
	for i := 0; i < n; i++ {
		var id [8]byte
		if err := d.Read(id[:]); err != nil {
			return nil, fmt.Errorf("balance lock %d id: %w", i, err)
		}
		amount, err := d.u128()
		if err != nil {
			return nil, fmt.Errorf("balance lock %d amount: %w", i, err)
		}
		reasons, err := d.u8()
		if err != nil {
			return nil, fmt.Errorf("balance lock %d reasons: %w", i, err)
		}
		locks = append(locks, types.BalanceLock{
			ID:      strings.TrimRight(string(id[:]), "\x00"),
			Amount:  amount,
			Reasons: reasons,
		})
	}
	return locks, nil
}
