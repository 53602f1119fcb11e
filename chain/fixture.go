package chain

import (
	"context"
	"fmt"
	"math/big"
	"os"

	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/lovelaced/polkadot-locks-report/utils"
	"gopkg.in/yaml.v2"
)

type fixtureFile struct {
	Head      uint32              `yaml:"head"`
	Referenda []fixtureReferendum `yaml:"referenda"`
	Accounts  []fixtureAccount    `yaml:"accounts"`
}

type fixtureReferendum struct {
	ID              uint32 `yaml:"id"`
	Status          string `yaml:"status"`
	ConclusionBlock uint32 `yaml:"conclusionBlock"`
	SubmittedBlock  uint32 `yaml:"submittedBlock"`
}

type fixtureAccount struct {
	Address     string              `yaml:"address"`
	Votes       []fixtureVote       `yaml:"votes"`
	Delegations []fixtureDelegation `yaml:"delegations"`
	PriorLocks  []fixturePriorLock  `yaml:"priorLocks"`
	Vesting     []fixtureVesting    `yaml:"vesting"`
	Locks       []fixtureLock       `yaml:"locks"`
}

type fixtureVote struct {
	Referendum uint32 `yaml:"referendum"`
	Class      uint16 `yaml:"class"`
	// standard, split or splitAbstain
	Type       string `yaml:"type"`
	Aye        bool   `yaml:"aye"`
	Conviction string `yaml:"conviction"`
	Balance    string `yaml:"balance"`
	AyeBalance string `yaml:"ayeBalance"`
	NayBalance string `yaml:"nayBalance"`
	Abstain    string `yaml:"abstain"`
}

type fixtureDelegation struct {
	Class      uint16 `yaml:"class"`
	Target     string `yaml:"target"`
	Conviction string `yaml:"conviction"`
	Balance    string `yaml:"balance"`
}

type fixturePriorLock struct {
	Class       uint16 `yaml:"class"`
	UnlockBlock uint32 `yaml:"unlockBlock"`
	Balance     string `yaml:"balance"`
}

type fixtureVesting struct {
	Locked        string `yaml:"locked"`
	PerBlock      string `yaml:"perBlock"`
	StartingBlock uint32 `yaml:"startingBlock"`
}

type fixtureLock struct {
	ID      string `yaml:"id"`
	Amount  string `yaml:"amount"`
	Reasons uint8  `yaml:"reasons"`
}

type fixtureState struct {
	voting  types.VotingState
	vesting []types.VestingSchedule
	locks   []types.BalanceLock
}

// FixtureSource serves chain state from a yaml snapshot
type FixtureSource struct {
	head      types.BlockNumber
	referenda map[types.ReferendumIndex]types.Referendum
	accounts  map[types.AccountID]fixtureState
}

// LoadFixture reads a FixtureSource from a yaml file
func LoadFixture(path string) (*FixtureSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading fixture %v: %w", path, err)
	}
	src, err := ParseFixture(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing fixture %v: %w", path, err)
	}
	return src, nil
}

// ParseFixture builds a FixtureSource from yaml
func ParseFixture(data []byte) (*FixtureSource, error) {
	var file fixtureFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, err
	}

	src := &FixtureSource{
		head:      types.BlockNumber(file.Head),
		referenda: make(map[types.ReferendumIndex]types.Referendum, len(file.Referenda)),
		accounts:  make(map[types.AccountID]fixtureState, len(file.Accounts)),
	}

	for _, r := range file.Referenda {
		status, err := types.ParseReferendumStatus(r.Status)
		if err != nil {
			return nil, fmt.Errorf("referendum #%d: %w", r.ID, err)
		}
		src.referenda[types.ReferendumIndex(r.ID)] = types.Referendum{
			ID:              types.ReferendumIndex(r.ID),
			Status:          status,
			ConclusionBlock: types.BlockNumber(r.ConclusionBlock),
			SubmittedBlock:  types.BlockNumber(r.SubmittedBlock),
		}
	}

	for _, a := range file.Accounts {
		_, account, err := utils.DecodeSS58(a.Address)
		if err != nil {
			return nil, err
		}
		state, err := a.state()
		if err != nil {
			return nil, fmt.Errorf("account %v: %w", a.Address, err)
		}
		src.accounts[account] = state
	}

	return src, nil
}

func parseBalance(s string) (*big.Int, error) {
	if s == "" {
		return new(big.Int), nil
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("invalid balance %q", s)
	}
	return v, nil
}

func parseConviction(s string) (types.Conviction, error) {
	if s == "" {
		return types.ConvictionNone, nil
	}
	return types.ParseConviction(s)
}

func (v fixtureVote) ballot() (types.AccountVote, types.Conviction, error) {
	conviction, err := parseConviction(v.Conviction)
	if err != nil {
		return nil, 0, err
	}
	switch v.Type {
	case "", "standard":
		balance, err := parseBalance(v.Balance)
		if err != nil {
			return nil, 0, err
		}
		return types.StandardVote{Aye: v.Aye, Conviction: conviction, Balance: balance}, types.ConvictionNone, nil
	case "split", "splitAbstain":
		aye, err := parseBalance(v.AyeBalance)
		if err != nil {
			return nil, 0, err
		}
		nay, err := parseBalance(v.NayBalance)
		if err != nil {
			return nil, 0, err
		}
		if v.Type == "split" {
			return types.SplitVote{Aye: aye, Nay: nay}, conviction, nil
		}
		abstain, err := parseBalance(v.Abstain)
		if err != nil {
			return nil, 0, err
		}
		return types.SplitAbstainVote{Aye: aye, Nay: nay, Abstain: abstain}, conviction, nil
	}
	return nil, 0, fmt.Errorf("unknown vote type %q", v.Type)
}

func (a fixtureAccount) state() (fixtureState, error) {
	var state fixtureState

	for _, v := range a.Votes {
		ballot, splitConviction, err := v.ballot()
		if err != nil {
			return state, fmt.Errorf("vote on referendum #%d: %w", v.Referendum, err)
		}
		state.voting.Votes = append(state.voting.Votes, types.Vote{
			ReferendumID:    types.ReferendumIndex(v.Referendum),
			Class:           types.ClassID(v.Class),
			Ballot:          ballot,
			SplitConviction: splitConviction,
		})
	}

	for _, d := range a.Delegations {
		_, target, err := utils.DecodeSS58(d.Target)
		if err != nil {
			return state, err
		}
		conviction, err := parseConviction(d.Conviction)
		if err != nil {
			return state, err
		}
		balance, err := parseBalance(d.Balance)
		if err != nil {
			return state, err
		}
		state.voting.Delegations = append(state.voting.Delegations, types.Delegation{
			Class:      types.ClassID(d.Class),
			Target:     target,
			Conviction: conviction,
			Balance:    balance,
		})
	}

	for _, p := range a.PriorLocks {
		balance, err := parseBalance(p.Balance)
		if err != nil {
			return state, err
		}
		state.voting.PriorLocks = append(state.voting.PriorLocks, types.PriorLock{
			Class:       types.ClassID(p.Class),
			UnlockBlock: types.BlockNumber(p.UnlockBlock),
			Balance:     balance,
		})
	}

	for _, v := range a.Vesting {
		locked, err := parseBalance(v.Locked)
		if err != nil {
			return state, err
		}
		perBlock, err := parseBalance(v.PerBlock)
		if err != nil {
			return state, err
		}
		state.vesting = append(state.vesting, types.VestingSchedule{
			Locked:        locked,
			PerBlock:      perBlock,
			StartingBlock: types.BlockNumber(v.StartingBlock),
		})
	}

	for _, l := range a.Locks {
		amount, err := parseBalance(l.Amount)
		if err != nil {
			return state, err
		}
		state.locks = append(state.locks, types.BalanceLock{ID: l.ID, Amount: amount, Reasons: l.Reasons})
	}

	return state, nil
}

// SetHead moves the fixture's chain head
func (s *FixtureSource) SetHead(head types.BlockNumber) {
	s.head = head
}

func (s *FixtureSource) CurrentBlock(ctx context.Context) (types.BlockNumber, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.head, nil
}

func (s *FixtureSource) Voting(ctx context.Context, account types.AccountID) (types.VotingState, error) {
	if err := ctx.Err(); err != nil {
		return types.VotingState{}, err
	}
	return s.accounts[account].voting, nil
}

func (s *FixtureSource) Referendum(ctx context.Context, id types.ReferendumIndex) (*types.Referendum, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ref, ok := s.referenda[id]
	if !ok {
		return nil, nil
	}
	return &ref, nil
}

func (s *FixtureSource) VestingSchedules(ctx context.Context, account types.AccountID) ([]types.VestingSchedule, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.accounts[account].vesting, nil
}

func (s *FixtureSource) BalanceLocks(ctx context.Context, account types.AccountID) ([]types.BalanceLock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.accounts[account].locks, nil
}
