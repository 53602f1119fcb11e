package chain

import (
	"context"
	"fmt"
	"time"

	gsrpc "github.com/centrifuge/go-substrate-rpc-client/v4"
	gstypes "github.com/centrifuge/go-substrate-rpc-client/v4/types"
	"github.com/centrifuge/go-substrate-rpc-client/v4/types/codec"
	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/sirupsen/logrus"
)

// SubstrateSource reads lock related storage from a substrate node
type SubstrateSource struct {
	api  *gsrpc.SubstrateAPI
	meta *gstypes.Metadata
}

// NewSubstrateSource connects to the node at endpoint and fetches its metadata
func NewSubstrateSource(endpoint string) (*SubstrateSource, error) {
	start := time.Now()
	api, err := gsrpc.NewSubstrateAPI(endpoint)
	if err != nil {
		return nil, fmt.Errorf("error connecting to node %v: %w", endpoint, err)
	}
	meta, err := api.RPC.State.GetMetadataLatest()
	if err != nil {
		api.Client.Close()
		return nil, fmt.Errorf("error retrieving metadata from %v: %w", endpoint, err)
	}
	logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"duration": time.Since(start),
	}).Info("connected to node")

	return &SubstrateSource{api: api, meta: meta}, nil
}

// Close closes the underlying rpc connection
func (s *SubstrateSource) Close() {
	s.api.Client.Close()
}

func (s *SubstrateSource) storage(ctx context.Context, pallet, item string, args ...[]byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key, err := gstypes.CreateStorageKey(s.meta, pallet, item, args...)
	if err != nil {
		return nil, fmt.Errorf("error creating storage key %v.%v: %w", pallet, item, err)
	}
	raw, err := s.api.RPC.State.GetStorageRawLatest(key)
	if err != nil {
		return nil, fmt.Errorf("error reading storage %v.%v: %w", pallet, item, err)
	}
	if raw == nil {
		return nil, nil
	}
	return *raw, nil
}

// CurrentBlock returns the number of the latest finalized block
func (s *SubstrateSource) CurrentBlock(ctx context.Context) (types.BlockNumber, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	hash, err := s.api.RPC.Chain.GetFinalizedHead()
	if err != nil {
		return 0, fmt.Errorf("error retrieving finalized head: %w", err)
	}
	header, err := s.api.RPC.Chain.GetHeader(hash)
	if err != nil {
		return 0, fmt.Errorf("error retrieving header %v: %w", hash.Hex(), err)
	}
	return types.BlockNumber(header.Number), nil
}

// Voting reads the voting state of every class the account holds a lock in
func (s *SubstrateSource) Voting(ctx context.Context, account types.AccountID) (types.VotingState, error) {
	var state types.VotingState

	raw, err := s.storage(ctx, "ConvictionVoting", "ClassLocksFor", account[:])
	if err != nil {
		return state, err
	}
	classes, err := DecodeClassLocks(raw)
	if err != nil {
		return state, fmt.Errorf("error decoding class locks: %w", err)
	}

	for _, class := range classes {
		classArg, err := codec.Encode(gstypes.NewU16(uint16(class)))
		if err != nil {
			return state, err
		}
		raw, err := s.storage(ctx, "ConvictionVoting", "VotingFor", account[:], classArg)
		if err != nil {
			return state, err
		}
		if err := DecodeVoting(raw, class, &state); err != nil {
			return state, fmt.Errorf("error decoding voting for class %d: %w", class, err)
		}
	}

	logger.WithFields(logrus.Fields{
		"account":     account.Hex(),
		"classes":     len(classes),
		"votes":       len(state.Votes),
		"delegations": len(state.Delegations),
	}).Debug("read voting state")
	return state, nil
}

// Referendum reads the info of a referendum, nil if it does not exist
func (s *SubstrateSource) Referendum(ctx context.Context, id types.ReferendumIndex) (*types.Referendum, error) {
	arg, err := codec.Encode(gstypes.NewU32(uint32(id)))
	if err != nil {
		return nil, err
	}
	raw, err := s.storage(ctx, "Referenda", "ReferendumInfoFor", arg)
	if err != nil {
		return nil, err
	}
	return DecodeReferendumInfo(id, raw)
}

// VestingSchedules reads the vesting schedules of an account
func (s *SubstrateSource) VestingSchedules(ctx context.Context, account types.AccountID) ([]types.VestingSchedule, error) {
	raw, err := s.storage(ctx, "Vesting", "Vesting", account[:])
	if err != nil {
		return nil, err
	}
	return DecodeVesting(raw)
}

// BalanceLocks reads the balance locks of an account
func (s *SubstrateSource) BalanceLocks(ctx context.Context, account types.AccountID) ([]types.BalanceLock, error) {
	raw, err := s.storage(ctx, "Balances", "Locks", account[:])
	if err != nil {
		return nil, err
	}
	return DecodeBalanceLocks(raw)
}
