package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/lovelaced/polkadot-locks-report/chain"
	"github.com/lovelaced/polkadot-locks-report/interfaces"
	"github.com/lovelaced/polkadot-locks-report/locks"
	"github.com/lovelaced/polkadot-locks-report/types"
	"github.com/lovelaced/polkadot-locks-report/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/sync/errgroup"
)

var logger = logrus.StandardLogger().WithField("module", "services")

// Run is the computed lock state of a set of accounts at one chain head
type Run struct {
	Head     types.BlockNumber
	Accounts []locks.AccountLocks
}

// Reporter computes account locks from a chain source
type Reporter struct {
	src        interfaces.ChainSource
	params     locks.Params
	ss58Prefix uint16
	workers    int
	metrics    *Metrics
}

// NewReporter returns a Reporter reading from src. metrics may be nil.
func NewReporter(src interfaces.ChainSource, chainConfig types.ChainConfig, workers int, metrics *Metrics) *Reporter {
	if workers < 1 {
		workers = 1
	}
	return &Reporter{
		src:        src,
		params:     locks.ParamsFromChainConfig(chainConfig),
		ss58Prefix: chainConfig.SS58Prefix,
		workers:    workers,
		metrics:    metrics,
	}
}

// LatestBlock returns the chain head, 0 if it cannot be read
func (r *Reporter) LatestBlock(ctx context.Context) types.BlockNumber {
	head, err := r.src.CurrentBlock(ctx)
	if err != nil {
		logger.Errorf("error retrieving latest block: %v", err)
		return 0
	}
	return head
}

// Generate reads the chain head once and computes the locks of every address
// against it. Account level failures are reported in the account's status,
// only reading the head or a cancelled context fail the run.
func (r *Reporter) Generate(ctx context.Context, addresses []string) (*Run, error) {
	start := time.Now()

	head, err := r.src.CurrentBlock(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving chain head: %w", err)
	}

	var mu sync.Mutex
	results := make(map[string]locks.AccountLocks, len(addresses))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, address := range addresses {
		address := address
		mu.Lock()
		_, seen := results[address]
		if !seen {
			results[address] = locks.AccountLocks{Address: address}
		}
		mu.Unlock()
		if seen {
			continue
		}

		g.Go(func() error {
			out, err := r.computeAccount(gctx, address, head)
			if err != nil {
				return err
			}
			mu.Lock()
			results[address] = out
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	keys := maps.Keys(results)
	sort.Strings(keys)
	run := &Run{Head: head, Accounts: make([]locks.AccountLocks, 0, len(keys))}
	for _, k := range keys {
		run.Accounts = append(run.Accounts, results[k])
	}

	r.metrics.observeRun(head)
	logger.WithFields(logrus.Fields{
		"head":     head,
		"accounts": len(run.Accounts),
		"duration": time.Since(start),
	}).Info("generated lock report")

	return run, nil
}

// computeAccount only returns an error when ctx is done
func (r *Reporter) computeAccount(ctx context.Context, address string, head types.BlockNumber) (locks.AccountLocks, error) {
	failed := func(err error) locks.AccountLocks {
		return locks.AccountLocks{
			Address:  address,
			Status:   types.StatusFailed,
			Failures: []locks.RecordFailure{{Err: err}},
		}
	}

	account, err := utils.ParseAddress(address, r.ss58Prefix)
	if err != nil {
		r.metrics.observeAccount(types.StatusFailed, 0)
		return failed(err), nil
	}

	fetchStart := time.Now()
	snapshot, err := chain.FetchAccount(ctx, r.src, account, address)
	fetchSeconds := time.Since(fetchStart).Seconds()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return locks.AccountLocks{}, ctxErr
		}
		utils.LogError(err, "error fetching account state", 0, address)
		r.metrics.observeAccount(types.StatusFailed, fetchSeconds)
		out := failed(err)
		out.Account = account
		return out, nil
	}

	out := r.params.ComputeAccount(snapshot, head)
	if out.Status != types.StatusOK {
		logger.WithFields(logrus.Fields{
			"address":  address,
			"status":   out.Status,
			"failures": len(out.Failures),
		}).Warn("account locks not fully computed")
	}
	r.metrics.observeAccount(out.Status, fetchSeconds)
	return out, nil
}
