package chain

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lovelaced/polkadot-locks-report/cache"
	"github.com/lovelaced/polkadot-locks-report/interfaces"
	"github.com/lovelaced/polkadot-locks-report/types"
)

type cachedReferendum struct {
	Found      bool
	Referendum types.Referendum
}

// CachedSource wraps a ChainSource and caches referendum info and the chain
// head. Referenda are shared by many accounts of a report run.
type CachedSource struct {
	interfaces.ChainSource

	cache         *cache.LocalCache
	chainName     string
	referendumTTL time.Duration
	headTTL       time.Duration
}

// NewCachedSource returns src decorated with a cache. A zero ttl disables
// caching of the corresponding item.
func NewCachedSource(src interfaces.ChainSource, c *cache.LocalCache, chainName string, referendumTTL, headTTL time.Duration) *CachedSource {
	return &CachedSource{
		ChainSource:   src,
		cache:         c,
		chainName:     chainName,
		referendumTTL: referendumTTL,
		headTTL:       headTTL,
	}
}

// CurrentBlock returns the cached head if it is younger than the head ttl
func (s *CachedSource) CurrentBlock(ctx context.Context) (types.BlockNumber, error) {
	key := fmt.Sprintf("%s:head", s.chainName)
	if s.headTTL > 0 {
		if head, err := s.cache.GetUint64(key); err == nil {
			return types.BlockNumber(head), nil
		}
	}

	head, err := s.ChainSource.CurrentBlock(ctx)
	if err != nil {
		return 0, err
	}
	if s.headTTL > 0 {
		if err := s.cache.SetUint64(key, uint64(head), s.headTTL); err != nil {
			logger.WithError(err).Warn("error caching chain head")
		}
	}
	return head, nil
}

// Referendum returns cached referendum info, including cached misses
func (s *CachedSource) Referendum(ctx context.Context, id types.ReferendumIndex) (*types.Referendum, error) {
	key := fmt.Sprintf("%s:referendum:%d", s.chainName, id)
	if s.referendumTTL > 0 {
		var cached cachedReferendum
		_, err := s.cache.Get(key, &cached)
		if err == nil {
			if !cached.Found {
				return nil, nil
			}
			return &cached.Referendum, nil
		}
		if !errors.Is(err, cache.ErrNotFound) {
			logger.WithError(err).Warnf("error reading referendum #%d from cache", id)
		}
	}

	ref, err := s.ChainSource.Referendum(ctx, id)
	if err != nil {
		return nil, err
	}

	// ongoing referenda change state, only concluded ones are stable
	if s.referendumTTL > 0 && (ref == nil || ref.Status.Concluded()) {
		entry := cachedReferendum{Found: ref != nil}
		if ref != nil {
			entry.Referendum = *ref
		}
		if err := s.cache.Set(key, entry, s.referendumTTL); err != nil {
			logger.WithError(err).Warnf("error caching referendum #%d", id)
		}
	}
	return ref, nil
}
