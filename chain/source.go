package chain

import (
	"time"

	"github.com/lovelaced/polkadot-locks-report/cache"
	"github.com/lovelaced/polkadot-locks-report/interfaces"
	"github.com/lovelaced/polkadot-locks-report/types"
)

// Open returns the configured chain source decorated with the local cache.
// A fixture path takes precedence over the node endpoint. The returned func
// releases the source.
func Open(cfg *types.Config) (interfaces.ChainSource, func(), error) {
	var src interfaces.ChainSource
	closer := func() {}

	if cfg.Report.FixturePath != "" {
		fixture, err := LoadFixture(cfg.Report.FixturePath)
		if err != nil {
			return nil, nil, err
		}
		logger.WithField("path", cfg.Report.FixturePath).Info("using fixture chain source")
		src = fixture
	} else {
		substrate, err := NewSubstrateSource(cfg.Node.Endpoint)
		if err != nil {
			return nil, nil, err
		}
		src = substrate
		closer = substrate.Close
	}

	if cfg.Cache.SizeBytes <= 0 {
		return src, closer, nil
	}
	cached := NewCachedSource(
		src,
		cache.NewLocalCache(cfg.Cache.SizeBytes),
		cfg.Chain.Name,
		time.Duration(cfg.Cache.ReferendumTTLSeconds)*time.Second,
		time.Duration(cfg.Cache.HeadTTLSeconds)*time.Second,
	)
	return cached, closer, nil
}
