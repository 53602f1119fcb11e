package interfaces

import (
	"context"

	"github.com/lovelaced/polkadot-locks-report/types"
)

type ReportStore interface {
	Close()
	SaveReport(ctx context.Context, report *types.Report) error
	GetLatestAccountReport(ctx context.Context, address string) (*types.AccountReport, error)
}
