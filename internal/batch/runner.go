package batch

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/prospect-cli/internal/enrich"
	"github.com/sells-group/prospect-cli/internal/model"
)

// EnrichFunc enriches one request.
type EnrichFunc func(ctx context.Context, req enrich.Request) (*model.EnrichmentResult, error)

// Report summarizes a batch run. Results keep input order; failed rows are
// absent.
type Report struct {
	Results   []*model.EnrichmentResult
	Succeeded int64
	Failed    int64
}

// Run enriches reqs with at most concurrency in flight. A failing row is
// logged and counted; it never aborts the batch. limit > 0 caps the number
// of rows processed.
func Run(ctx context.Context, reqs []enrich.Request, limit, concurrency int, fn EnrichFunc) *Report {
	if limit > 0 && len(reqs) > limit {
		reqs = reqs[:limit]
	}
	if concurrency < 1 {
		concurrency = 1
	}

	zap.L().Info("batch: processing",
		zap.Int("rows", len(reqs)),
		zap.Int("concurrency", concurrency),
	)

	slots := make([]*model.EnrichmentResult, len(reqs))
	var succeeded, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			log := zap.L().With(zap.String("stable_id", req.Identity.StableID))
			if gctx.Err() != nil {
				failed.Add(1)
				log.Warn("batch: skipped, context done", zap.Error(gctx.Err()))
				return nil
			}

			result, err := fn(gctx, req)
			if err != nil {
				failed.Add(1)
				log.Error("batch: enrichment failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			succeeded.Add(1)
			slots[i] = result
			log.Info("batch: enrichment complete",
				zap.String("domain", result.Domain),
				zap.Int("contacts", len(result.Contacts)),
			)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Succeeded: succeeded.Load(), Failed: failed.Load()}
	for _, r := range slots {
		if r != nil {
			report.Results = append(report.Results, r)
		}
	}

	zap.L().Info("batch: complete",
		zap.Int("total", len(reqs)),
		zap.Int64("succeeded", report.Succeeded),
		zap.Int64("failed", report.Failed),
	)
	return report
}
