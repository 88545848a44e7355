// Package docgen turns renditions into filing documents: one document per
// rendition, or a batch with a cover sheet. Strategies do the layout; this
// package does selection, concurrency and bookkeeping.
package docgen

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	"github.com/propworks/rendition/internal/config"
	"github.com/propworks/rendition/internal/form"
	formdomain "github.com/propworks/rendition/internal/form/domain"
	"github.com/propworks/rendition/internal/form/strategies"
	"github.com/propworks/rendition/internal/observability/metrics"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
)

type ServiceParam struct {
	fx.In

	Cfg        config.Config
	Log        *zap.Logger
	Renditions renditiondomain.Service
	Resolver   *form.Resolver
	Metrics    *metrics.Metrics `optional:"true"`
}

// Service generates documents from renditions.
type Service struct {
	log        *zap.Logger
	renditions renditiondomain.Service
	resolver   *form.Resolver
	metrics    *metrics.Metrics

	workers int
	timeout time.Duration
}

func NewService(p ServiceParam) *Service {
	workers := p.Cfg.DocumentWorkers
	if workers < 1 {
		workers = 1
	}
	timeout := time.Duration(p.Cfg.DocumentTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Service{
		log:        p.Log.Named("docgen.service"),
		renditions: p.Renditions,
		resolver:   p.Resolver,
		metrics:    p.Metrics,
		workers:    workers,
		timeout:    timeout,
	}
}

// GenerateOne renders the filing document for a single rendition. An
// exempt owner who elected not to file gets the short certification in
// place of the full form.
func (s *Service) GenerateOne(ctx context.Context, id snowflake.ID) (formdomain.Document, error) {
	rendition, err := s.renditions.GetByID(ctx, id)
	if err != nil {
		return formdomain.Document{}, err
	}
	doc, _, err := s.generate(ctx, rendition)
	return doc, err
}

// GenerateSupporting renders the asset detail report for a rendition.
func (s *Service) GenerateSupporting(ctx context.Context, id snowflake.ID) (formdomain.Document, error) {
	rendition, err := s.renditions.GetByID(ctx, id)
	if err != nil {
		return formdomain.Document{}, err
	}
	effective, err := s.renditions.Effective(rendition)
	if err != nil {
		return formdomain.Document{}, err
	}
	owner, err := rendition.DecodeOwner()
	if err != nil {
		return formdomain.Document{}, err
	}
	return s.fill(s.resolver.AssetReport(), owner, effective)
}

// GenerateBatch renders documents for many renditions with a bounded
// worker pool. Per-item failures are captured in the summary; the batch
// never aborts. The returned slice is cover sheet first, then documents in
// request order with failed items absent.
func (s *Service) GenerateBatch(ctx context.Context, ids []snowflake.ID) (formdomain.BatchSummary, []formdomain.Document, error) {
	summary := formdomain.BatchSummary{
		BatchID:     uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Items:       make([]formdomain.BatchItem, len(ids)),
	}
	docs := make([]formdomain.Document, len(ids))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for i, id := range ids {
		wg.Add(1)
		go func(slot int, id snowflake.ID) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			itemCtx, cancel := context.WithTimeout(ctx, s.timeout)
			defer cancel()

			item := formdomain.BatchItem{RenditionID: id.String()}
			rendition, err := s.renditions.GetByID(itemCtx, id)
			if err != nil {
				item.Error = err.Error()
				summary.Items[slot] = item
				return
			}

			doc, effective, err := s.generate(itemCtx, rendition)
			owner, _ := rendition.DecodeOwner()
			item.OwnerName = owner.Name
			item.Jurisdiction = rendition.Jurisdiction
			if err != nil {
				item.Error = err.Error()
				summary.Items[slot] = item
				return
			}

			item.FormName = doc.DisplayName
			item.TotalValue = effective.Totals.DepreciatedValue
			if effective.Exemption != nil {
				item.Exempt = effective.Exemption.IsExempt
				item.NetTaxableValue = effective.Exemption.NetTaxableValue
			} else {
				item.NetTaxableValue = effective.Totals.DepreciatedValue
			}
			summary.Items[slot] = item

			mu.Lock()
			summary.TaxYear = effective.TaxYear
			docs[slot] = doc
			mu.Unlock()
		}(i, id)
	}
	wg.Wait()

	cover, err := strategies.RenderCoverSheet(summary)
	if err != nil {
		return summary, nil, err
	}

	out := make([]formdomain.Document, 0, len(ids)+1)
	out = append(out, cover)
	for i := range docs {
		if summary.Items[i].Error == "" {
			out = append(out, docs[i])
		}
	}

	s.log.Info("document batch generated",
		zap.String("batch_id", summary.BatchID),
		zap.Int("requested", len(ids)),
		zap.Int("generated", summary.Succeeded()),
		zap.Int("failed", summary.Failed()),
	)
	return summary, out, nil
}

func (s *Service) generate(ctx context.Context, rendition *renditiondomain.Rendition) (formdomain.Document, calcdomain.CalculationResult, error) {
	if err := ctx.Err(); err != nil {
		return formdomain.Document{}, calcdomain.CalculationResult{}, err
	}

	effective, err := s.renditions.Effective(rendition)
	if err != nil {
		return formdomain.Document{}, calcdomain.CalculationResult{}, err
	}
	owner, err := rendition.DecodeOwner()
	if err != nil {
		return formdomain.Document{}, calcdomain.CalculationResult{}, err
	}

	var strategy formdomain.Strategy
	if effective.Exemption != nil && effective.Exemption.IsExempt && effective.Exemption.ElectNotToFile {
		strategy = s.resolver.ExemptionCert()
	} else {
		strategy, err = s.resolver.Resolve(rendition.Jurisdiction, rendition.SubJurisdiction, effective.Totals.DepreciatedValue)
		if err != nil {
			return formdomain.Document{}, calcdomain.CalculationResult{}, err
		}
	}

	doc, err := s.fill(strategy, owner, effective)
	return doc, effective, err
}

func (s *Service) fill(strategy formdomain.Strategy, owner renditiondomain.OwnerInfo, result calcdomain.CalculationResult) (formdomain.Document, error) {
	start := time.Now()
	doc, err := strategy.Fill(owner, result)
	if s.metrics != nil {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		s.metrics.Documents.WithLabelValues(strategy.ID(), outcome).Inc()
		s.metrics.DocumentDuration.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		s.log.Error("document generation failed",
			zap.String("strategy", strategy.ID()),
			zap.Error(err),
		)
		return formdomain.Document{}, err
	}
	return doc, nil
}
