package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	calcdomain "github.com/propworks/rendition/internal/calculation/domain"
	"github.com/propworks/rendition/internal/jurisdiction"
	"github.com/propworks/rendition/internal/observability/metrics"
	"github.com/propworks/rendition/internal/override"
	overridedomain "github.com/propworks/rendition/internal/override/domain"
	renditiondomain "github.com/propworks/rendition/internal/rendition/domain"
	"github.com/propworks/rendition/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Calculator calcdomain.Calculator
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	calculator calcdomain.Calculator
	metrics    *metrics.Metrics
}

func NewService(p ServiceParam) renditiondomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("rendition.service"),
		genID:      p.GenID,
		calculator: p.Calculator,
		metrics:    p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req renditiondomain.CreateRequest) (*renditiondomain.Rendition, error) {
	if req.LocationID == 0 || req.TaxYear < 1900 {
		return nil, renditiondomain.ErrInvalidRequest
	}

	code, err := jurisdiction.Resolve(req.State)
	if err != nil {
		return nil, err
	}

	ownerJSON, err := json.Marshal(req.Owner)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rendition := renditiondomain.Rendition{
		ID:              s.genID.Generate(),
		FirmID:          req.FirmID,
		LocationID:      req.LocationID,
		TaxYear:         req.TaxYear,
		Jurisdiction:    code,
		SubJurisdiction: req.County,
		Status:          renditiondomain.StatusDraft,
		Owner:           datatypes.JSON(ownerJSON),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.db.WithContext(ctx).Create(&rendition).Error; err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, renditiondomain.ErrAlreadyExists
		}
		return nil, err
	}
	return &rendition, nil
}

func (s *Service) GetByID(ctx context.Context, id snowflake.ID) (*renditiondomain.Rendition, error) {
	var rendition renditiondomain.Rendition
	err := s.db.WithContext(ctx).First(&rendition, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, renditiondomain.ErrNotFound
		}
		return nil, err
	}
	return &rendition, nil
}

func (s *Service) Recalculate(ctx context.Context, id snowflake.ID) (*renditiondomain.Rendition, error) {
	rendition, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rendition.Mutable() {
		return nil, renditiondomain.ErrAlreadyFiled
	}

	result, err := s.calculator.CalculateForLocation(ctx, rendition.LocationID, rendition.TaxYear, rendition.Jurisdiction)
	if err != nil {
		return nil, err
	}

	// Any stored overrides must still be valid against the fresh result
	// before it is accepted; a stale override naming a removed asset is
	// dropped rather than blocking recalculation.
	overrides, err := rendition.DecodeOverrides()
	if err != nil {
		return nil, err
	}
	pruned := pruneUnknown(overrides, result)

	encoded, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	encodedOverrides, err := json.Marshal(pruned)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"calculation":   datatypes.JSON(encoded),
		"overrides":     datatypes.JSON(encodedOverrides),
		"status":        renditiondomain.StatusReady,
		"calculated_at": now,
		"updated_at":    now,
	}
	if err := s.db.WithContext(ctx).Model(&renditiondomain.Rendition{}).
		Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *Service) ApplyOverrides(ctx context.Context, id snowflake.ID, entries overridedomain.Map) (*renditiondomain.Rendition, error) {
	rendition, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rendition.Mutable() {
		s.countOverrideBatch("rejected_filed")
		return nil, renditiondomain.ErrAlreadyFiled
	}

	base, err := rendition.DecodeCalculation()
	if err != nil {
		return nil, err
	}
	existing, err := rendition.DecodeOverrides()
	if err != nil {
		return nil, err
	}

	merged := make(overridedomain.Map, len(existing)+len(entries))
	for assetID, entry := range existing {
		merged[assetID] = entry
	}
	for assetID, entry := range entries {
		merged[assetID] = entry
	}

	// Validates the whole batch against the base result; nothing persists
	// if any entry is rejected.
	if _, err := override.Apply(*base, merged); err != nil {
		s.countOverrideBatch("rejected_invalid")
		return nil, err
	}

	encoded, err := json.Marshal(merged)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&renditiondomain.Rendition{}).
		Where("id = ?", id).Updates(map[string]any{
		"overrides":  datatypes.JSON(encoded),
		"updated_at": time.Now().UTC(),
	}).Error; err != nil {
		return nil, err
	}

	s.countOverrideBatch("applied")
	return s.GetByID(ctx, id)
}

func (s *Service) ClearOverrides(ctx context.Context, id snowflake.ID, assetIDs []string) (*renditiondomain.Rendition, error) {
	rendition, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rendition.Mutable() {
		return nil, renditiondomain.ErrAlreadyFiled
	}

	existing, err := rendition.DecodeOverrides()
	if err != nil {
		return nil, err
	}

	if len(assetIDs) == 0 {
		existing = overridedomain.Map{}
	} else {
		for _, assetID := range assetIDs {
			delete(existing, assetID)
		}
	}

	encoded, err := json.Marshal(existing)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(&renditiondomain.Rendition{}).
		Where("id = ?", id).Updates(map[string]any{
		"overrides":  datatypes.JSON(encoded),
		"updated_at": time.Now().UTC(),
	}).Error; err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *Service) SetExemptionFlags(ctx context.Context, id snowflake.ID, relatedEntity, electNotToFile bool) (*renditiondomain.Rendition, error) {
	rendition, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rendition.Mutable() {
		return nil, renditiondomain.ErrAlreadyFiled
	}

	if err := s.db.WithContext(ctx).Model(&renditiondomain.Rendition{}).
		Where("id = ?", id).Updates(map[string]any{
		"related_entity_aggregation": relatedEntity,
		"elect_not_to_file":          electNotToFile,
		"updated_at":                 time.Now().UTC(),
	}).Error; err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

func (s *Service) MarkFiled(ctx context.Context, id snowflake.ID) (*renditiondomain.Rendition, error) {
	rendition, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rendition.Status == renditiondomain.StatusFiled {
		return nil, renditiondomain.ErrAlreadyFiled
	}
	if rendition.Status != renditiondomain.StatusReady {
		return nil, renditiondomain.ErrNotReady
	}

	now := time.Now().UTC()
	if err := s.db.WithContext(ctx).Model(&renditiondomain.Rendition{}).
		Where("id = ? AND status = ?", id, renditiondomain.StatusReady).
		Updates(map[string]any{
			"status":     renditiondomain.StatusFiled,
			"filed_at":   now,
			"updated_at": now,
		}).Error; err != nil {
		return nil, err
	}

	s.log.Info("rendition filed",
		zap.String("rendition_id", id.String()),
		zap.Int("tax_year", rendition.TaxYear),
	)
	return s.GetByID(ctx, id)
}

func (s *Service) Effective(rendition *renditiondomain.Rendition) (calcdomain.CalculationResult, error) {
	base, err := rendition.DecodeCalculation()
	if err != nil {
		return calcdomain.CalculationResult{}, err
	}
	overrides, err := rendition.DecodeOverrides()
	if err != nil {
		return calcdomain.CalculationResult{}, err
	}

	effective, err := override.Apply(*base, overrides)
	if err != nil {
		return calcdomain.CalculationResult{}, err
	}

	if effective.Exemption != nil {
		effective.Exemption.RelatedEntityAggregation = rendition.RelatedEntityAggregation
		effective.Exemption.ElectNotToFile = rendition.ElectNotToFile
	}
	return effective, nil
}

func (s *Service) countOverrideBatch(outcome string) {
	if s.metrics != nil {
		s.metrics.OverrideBatches.WithLabelValues(outcome).Inc()
	}
}

func pruneUnknown(overrides overridedomain.Map, result calcdomain.CalculationResult) overridedomain.Map {
	if len(overrides) == 0 {
		return overridedomain.Map{}
	}
	known := make(map[string]bool, len(result.Assets))
	for _, line := range result.Assets {
		known[line.AssetID.String()] = true
	}
	pruned := make(overridedomain.Map, len(overrides))
	for assetID, entry := range overrides {
		if known[assetID] {
			pruned[assetID] = entry
		}
	}
	return pruned
}
