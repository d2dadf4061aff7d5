package leads

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"homeloans_backend/internal/adapters/storage"
	"homeloans_backend/internal/events"
	"homeloans_backend/internal/leads/repository"
	"homeloans_backend/internal/qualification"
	"homeloans_backend/platform/apperr"
	"homeloans_backend/platform/logger"
)

// Store is the persistence the service needs.
type Store interface {
	Save(ctx context.Context, sessionID string, record qualification.LeadRecord, result qualification.Result) (repository.Lead, error)
	ListAll(ctx context.Context) ([]repository.Lead, error)
	Aggregate(ctx context.Context) (repository.Stats, error)
}

// Service records completed qualifications and serves the admin views.
type Service struct {
	store   Store
	bus     events.Bus
	storage storage.StorageService
	bucket  string
	log     *logger.Logger
	now     func() time.Time
}

func NewService(store Store, bus events.Bus, log *logger.Logger) *Service {
	return &Service{store: store, bus: bus, log: log, now: time.Now}
}

// SetArchiveStorage enables CSV archiving to object storage.
func (s *Service) SetArchiveStorage(svc storage.StorageService, bucket string) {
	s.storage = svc
	s.bucket = bucket
}

// Record stores a completed qualification and publishes LeadQualified.
func (s *Service) Record(ctx context.Context, sessionID string, record qualification.LeadRecord, result qualification.Result) (repository.Lead, error) {
	lead, err := s.store.Save(ctx, sessionID, record, result)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("save lead", err)
		return repository.Lead{}, fmt.Errorf("save lead: %w", err)
	}
	s.log.WithContext(ctx).LeadQualified(sessionID, lead.LeadScore, result.HasEstimate)

	s.bus.Publish(ctx, events.LeadQualified{
		BaseEvent:        events.NewBaseEvent(),
		LeadID:           lead.ID,
		SessionID:        lead.SessionID,
		LeadScore:        lead.LeadScore,
		AnnualIncome:     lead.AnnualIncome,
		DownPayment:      lead.DownPayment,
		CreditScore:      lead.CreditScore,
		Timeline:         lead.Timeline,
		MaxMortgage:      result.Estimate.MaxMortgage,
		MaxPropertyValue: result.Estimate.MaxPropertyValue,
		MonthlyPayment:   result.Estimate.MonthlyPayment,
		CreatedAt:        lead.CreatedAt,
	})
	return lead, nil
}

// List returns all leads, newest first.
func (s *Service) List(ctx context.Context) ([]repository.Lead, error) {
	items, err := s.store.ListAll(ctx)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("list leads", err)
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to load leads", err)
	}
	return items, nil
}

// Stats returns the dashboard counters with every tier present.
func (s *Service) Stats(ctx context.Context) (repository.Stats, error) {
	stats, err := s.store.Aggregate(ctx)
	if err != nil {
		s.log.WithContext(ctx).DatabaseError("aggregate leads", err)
		return repository.Stats{}, apperr.Wrap(apperr.KindInternal, "Failed to load lead stats", err)
	}

	byTier := make(map[string]int, 3)
	for _, tier := range []qualification.Tier{qualification.TierHot, qualification.TierWarm, qualification.TierCold} {
		byTier[string(tier)] = stats.ByTier[string(tier)]
	}
	stats.ByTier = byTier
	return stats, nil
}

// Archive renders the CSV export, uploads it and returns a download link.
func (s *Service) Archive(ctx context.Context) (*storage.PresignedURL, error) {
	if s.storage == nil {
		return nil, apperr.Unavailable("Export archive is not configured", nil)
	}

	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	data, err := RenderCSV(items)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to render export", err)
	}

	fileName := "leads-" + s.now().UTC().Format("20060102-150405") + ".csv"
	key, err := s.storage.UploadFile(ctx, s.bucket, "exports", fileName, csvContentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		s.log.WithContext(ctx).UpstreamError("object storage", err)
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to archive export", err)
	}

	url, err := s.storage.GenerateDownloadURL(ctx, s.bucket, key)
	if err != nil {
		s.log.WithContext(ctx).UpstreamError("object storage", err)
		return nil, apperr.Wrap(apperr.KindInternal, "Failed to sign export link", err)
	}
	return url, nil
}
