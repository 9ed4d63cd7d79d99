package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/steelcraft/erp-api/internal/api/metrics"
	"github.com/steelcraft/erp-api/internal/core/domain"
	"github.com/steelcraft/erp-api/internal/core/ports"
)

// Sequencer allocates monotonically increasing enquiry sequence numbers.
// Implementations must be safe under concurrent allocation.
type Sequencer interface {
	Next(ctx context.Context) (int64, error)
}

// EnquiryService implements the enquiry lifecycle use-cases.
type EnquiryService struct {
	repo ports.EnquiryRepository
	seq  Sequencer
	log  zerolog.Logger
}

func NewEnquiryService(repo ports.EnquiryRepository, seq Sequencer, log zerolog.Logger) *EnquiryService {
	return &EnquiryService{repo: repo, seq: seq, log: log}
}

// Create persists a public enquiry submission with a sequential display id
// and status Open.
func (s *EnquiryService) Create(ctx context.Context, in ports.CreateEnquiryInput) (*domain.Enquiry, error) {
	if in.Customer == "" || in.ContactPerson == "" || in.Email == "" ||
		in.Phone == "" || in.Product == "" || in.Quantity <= 0 {
		return nil, domain.ErrInvalidEnquiry
	}

	seq, err := s.nextSequence(ctx)
	if err != nil {
		return nil, err
	}

	enquiry := &domain.Enquiry{
		EnquiryID:          domain.FormatEnquiryID(seq),
		Customer:           in.Customer,
		ContactPerson:      in.ContactPerson,
		Email:              in.Email,
		Phone:              in.Phone,
		Address:            in.Address,
		City:               in.City,
		State:              in.State,
		PostalCode:         in.PostalCode,
		Country:            in.Country,
		Product:            in.Product,
		Quantity:           in.Quantity,
		Specifications:     in.Specifications,
		DrawingRef:         in.DrawingRef,
		ExpectedDelivery:   in.ExpectedDelivery,
		Timeline:           in.Timeline,
		Budget:             in.Budget,
		MaterialPreference: in.MaterialPreference,
		Notes:              in.Notes,
		Status:             domain.StatusOpen,
		CreatedAt:          time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, enquiry)
	if err != nil {
		s.log.Error().Err(err).Str("enquiry_id", enquiry.EnquiryID).Msg("failed to create enquiry")
		return nil, err
	}

	metrics.EnquiriesCreatedTotal.Inc()
	s.log.Info().Str("enquiry_id", created.EnquiryID).Str("customer", created.Customer).Msg("enquiry created")
	return created, nil
}

// nextSequence returns the next display-id sequence number from the atomic
// allocator, falling back to a count+1 snapshot when the allocator is down.
// The fallback can race under concurrent submissions and is only a
// best-effort degradation.
func (s *EnquiryService) nextSequence(ctx context.Context) (int64, error) {
	n, err := s.seq.Next(ctx)
	if err == nil {
		return n, nil
	}

	s.log.Warn().Err(err).Msg("sequence allocator unavailable, falling back to collection count")
	metrics.SequenceFallbacksTotal.Inc()

	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}

// List returns all enquiries, most recently created first.
func (s *EnquiryService) List(ctx context.Context) ([]*domain.Enquiry, error) {
	return s.repo.List(ctx)
}

func (s *EnquiryService) GetByID(ctx context.Context, id string) (*domain.Enquiry, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *EnquiryService) GetByEnquiryID(ctx context.Context, enquiryID string) (*domain.Enquiry, error) {
	return s.repo.FindByEnquiryID(ctx, enquiryID)
}

// UpdateStatus overwrites the status and/or notes of an enquiry. Absent
// fields keep their stored values. Status strings are stored verbatim; there
// is deliberately no membership check against the declared set.
func (s *EnquiryService) UpdateStatus(ctx context.Context, id string, in ports.UpdateEnquiryInput) (*domain.Enquiry, error) {
	upd := ports.EnquiryUpdate{Notes: in.Notes}
	if in.Status != nil {
		status := domain.EnquiryStatus(*in.Status)
		if !domain.IsKnownStatus(status) {
			s.log.Warn().Str("id", id).Str("status", *in.Status).Msg("storing status outside the declared set")
		}
		upd.Status = &status
	}

	if upd.Status == nil && upd.Notes == nil {
		return s.repo.FindByID(ctx, id)
	}

	return s.repo.Update(ctx, id, upd)
}

// Delete removes an enquiry. Deleting an absent id yields
// domain.ErrEnquiryNotFound, so repeated deletes look identical to callers.
func (s *EnquiryService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("enquiry deleted")
	return nil
}
