package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/buzzblog/backend/internal/cache"
	"github.com/buzzblog/backend/internal/db"
	"github.com/buzzblog/backend/internal/errs"
	"github.com/buzzblog/backend/internal/models"
	"github.com/buzzblog/backend/pkg/logging"
	"github.com/buzzblog/backend/pkg/telemetry"
)

// UniquepairService is the relation store: a table of (domain, first,
// second) pairs where each pair exists at most once.
type UniquepairService struct {
	repo   *db.UniquepairRepository
	counts *cache.Cache
	tracer *telemetry.Tracer
	logger *zap.Logger
}

// NewUniquepairService creates the relation store. counts may be nil.
func NewUniquepairService(repo *db.UniquepairRepository, counts *cache.Cache, tracer *telemetry.Tracer) *UniquepairService {
	return &UniquepairService{
		repo:   repo,
		counts: counts,
		tracer: tracer,
		logger: logging.WithComponent("uniquepair"),
	}
}

// Get returns the pair with the given id.
func (s *UniquepairService) Get(ctx context.Context, md models.RequestMetadata, id int64) (pair *models.Uniquepair, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "uniquepair", "get")
	defer span.End(&err)

	pair, err = s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get uniquepair %d: %w", id, err)
	}
	if pair == nil {
		return nil, errs.UniquepairNotFound
	}
	return pair, nil
}

// Add inserts a new pair. It fails with AlreadyExists if the pair is
// present, also when two adds race.
func (s *UniquepairService) Add(ctx context.Context, md models.RequestMetadata, domain string, first, second int64) (pair *models.Uniquepair, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "uniquepair", "add")
	defer span.End(&err)

	if domain == "" {
		return nil, errs.UniquepairInvalidAttributes
	}

	pair = &models.Uniquepair{Domain: domain, FirstElem: first, SecondElem: second}
	if err := s.repo.Create(ctx, pair); err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, errs.UniquepairAlreadyExists
		}
		return nil, fmt.Errorf("failed to add uniquepair: %w", err)
	}
	s.counts.Invalidate(ctx, pair)

	logging.WithRequest(s.logger, md.ID, md.RequesterID).Debug("Pair added",
		zap.String("domain", domain),
		zap.Int64("id", pair.ID),
	)
	return pair, nil
}

// Remove deletes the pair with the given id.
func (s *UniquepairService) Remove(ctx context.Context, md models.RequestMetadata, id int64) (err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "uniquepair", "remove")
	defer span.End(&err)

	pair, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get uniquepair %d: %w", id, err)
	}
	if pair == nil {
		return errs.UniquepairNotFound
	}

	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to remove uniquepair %d: %w", id, err)
	}
	if !removed {
		return errs.UniquepairNotFound
	}
	s.counts.Invalidate(ctx, pair)
	return nil
}

// Find returns the pair (domain, first, second).
func (s *UniquepairService) Find(ctx context.Context, md models.RequestMetadata, domain string, first, second int64) (pair *models.Uniquepair, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "uniquepair", "find")
	defer span.End(&err)

	pair, err = s.repo.Find(ctx, domain, first, second)
	if err != nil {
		return nil, fmt.Errorf("failed to find uniquepair: %w", err)
	}
	if pair == nil {
		return nil, errs.UniquepairNotFound
	}
	return pair, nil
}

// Fetch lists the pairs matching q, newest first. A non-positive limit
// returns every match.
func (s *UniquepairService) Fetch(ctx context.Context, md models.RequestMetadata, q models.UniquepairQuery, limit, offset int) (pairs []*models.Uniquepair, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "uniquepair", "fetch")
	defer span.End(&err)

	pairs, err = s.repo.Fetch(ctx, q, limit, normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch uniquepairs: %w", err)
	}
	if pairs == nil {
		pairs = []*models.Uniquepair{}
	}
	return pairs, nil
}

// Count counts the pairs matching q.
func (s *UniquepairService) Count(ctx context.Context, md models.RequestMetadata, q models.UniquepairQuery) (n int64, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "uniquepair", "count")
	defer span.End(&err)

	cached, gen, ok := s.counts.Count(ctx, q)
	if ok {
		return cached, nil
	}
	n, err = s.repo.Count(ctx, q)
	if err != nil {
		return 0, fmt.Errorf("failed to count uniquepairs: %w", err)
	}
	s.counts.SetCount(ctx, q, gen, n)
	return n, nil
}
