package services

import (
	"context"
	"fmt"

	"github.com/ghuser/capsule/pkg/objstore"
	"github.com/ghuser/capsule/services/suggest/domain"
)

// GarmentAnalyzer is implemented by the vision infrastructure. Defined here
// so the application layer can be tested without a live model.
type GarmentAnalyzer interface {
	Analyze(ctx context.Context, frontURL, backURL string) (*domain.Suggestion, error)
}

// SuggestService turns stored permanent image URLs into short-lived signed
// URLs the model can fetch, then asks the analyzer for a metadata proposal.
type SuggestService struct {
	store    *objstore.Store
	analyzer GarmentAnalyzer
}

// NewSuggestService wires a SuggestService from the object store and analyzer.
func NewSuggestService(store *objstore.Store, analyzer GarmentAnalyzer) *SuggestService {
	return &SuggestService{store: store, analyzer: analyzer}
}

// AnalyzeItem presigns both stored URLs with the short suggestion TTL and
// runs the analysis. Foreign URLs are rejected before any model call.
func (s *SuggestService) AnalyzeItem(ctx context.Context, storedFrontURL, storedBackURL string) (*domain.Suggestion, error) {
	frontURL, err := s.store.PresignDownload(ctx, storedFrontURL, objstore.SuggestGrantTTL)
	if err != nil {
		return nil, fmt.Errorf("presign front image: %w", err)
	}
	backURL, err := s.store.PresignDownload(ctx, storedBackURL, objstore.SuggestGrantTTL)
	if err != nil {
		return nil, fmt.Errorf("presign back image: %w", err)
	}

	suggestion, err := s.analyzer.Analyze(ctx, frontURL, backURL)
	if err != nil {
		return nil, fmt.Errorf("analyze item: %w", err)
	}
	return suggestion, nil
}
