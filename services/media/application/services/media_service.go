package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/capsule/pkg/cache"
	"github.com/ghuser/capsule/pkg/logger"
	"github.com/ghuser/capsule/pkg/objstore"
)

// MediaService issues presigned grants against the object store. Download
// grants are cached in Redis below their signature expiry so repeated list
// renders of the same wardrobe do not re-sign every image.
type MediaService struct {
	store  *objstore.Store
	grants *cache.GrantCache
	log    logger.Logger
}

// NewMediaService wires a MediaService from the object store and grant cache.
func NewMediaService(store *objstore.Store, grants *cache.GrantCache, log logger.Logger) *MediaService {
	return &MediaService{store: store, grants: grants, log: log}
}

// PresignUpload issues a short-lived PUT grant for a new object with the
// given content type and file extension.
func (s *MediaService) PresignUpload(ctx context.Context, contentType, fileExtension string) (*objstore.UploadGrant, error) {
	grant, err := s.store.PresignUpload(ctx, contentType, fileExtension)
	if err != nil {
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return grant, nil
}

// PresignDownload resolves a stored permanent URL to a temporary signed GET
// URL, consulting the grant cache first. Cache failures degrade to a fresh
// signature rather than an error.
func (s *MediaService) PresignDownload(ctx context.Context, storedURL string) (string, error) {
	key, err := s.store.ParseKey(storedURL)
	if err != nil {
		return "", err
	}

	cached, err := s.grants.Get(ctx, key)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, redis.Nil) {
		s.log.WarnContext(ctx, "grant cache read failed, signing fresh", "error", err, "key", key)
	}

	signed, err := s.store.PresignDownload(ctx, storedURL, objstore.DownloadGrantTTL)
	if err != nil {
		return "", fmt.Errorf("presign download: %w", err)
	}

	if err := s.grants.Set(ctx, key, signed); err != nil {
		s.log.WarnContext(ctx, "grant cache write failed", "error", err, "key", key)
	}
	return signed, nil
}
