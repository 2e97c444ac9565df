// Package objstore issues time-boxed presigned URLs against an S3-compatible
// object store. File bytes never pass through this process: clients PUT
// directly to the upload URL and GET directly from the download URL.
//
// Permanent public URLs (path-style, "https://<endpoint>/<bucket>/<key>") are
// what gets stored in the database. Direct public reads are not assumed —
// every display path re-derives a temporary signed URL from the stored one,
// so bucket access policy stays decoupled from the data model.
package objstore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/ghuser/capsule/pkg/config"
)

// Grant lifetimes. Uploads get a short window; display reads a longer one.
// Suggestion-internal reads are shortest since the URL is consumed immediately.
const (
	UploadGrantTTL   = 10 * time.Minute
	DownloadGrantTTL = time.Hour
	SuggestGrantTTL  = 5 * time.Minute
)

// ErrForeignURL is returned when a stored URL does not point into the
// configured bucket. Use errors.Is() to check.
var ErrForeignURL = errors.New("image URL does not belong to the configured store")

// UploadGrant is a write-capable presigned URL plus the permanent URL the
// caller should store once the upload completes.
type UploadGrant struct {
	UploadURL string
	PublicURL string
	Key       string
}

// Store issues presigned upload and download grants for a single bucket.
type Store struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
}

// New creates a Store from config. Connectivity is not verified here;
// presign operations are purely local signature computations.
func New(cfg *config.Config) (*Store, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, fmt.Errorf("objstore: create client: %w", err)
	}
	return &Store{
		client:   client,
		bucket:   cfg.S3Bucket,
		endpoint: cfg.S3Endpoint,
		useSSL:   cfg.S3UseSSL,
	}, nil
}

// PresignUpload generates a fresh random object key with the given extension
// and returns a PUT URL valid for UploadGrantTTL plus the permanent URL.
func (s *Store) PresignUpload(ctx context.Context, contentType, fileExtension string) (*UploadGrant, error) {
	key, err := newObjectKey(fileExtension)
	if err != nil {
		return nil, err
	}

	// Content type is pinned into the signature so the client cannot upload
	// under a different one.
	u, err := s.client.PresignHeader(ctx, http.MethodPut, s.bucket, key, UploadGrantTTL,
		url.Values{}, http.Header{"Content-Type": {contentType}})
	if err != nil {
		return nil, fmt.Errorf("objstore: presign upload: %w", err)
	}

	return &UploadGrant{
		UploadURL: u.String(),
		PublicURL: s.PublicURL(key),
		Key:       key,
	}, nil
}

// PresignDownload parses the object key out of a stored permanent URL and
// returns a GET URL valid for ttl. Returns ErrForeignURL if the input does
// not point into the configured bucket.
func (s *Store) PresignDownload(ctx context.Context, storedURL string, ttl time.Duration) (string, error) {
	key, err := s.ParseKey(storedURL)
	if err != nil {
		return "", err
	}

	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, ttl, url.Values{})
	if err != nil {
		return "", fmt.Errorf("objstore: presign download: %w", err)
	}
	return u.String(), nil
}

// Ping verifies the configured bucket is reachable. Satisfies the health
// checker interface used by the /health endpoint.
func (s *Store) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("objstore: ping: %w", err)
	}
	if !exists {
		return fmt.Errorf("objstore: bucket %q does not exist", s.bucket)
	}
	return nil
}

// PublicURL returns the permanent path-style URL for key. This is the form
// persisted in the database.
func (s *Store) PublicURL(key string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}

// ParseKey extracts the object key from a stored permanent URL and verifies
// the URL belongs to the configured endpoint and bucket.
func (s *Store) ParseKey(storedURL string) (string, error) {
	u, err := url.Parse(storedURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: %q", ErrForeignURL, storedURL)
	}
	if u.Host != s.endpoint {
		return "", fmt.Errorf("%w: host %q", ErrForeignURL, u.Host)
	}

	path := strings.TrimPrefix(u.Path, "/")
	bucket, key, found := strings.Cut(path, "/")
	if !found || bucket != s.bucket || key == "" {
		return "", fmt.Errorf("%w: path %q", ErrForeignURL, u.Path)
	}
	return key, nil
}

// newObjectKey returns "<64 hex chars>.<ext>" from 32 random bytes.
func newObjectKey(fileExtension string) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("objstore: generate key: %w", err)
	}
	return hex.EncodeToString(b) + "." + strings.TrimPrefix(fileExtension, "."), nil
}
