// Package s3 issues pre-signed upload URLs against the media bucket.
package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	apperrors "linkpage-backend/pkg/errors"
)

// Presigner is the subset of the S3 presign client the store uses
type Presigner interface {
	PresignPutObject(ctx context.Context, params *awss3.PutObjectInput, optFns ...func(*awss3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// BlobStore signs direct-upload URLs for the media bucket and maps keys to
// their public CDN URLs. Object bytes never pass through the backend.
type BlobStore struct {
	presigner Presigner
	bucket    string
	cdnDomain string
	expiry    time.Duration
	logger    *zap.Logger
}

// NewBlobStore creates a new S3-backed blob store. cdnDomain is the public
// distribution in front of the bucket; when empty, public URLs point at the
// bucket's virtual-hosted endpoint.
func NewBlobStore(presigner Presigner, bucket, cdnDomain string, expiry time.Duration, logger *zap.Logger) *BlobStore {
	return &BlobStore{
		presigner: presigner,
		bucket:    bucket,
		cdnDomain: cdnDomain,
		expiry:    expiry,
		logger:    logger,
	}
}

// IssueUploadURL returns a pre-signed PUT URL for the given key
func (s *BlobStore) IssueUploadURL(ctx context.Context, key, contentType string) (string, error) {
	req, err := s.presigner.PresignPutObject(ctx, &awss3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, func(opts *awss3.PresignOptions) {
		opts.Expires = s.expiry
	})
	if err != nil {
		s.logger.Error("failed to presign upload", zap.String("key", key), zap.Error(err))
		return "", apperrors.NewStoreUnavailableError("presign upload", err)
	}
	return req.URL, nil
}

// PublicURL returns the public read URL for an object key
func (s *BlobStore) PublicURL(key string) string {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}
