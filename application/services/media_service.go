package services

import (
	"context"
	"fmt"
	"path"
	"strings"

	"go.uber.org/zap"

	"linkpage-backend/application/ports"
	apperrors "linkpage-backend/pkg/errors"
	"linkpage-backend/pkg/utils"
)

// UploadTicket is what a client needs to upload an image: a one-shot
// pre-signed write URL and the public URL the object will be readable at.
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	ImageURL  string `json:"imageUrl"`
}

// MediaService issues direct-upload tickets. Bytes never pass through the
// backend; objects land under the owner's prefix so keys cannot collide
// across subjects.
type MediaService struct {
	blobs  ports.BlobStore
	logger *zap.Logger
}

// NewMediaService creates a new media service
func NewMediaService(blobs ports.BlobStore, logger *zap.Logger) *MediaService {
	return &MediaService{
		blobs:  blobs,
		logger: logger,
	}
}

// IssueUploadTicket returns a pre-signed upload URL for the given file. The
// millisecond timestamp in the key keeps repeated uploads of the same file
// name from overwriting each other.
func (s *MediaService) IssueUploadTicket(ctx context.Context, subjectID, fileName, contentType string) (*UploadTicket, error) {
	fileName = sanitizeFileName(fileName)
	if fileName == "" {
		return nil, apperrors.NewValidationError("file name is required")
	}
	if contentType == "" {
		return nil, apperrors.NewValidationError("content type is required")
	}

	key := fmt.Sprintf("uploads/%s/%d-%s", subjectID, utils.NowMillis(), fileName)
	uploadURL, err := s.blobs.IssueUploadURL(ctx, key, contentType)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("upload ticket issued",
		zap.String("subjectID", subjectID),
		zap.String("key", key))
	return &UploadTicket{
		UploadURL: uploadURL,
		ImageURL:  s.blobs.PublicURL(key),
	}, nil
}

// sanitizeFileName strips any path components so the key stays under the
// owner's prefix
func sanitizeFileName(fileName string) string {
	fileName = path.Base(strings.ReplaceAll(fileName, "\\", "/"))
	if fileName == "." || fileName == "/" {
		return ""
	}
	return fileName
}
