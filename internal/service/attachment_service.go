package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/liftworks/service-api/internal/domain"
	"github.com/liftworks/service-api/internal/repository"
	"github.com/liftworks/service-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AttachmentService stores uploaded files (visit photos, signed reports)
// behind the storage backend and keeps their metadata in the database.
type AttachmentService struct {
	attachmentRepo *repository.AttachmentRepository
	store          storage.Storage
	logger         *zap.Logger
}

// NewAttachmentService creates a new attachment service
func NewAttachmentService(
	attachmentRepo *repository.AttachmentRepository,
	store storage.Storage,
	logger *zap.Logger,
) *AttachmentService {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		store:          store,
		logger:         logger,
	}
}

// Upload streams a file into storage and records its metadata.
func (s *AttachmentService) Upload(ctx context.Context, filename, contentType string, data io.Reader, uploadedBy *uuid.UUID) (*domain.Attachment, error) {
	path, size, err := s.store.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}

	attachment := &domain.Attachment{
		OriginalName: filename,
		ContentType:  contentType,
		SizeBytes:    size,
		StoragePath:  path,
		UploadedByID: uploadedBy,
	}
	if err := s.attachmentRepo.Create(ctx, attachment); err != nil {
		// Best effort cleanup of the orphaned blob.
		if delErr := s.store.Delete(ctx, path); delErr != nil {
			s.logger.Warn("failed to delete orphaned upload",
				zap.String("path", path), zap.Error(delErr))
		}
		return nil, fmt.Errorf("record attachment: %w", err)
	}

	s.logger.Info("attachment uploaded",
		zap.String("attachmentID", attachment.ID.String()),
		zap.String("filename", filename),
		zap.Int64("sizeBytes", size))
	return attachment, nil
}

// Download returns the attachment metadata and a reader over its bytes.
// The caller closes the reader.
func (s *AttachmentService) Download(ctx context.Context, id uuid.UUID) (*domain.Attachment, io.ReadCloser, error) {
	attachment, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("get attachment: %w", err)
	}

	reader, err := s.store.Download(ctx, attachment.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("download file: %w", err)
	}
	return attachment, reader, nil
}

// Delete removes an attachment and its stored bytes.
func (s *AttachmentService) Delete(ctx context.Context, id uuid.UUID) error {
	attachment, err := s.attachmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("get attachment: %w", err)
	}

	if err := s.store.Delete(ctx, attachment.StoragePath); err != nil {
		return fmt.Errorf("delete file: %w", err)
	}
	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete attachment record: %w", err)
	}
	return nil
}
