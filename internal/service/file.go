package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/rincon/internal/model"
	"github.com/templui/rincon/internal/repository"
	"github.com/templui/rincon/internal/storage"
)

type FileService struct {
	fileRepo repository.FileRepository
	storage  storage.Storage
}

func NewFileService(fileRepo repository.FileRepository, storage storage.Storage) *FileService {
	return &FileService{
		fileRepo: fileRepo,
		storage:  storage,
	}
}

// Upload uploads a file and creates a database record
// Note: File validation (type, size, content) should be done by the caller before calling Upload
func (s *FileService) Upload(ctx context.Context, userID, ownerType, ownerID, fileType string, file multipart.File, header *multipart.FileHeader, isPublic bool) (*model.File, error) {
	// Generate unique filename
	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := fmt.Sprintf("%s%s", uuid.New().String(), ext)

	// Generate storage path with public/private prefix
	prefix := "private"
	if isPublic {
		prefix = "public"
	}
	folderName := fileType + "s" // product-image -> product-images
	storagePath := path.Join(prefix, folderName, filename)

	// Save file to storage
	err := s.storage.Save(ctx, storagePath, file)
	if err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	// Create database record
	fileModel := &model.File{
		ID:           uuid.New().String(),
		UserID:       userID,
		OwnerType:    ownerType,
		OwnerID:      ownerID,
		Type:         fileType,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		StoragePath:  storagePath,
		Public:       isPublic,
		CreatedAt:    time.Now().UTC(),
	}

	err = s.fileRepo.Create(ctx, fileModel)
	if err != nil {
		// If DB insert fails, try to cleanup the uploaded file
		delErr := s.storage.Delete(ctx, storagePath)
		if delErr != nil {
			slog.Error("failed to delete file from storage during cleanup", "error", delErr, "path", storagePath)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return fileModel, nil
}

// FileByType returns the newest file of fileType for an owner.
func (s *FileService) FileByType(ctx context.Context, ownerType, ownerID, fileType string) (*model.File, error) {
	return s.fileRepo.FileByType(ctx, ownerType, ownerID, fileType)
}

// URL returns the appropriate URL for a file (public or presigned)
func (s *FileService) URL(ctx context.Context, file *model.File) string {
	if file == nil {
		return ""
	}
	return s.storage.URL(ctx, file.StoragePath, file.Public)
}

// Delete removes a file from storage and database
func (s *FileService) Delete(ctx context.Context, fileID string) error {
	file, err := s.fileRepo.ByID(ctx, fileID)
	if err != nil {
		return fmt.Errorf("failed to get file: %w", err)
	}

	// Delete from storage (best effort)
	delErr := s.storage.Delete(ctx, file.StoragePath)
	if delErr != nil {
		slog.Error("failed to delete file from storage", "error", delErr, "path", file.StoragePath)
	}

	err = s.fileRepo.Delete(ctx, fileID)
	if err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}

// DeleteOwnerFiles removes every file attached to an owner.
func (s *FileService) DeleteOwnerFiles(ctx context.Context, ownerType, ownerID string) error {
	files, err := s.fileRepo.Files(ctx, ownerType, ownerID)
	if err != nil {
		return fmt.Errorf("failed to get owner files: %w", err)
	}

	for _, file := range files {
		err = s.Delete(ctx, file.ID)
		if err != nil && !errors.Is(err, repository.ErrFileNotFound) {
			return err
		}
	}

	return nil
}
