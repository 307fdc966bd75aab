package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/templui/rincon/internal/model"
)

var (
	ErrFileNotFound = errors.New("file not found")
)

type FileRepository interface {
	Create(ctx context.Context, file *model.File) error
	ByID(ctx context.Context, id string) (*model.File, error)
	FileByType(ctx context.Context, ownerType, ownerID, fileType string) (*model.File, error)
	Files(ctx context.Context, ownerType, ownerID string) ([]*model.File, error)
	Delete(ctx context.Context, id string) error
}

type fileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) FileRepository {
	return &fileRepository{db: db}
}

func (r *fileRepository) Create(ctx context.Context, file *model.File) error {
	query := `INSERT INTO files (id, user_id, owner_type, owner_id, type, filename, original_name, mime_type, size, storage_path, public, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		file.ID,
		file.UserID,
		file.OwnerType,
		file.OwnerID,
		file.Type,
		file.Filename,
		file.OriginalName,
		file.MimeType,
		file.Size,
		file.StoragePath,
		file.Public,
		file.CreatedAt,
	)

	return err
}

func (r *fileRepository) ByID(ctx context.Context, id string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE id = $1`

	err := r.db.GetContext(ctx, file, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFileNotFound
	}

	return file, err
}

func (r *fileRepository) FileByType(ctx context.Context, ownerType, ownerID, fileType string) (*model.File, error) {
	file := &model.File{}
	query := `SELECT * FROM files WHERE owner_type = $1 AND owner_id = $2 AND type = $3 ORDER BY created_at DESC LIMIT 1`

	err := r.db.GetContext(ctx, file, query, ownerType, ownerID, fileType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrFileNotFound
	}

	return file, err
}

func (r *fileRepository) Files(ctx context.Context, ownerType, ownerID string) ([]*model.File, error) {
	var files []*model.File
	query := `SELECT * FROM files WHERE owner_type = $1 AND owner_id = $2 ORDER BY created_at DESC`

	err := r.db.SelectContext(ctx, &files, query, ownerType, ownerID)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *fileRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM files WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return expectRow(result, ErrFileNotFound)
}
