package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/proofpal/internal/model"
)

// AddFile records an attachment descriptor for an item. The descriptor is
// produced by the archive; by the time this runs the bytes are already on
// disk, so every file row has a backing file.
func AddFile(ctx context.Context, db *sql.DB, itemID int64, file model.File) (*model.File, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO files (item_id, path, mime, size, checksum, uploaded_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		itemID, file.Path, file.MIME, file.Size, file.Checksum, file.UploadedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("adding file: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting file id: %w", err)
	}

	if err := LogAction(ctx, tx, model.ActionFileAdded, map[string]any{"item_id": itemID, "path": file.Path}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing file addition: %w", err)
	}

	file.ID = id
	file.ItemID = itemID
	return &file, nil
}

// GetFile returns a file row by ID, or ErrNotFound.
func GetFile(ctx context.Context, db *sql.DB, id int64) (*model.File, error) {
	file := &model.File{}
	err := db.QueryRowContext(ctx,
		`SELECT id, item_id, path, mime, size, checksum, uploaded_at
		 FROM files WHERE id = ?`, id,
	).Scan(&file.ID, &file.ItemID, &file.Path, &file.MIME, &file.Size, &file.Checksum, &file.UploadedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("file %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting file: %w", err)
	}
	return file, nil
}

// ListFiles returns an item's attachments, oldest upload first.
func ListFiles(ctx context.Context, db *sql.DB, itemID int64) ([]model.File, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, item_id, path, mime, size, checksum, uploaded_at
		 FROM files WHERE item_id = ? ORDER BY uploaded_at, id`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", err)
	}
	defer rows.Close()

	var files []model.File
	for rows.Next() {
		var file model.File
		if err := rows.Scan(&file.ID, &file.ItemID, &file.Path, &file.MIME, &file.Size,
			&file.Checksum, &file.UploadedAt); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		files = append(files, file)
	}
	return files, rows.Err()
}

// CountFilesByPath returns how many file rows reference a stored path.
// Deduplicated imports share one path, so the archived bytes must only be
// removed when the last reference goes.
func CountFilesByPath(ctx context.Context, db *sql.DB, path string) (int, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM files WHERE path = ?`, path,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting file references: %w", err)
	}
	return n, nil
}

// DeleteFile removes a file row. The archived bytes are the caller's to
// remove, same as with item deletion.
func DeleteFile(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("file %d: %w", id, ErrNotFound)
	}

	if err := LogAction(ctx, tx, model.ActionFileDeleted, map[string]any{"file_id": id}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing file deletion: %w", err)
	}
	return nil
}
