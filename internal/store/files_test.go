package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/erazemk/proofpal/internal/db"
	"github.com/erazemk/proofpal/internal/model"
)

func testFile(path string, uploadedAt time.Time) model.File {
	return model.File{
		Path:       path,
		MIME:       "application/pdf",
		Size:       1234,
		Checksum:   "deadbeef",
		UploadedAt: uploadedAt,
	}
}

func TestAddAndListFiles(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, testInput("Laptop", "2024-01-01"))

	base := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	second, err := AddFile(ctx, database, item.ID, testFile("/archive/1/bbbb.pdf", base.Add(time.Hour)))
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	first, err := AddFile(ctx, database, item.ID, testFile("/archive/1/aaaa.pdf", base))
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if second.ID == 0 || second.ItemID != item.ID {
		t.Errorf("expected populated ids, got %+v", second)
	}

	// Upload order, not insertion order.
	files, err := ListFiles(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("ListFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d", len(files))
	}
	if files[0].ID != first.ID || files[1].ID != second.ID {
		t.Errorf("expected oldest upload first, got %d then %d", files[0].ID, files[1].ID)
	}
}

func TestDeleteFile(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, testInput("Laptop", "2024-01-01"))
	file, _ := AddFile(ctx, database, item.ID, testFile("/archive/1/aaaa.pdf", time.Now().UTC()))

	if err := DeleteFile(ctx, database, file.ID); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	if _, err := GetFile(ctx, database, file.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := DeleteFile(ctx, database, file.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestCountFilesByPath(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, testInput("Laptop", "2024-01-01"))

	// Two imports of identical bytes share one stored path.
	shared := "/archive/1/cafe.pdf"
	AddFile(ctx, database, item.ID, testFile(shared, time.Now().UTC()))
	kept, _ := AddFile(ctx, database, item.ID, testFile(shared, time.Now().UTC()))

	n, err := CountFilesByPath(ctx, database, shared)
	if err != nil {
		t.Fatalf("CountFilesByPath: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 references, got %d", n)
	}

	DeleteFile(ctx, database, kept.ID)
	n, _ = CountFilesByPath(ctx, database, shared)
	if n != 1 {
		t.Errorf("expected 1 reference left, got %d", n)
	}
}
