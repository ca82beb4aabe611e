package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/erazemk/proofpal/internal/archive"
	"github.com/erazemk/proofpal/internal/db"
	"github.com/erazemk/proofpal/internal/model"
	"github.com/erazemk/proofpal/internal/store"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0.00 €"},
		{25.5, "25.50 €"},
		{999.99, "999.99 €"},
		{1234.56, "1 234.56 €"},
		{1234567.8, "1 234 567.80 €"},
		{-1234.5, "-1 234.50 €"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.in); got != tc.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBuildAndRenderDossier(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := store.CreateItem(ctx, database, model.ItemInput{
		Title:         "Laptop",
		Store:         "Fnac",
		Category:      "Electronics",
		PurchaseDate:  date("2024-01-01"),
		TotalAmount:   1234.56,
		ReturnUntil:   date("2024-01-15"),
		WarrantyUntil: date("2026-01-01"),
		Notes:         "extended warranty sticker on the box",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// One previewable image attachment and one opaque binary.
	arch := archive.New(t.TempDir())
	img := image.NewRGBA(image.Rect(0, 0, 40, 40))
	for x := 0; x < 40; x++ {
		for y := 0; y < 40; y++ {
			img.Set(x, y, color.RGBA{0, 128, 0, 255})
		}
	}
	var buf bytes.Buffer
	png.Encode(&buf, img)
	photoSrc := filepath.Join(t.TempDir(), "photo.png")
	os.WriteFile(photoSrc, buf.Bytes(), 0o644)
	binSrc := filepath.Join(t.TempDir(), "invoice.pdf")
	os.WriteFile(binSrc, []byte("%PDF-1.4 fake"), 0o644)

	for _, src := range []string{photoSrc, binSrc} {
		desc, err := arch.CopyFileToItem(src, item.ID)
		if err != nil {
			t.Fatalf("CopyFileToItem: %v", err)
		}
		if _, err := store.AddFile(ctx, database, item.ID, *desc); err != nil {
			t.Fatalf("AddFile: %v", err)
		}
	}

	dossier, err := Build(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(dossier.Attachments) != 2 {
		t.Fatalf("expected 2 attachments, got %d", len(dossier.Attachments))
	}

	var withPreview, withoutPreview int
	for _, att := range dossier.Attachments {
		if att.Thumbnail != "" {
			withPreview++
		} else {
			withoutPreview++
		}
	}
	if withPreview != 1 || withoutPreview != 1 {
		t.Errorf("expected one preview and one caption-only attachment, got %d/%d", withPreview, withoutPreview)
	}

	var out bytes.Buffer
	if err := dossier.WriteHTML(&out); err != nil {
		t.Fatalf("WriteHTML: %v", err)
	}
	html := out.String()

	for _, want := range []string{
		"Purchase dossier",
		"Laptop",
		"Fnac",
		"Electronics",
		"2024-01-01",
		"1 234.56 €",
		"2024-01-15",
		"2026-01-01",
		"extended warranty sticker",
		"data:image/jpeg;base64,",
		"Generated ",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered dossier missing %q", want)
		}
	}
}

func TestBuildMissingItem(t *testing.T) {
	database := db.NewTestDB(t)

	_, err := Build(context.Background(), database, 42)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := store.CreateItem(ctx, database, model.ItemInput{
		Title:         "Desk",
		Store:         "Ikea",
		Category:      "Furniture",
		PurchaseDate:  date("2024-02-01"),
		TotalAmount:   89,
		ReturnUntil:   date("2024-03-01"),
		WarrantyUntil: date("2026-02-01"),
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	dossier, err := Build(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "exports", "dossier.html")
	if err := dossier.WriteFile(dest); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := os.Stat(dest); err != nil {
		t.Errorf("expected dossier file: %v", err)
	}
}
