// Package export assembles the summary dossier for one item: metadata,
// thumbnailed attachment previews and a generation footer. The dossier is
// rendered as a self-contained HTML document; a PDF layout engine can sit
// behind the same Dossier value.
package export

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/erazemk/proofpal/internal/imaging"
	"github.com/erazemk/proofpal/internal/model"
	"github.com/erazemk/proofpal/internal/store"
)

// Attachment is one file in the dossier's preview gallery.
type Attachment struct {
	Name string
	MIME string
	Size int64
	// Thumbnail is a data: URI for previewable images, empty otherwise.
	Thumbnail template.URL
}

// Dossier is the exported summary of one item and its attachments.
type Dossier struct {
	Item        *model.Item
	Attachments []Attachment
	GeneratedAt time.Time
}

// Build gathers the item, its files and their previews. Attachments whose
// preview cannot be rendered still appear, caption only.
func Build(ctx context.Context, db *sql.DB, itemID int64) (*Dossier, error) {
	item, err := store.GetItem(ctx, db, itemID)
	if err != nil {
		return nil, err
	}
	files, err := store.ListFiles(ctx, db, itemID)
	if err != nil {
		return nil, err
	}

	d := &Dossier{Item: item, GeneratedAt: time.Now()}
	for _, file := range files {
		att := Attachment{
			Name: filepath.Base(file.Path),
			MIME: file.MIME,
			Size: file.Size,
		}
		if imaging.CanPreview(file.MIME) {
			if thumb, err := renderThumbnail(file.Path); err == nil {
				att.Thumbnail = template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(thumb))
			}
		}
		d.Attachments = append(d.Attachments, att)
	}
	return d, nil
}

func renderThumbnail(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening attachment: %w", err)
	}
	defer f.Close()
	return imaging.Thumbnail(f)
}

// WriteHTML renders the dossier document to w.
func (d *Dossier) WriteHTML(w io.Writer) error {
	if err := dossierTmpl.Execute(w, d); err != nil {
		return fmt.Errorf("rendering dossier: %w", err)
	}
	return nil
}

// WriteFile renders the dossier to a file, creating parent directories.
func (d *Dossier) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating dossier file: %w", err)
	}
	if err := d.WriteHTML(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FormatMoney renders an amount as "1 234.56 €", spaces as thousands
// separators.
func FormatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	intPart, frac, _ := strings.Cut(s, ".")

	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}

	out := b.String() + "." + frac + " €"
	if neg {
		out = "-" + out
	}
	return out
}

var dossierTmpl = template.Must(template.New("dossier").Funcs(template.FuncMap{
	"money": FormatMoney,
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Purchase dossier — {{.Item.Title}}</title>
<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2.5rem; color: #1a1a1a; }
h1 { margin-bottom: 0.2rem; }
h2 { border-bottom: 1px solid #1a1a1a; padding-bottom: 0.4rem; }
dl { display: grid; grid-template-columns: 12rem auto; row-gap: 0.4rem; }
dt { font-weight: bold; }
dd { margin: 0; }
.gallery { display: flex; flex-wrap: wrap; gap: 1.5rem; }
.gallery figure { margin: 0; width: 20rem; }
.gallery img { max-width: 100%; border: 1px solid #ccc; }
figcaption { font-size: 0.8rem; color: #555; }
footer { margin-top: 3rem; font-size: 0.75rem; color: #888; }
</style>
</head>
<body>
<h1>Purchase dossier</h1>
<h2>{{.Item.Title}}</h2>
<dl>
<dt>Store</dt><dd>{{.Item.Store}}</dd>
<dt>Category</dt><dd>{{.Item.Category}}</dd>
<dt>Purchased</dt><dd>{{date .Item.PurchaseDate}}</dd>
<dt>Amount</dt><dd>{{money .Item.TotalAmount}}</dd>
<dt>Return until</dt><dd>{{date .Item.ReturnUntil}}</dd>
<dt>Warranty until</dt><dd>{{date .Item.WarrantyUntil}}</dd>
{{if .Item.Notes}}<dt>Notes</dt><dd>{{.Item.Notes}}</dd>{{end}}
</dl>
{{if .Attachments}}
<h2>Attachments</h2>
<div class="gallery">
{{range .Attachments}}
<figure>
{{if .Thumbnail}}<img src="{{.Thumbnail}}" alt="{{.Name}}">{{else}}<p>No preview for {{.Name}}</p>{{end}}
<figcaption>{{.Name}} ({{.MIME}})</figcaption>
</figure>
{{end}}
</div>
{{end}}
<footer>Generated {{.GeneratedAt.Format "2006-01-02 15:04"}}</footer>
</body>
</html>
`))
