package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/erazemk/proofpal/internal/model"
)

const itemColumns = `id, title, store, category, purchase_date, total_amount,
	return_until, warranty_until, notes, created_at, updated_at`

// CreateItem validates the input, inserts the item, arms both alerts and
// records the audit entry, all in one transaction.
func CreateItem(ctx context.Context, db *sql.DB, in model.ItemInput) (*model.Item, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	ts := now()
	result, err := tx.ExecContext(ctx,
		`INSERT INTO items
		 (title, store, category, purchase_date, total_amount, return_until, warranty_until, notes, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.Store, in.Category, formatDate(in.PurchaseDate), in.TotalAmount,
		formatDate(in.ReturnUntil), formatDate(in.WarrantyUntil), in.Notes, ts, ts,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	if err := syncAlerts(ctx, tx, id, in.ReturnUntil, in.WarrantyUntil); err != nil {
		return nil, err
	}
	if err := LogAction(ctx, tx, model.ActionItemCreated, map[string]any{"item_id": id, "title": in.Title}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item creation: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or ErrNotFound.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
	)
	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	return item, nil
}

// UpdateItem overwrites all mutable fields, refreshes the update timestamp,
// re-synchronizes both alerts and records the audit entry, atomically.
// Re-syncing always re-arms the alerts, even if the deadlines are unchanged.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, in model.ItemInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE items
		 SET title = ?, store = ?, category = ?, purchase_date = ?, total_amount = ?,
		     return_until = ?, warranty_until = ?, notes = ?, updated_at = ?
		 WHERE id = ?`,
		in.Title, in.Store, in.Category, formatDate(in.PurchaseDate), in.TotalAmount,
		formatDate(in.ReturnUntil), formatDate(in.WarrantyUntil), in.Notes, now(), id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	if err := syncAlerts(ctx, tx, id, in.ReturnUntil, in.WarrantyUntil); err != nil {
		return err
	}
	if err := LogAction(ctx, tx, model.ActionItemUpdated, map[string]any{"item_id": id}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item update: %w", err)
	}
	return nil
}

// DeleteItem deletes the item row; its files and alerts go with it via the
// foreign-key cascade. The audit trail is kept. Removing archived bytes
// from disk is the caller's job, not the row deletion's.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	if err := LogAction(ctx, tx, model.ActionItemDeleted, map[string]any{"item_id": id}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item deletion: %w", err)
	}
	return nil
}

// ListItems returns items matching the filter, most recent purchase first.
// Ties on purchase date keep insertion order.
func ListItems(ctx context.Context, db *sql.DB, filter model.Filter) ([]model.Item, error) {
	var clauses []string
	var args []any

	if filter.Text != "" {
		clauses = append(clauses, "(title LIKE ? OR store LIKE ? OR category LIKE ?)")
		pattern := "%" + filter.Text + "%"
		args = append(args, pattern, pattern, pattern)
	}
	if filter.Store != "" {
		clauses = append(clauses, "store = ?")
		args = append(args, filter.Store)
	}
	if filter.Category != "" {
		clauses = append(clauses, "category = ?")
		args = append(args, filter.Category)
	}
	if !filter.Start.IsZero() {
		clauses = append(clauses, "purchase_date >= ?")
		args = append(args, formatDate(filter.Start))
	}
	if !filter.End.IsZero() {
		clauses = append(clauses, "purchase_date <= ?")
		args = append(args, formatDate(filter.End))
	}
	if !filter.DueReturn.IsZero() {
		clauses = append(clauses, "return_until <= ?")
		args = append(args, formatDate(filter.DueReturn))
	}
	if !filter.DueWarranty.IsZero() {
		clauses = append(clauses, "warranty_until <= ?")
		args = append(args, formatDate(filter.DueWarranty))
	}

	query := `SELECT ` + itemColumns + ` FROM items`
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY purchase_date DESC, id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	defer rows.Close()

	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows for scanItem.
type scanner interface {
	Scan(dest ...any) error
}

func scanItem(s scanner) (*model.Item, error) {
	item := &model.Item{}
	var purchase, returnUntil, warrantyUntil string
	var notes sql.NullString
	err := s.Scan(&item.ID, &item.Title, &item.Store, &item.Category, &purchase,
		&item.TotalAmount, &returnUntil, &warrantyUntil, &notes,
		&item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Notes = notes.String
	if item.PurchaseDate, err = parseDate(purchase); err != nil {
		return nil, err
	}
	if item.ReturnUntil, err = parseDate(returnUntil); err != nil {
		return nil, err
	}
	if item.WarrantyUntil, err = parseDate(warrantyUntil); err != nil {
		return nil, err
	}
	return item, nil
}
