package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rogerio-castellano/smart-inventory/internal/models"
)

// Dialect selects placeholder and column syntax for a SQL backend.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
	DialectMySQL    Dialect = "mysql"
)

const sqlTimeout = 3 * time.Second

// SQLItemStore keeps one row per item in inventory_items. The position column
// preserves insertion order across whole-collection rewrites.
type SQLItemStore struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLItemStore(db *sql.DB, dialect Dialect) *SQLItemStore {
	return &SQLItemStore{db: db, dialect: dialect}
}

// EnsureSchema creates the inventory_items table when it does not exist.
func (r *SQLItemStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, sqlTimeout)
	defer cancel()

	query := `CREATE TABLE IF NOT EXISTS inventory_items (
		id VARCHAR(64) PRIMARY KEY,
		position INTEGER NOT NULL,
		name VARCHAR(255) NOT NULL,
		quantity INTEGER NOT NULL,
		category VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		status VARCHAR(32) NOT NULL,
		created_at VARCHAR(40) NOT NULL,
		updated_at VARCHAR(40) NOT NULL
	)`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("create inventory_items: %w", err)
	}
	return nil
}

func (r *SQLItemStore) Load(ctx context.Context) ([]models.InventoryItem, error) {
	query := `SELECT id, name, quantity, category, description, status, created_at, updated_at FROM inventory_items ORDER BY position`
	ctx, cancel := context.WithTimeout(ctx, sqlTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select inventory_items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	items := []models.InventoryItem{}
	for rows.Next() {
		var (
			it                   models.InventoryItem
			status               string
			createdAt, updatedAt string
		)
		if err := rows.Scan(&it.ID, &it.Name, &it.Quantity, &it.Category, &it.Description, &status, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory_items: %w", err)
		}
		it.Status = models.ItemStatus(status)
		if it.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at of %s: %w", it.ID, err)
		}
		if it.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
			return nil, fmt.Errorf("parse updated_at of %s: %w", it.ID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate inventory_items: %w", err)
	}
	return items, nil
}

// Save rewrites the table inside a single transaction.
func (r *SQLItemStore) Save(ctx context.Context, items []models.InventoryItem) error {
	ctx, cancel := context.WithTimeout(ctx, sqlTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM inventory_items`); err != nil {
		return fmt.Errorf("clear inventory_items: %w", err)
	}

	insert := r.rebind(`INSERT INTO inventory_items (id, position, name, quantity, category, description, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, it := range items {
		_, err := stmt.ExecContext(ctx,
			it.ID, i, it.Name, it.Quantity, it.Category, it.Description, string(it.Status),
			it.CreatedAt.UTC().Format(time.RFC3339Nano), it.UpdatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert item %s: %w", it.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders as $1..$n for postgres.
func (r *SQLItemStore) rebind(query string) string {
	if r.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
