package client

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"bagsync/internal/domain/inventory"
)

// SQLiteCache mirrors the last successfully fetched bags and items on disk.
// It is not a read layer for sync operations (every read is a fresh round
// trip); it exists so the CLI can show something offline and so deleting a
// bag invalidates its cached item list per the cascade contract.
type SQLiteCache struct {
	db *sql.DB
}

// NewSQLiteCache opens (and if needed initializes) the cache database.
func NewSQLiteCache(path string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening cache database: %w", err)
	}

	cache := &SQLiteCache{db: db}
	if err := cache.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing cache tables: %w", err)
	}

	return cache, nil
}

func (c *SQLiteCache) initTables() error {
	_, err := c.db.Exec(`
		CREATE TABLE IF NOT EXISTS bags (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			user_id INTEGER NOT NULL,
			assignment_date TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY,
			bag_id TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			model_name TEXT NOT NULL DEFAULT '',
			brand TEXT NOT NULL DEFAULT '',
			comment TEXT NOT NULL DEFAULT '',
			serial_number TEXT NOT NULL DEFAULT '',
			condition TEXT NOT NULL DEFAULT '',
			inspection_status INTEGER NOT NULL DEFAULT 0,
			inspection_date TEXT NOT NULL DEFAULT '',
			follow_up_date TEXT NOT NULL DEFAULT '',
			expiration_date TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT ''
		);

		CREATE INDEX IF NOT EXISTS idx_bags_user ON bags(user_id);
		CREATE INDEX IF NOT EXISTS idx_items_bag ON items(bag_id);
	`)
	return err
}

// PutBags replaces the cached bag list for one owner.
func (c *SQLiteCache) PutBags(ownerID int, bags []inventory.Bag) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("starting cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM bags WHERE user_id = ?", ownerID); err != nil {
		return fmt.Errorf("clearing cached bags: %w", err)
	}
	for _, bag := range bags {
		_, err := tx.Exec(`
			INSERT INTO bags (id, name, user_id, assignment_date)
			VALUES (?, ?, ?, ?)
		`, bag.ID, bag.Name, bag.OwnerUserID, bag.AssignmentDate)
		if err != nil {
			return fmt.Errorf("caching bag %s: %w", bag.ID, err)
		}
	}

	return tx.Commit()
}

// PutItems replaces the cached item list for one bag.
func (c *SQLiteCache) PutItems(bagID string, items []inventory.Item) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("starting cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM items WHERE bag_id = ?", bagID); err != nil {
		return fmt.Errorf("clearing cached items: %w", err)
	}
	for _, it := range items {
		_, err := tx.Exec(`
			INSERT INTO items (id, bag_id, description, model_name, brand, comment,
			                   serial_number, condition, inspection_status, inspection_date,
			                   follow_up_date, expiration_date, image_url)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, it.ID, it.BagID, it.Description, it.ModelName, it.Brand, it.Comment,
			it.SerialNumber, it.Condition, int(it.InspectionStatus), it.InspectionDate,
			it.FollowUpInspectionDate, it.ExpirationDate, it.ImageURL)
		if err != nil {
			return fmt.Errorf("caching item %d: %w", it.ID, err)
		}
	}

	return tx.Commit()
}

// CachedBags returns the last known bag list for one owner.
func (c *SQLiteCache) CachedBags(ownerID int) ([]inventory.Bag, error) {
	rows, err := c.db.Query(`
		SELECT id, name, user_id, assignment_date
		FROM bags WHERE user_id = ? ORDER BY name
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("reading cached bags: %w", err)
	}
	defer rows.Close()

	var bags []inventory.Bag
	for rows.Next() {
		var bag inventory.Bag
		if err := rows.Scan(&bag.ID, &bag.Name, &bag.OwnerUserID, &bag.AssignmentDate); err != nil {
			return nil, fmt.Errorf("scanning cached bag: %w", err)
		}
		bags = append(bags, bag)
	}
	return bags, rows.Err()
}

// CachedItems returns the last known item list for one bag.
func (c *SQLiteCache) CachedItems(bagID string) ([]inventory.Item, error) {
	rows, err := c.db.Query(`
		SELECT id, bag_id, description, model_name, brand, comment, serial_number,
		       condition, inspection_status, inspection_date, follow_up_date,
		       expiration_date, image_url
		FROM items WHERE bag_id = ? ORDER BY id
	`, bagID)
	if err != nil {
		return nil, fmt.Errorf("reading cached items: %w", err)
	}
	defer rows.Close()

	var items []inventory.Item
	for rows.Next() {
		var it inventory.Item
		var status int
		if err := rows.Scan(&it.ID, &it.BagID, &it.Description, &it.ModelName, &it.Brand,
			&it.Comment, &it.SerialNumber, &it.Condition, &status, &it.InspectionDate,
			&it.FollowUpInspectionDate, &it.ExpirationDate, &it.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning cached item: %w", err)
		}
		it.InspectionStatus = inventory.InspectionStatus(status)
		items = append(items, it)
	}
	return items, rows.Err()
}

// InvalidateBag drops a bag and its cached item list together.
func (c *SQLiteCache) InvalidateBag(bagID string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("starting cache transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM items WHERE bag_id = ?", bagID); err != nil {
		return fmt.Errorf("invalidating cached items: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM bags WHERE id = ?", bagID); err != nil {
		return fmt.Errorf("invalidating cached bag: %w", err)
	}

	return tx.Commit()
}

// InvalidateItem drops one cached item.
func (c *SQLiteCache) InvalidateItem(id int) error {
	if _, err := c.db.Exec("DELETE FROM items WHERE id = ?", id); err != nil {
		return fmt.Errorf("invalidating cached item: %w", err)
	}
	return nil
}

func (c *SQLiteCache) Close() error {
	return c.db.Close()
}
