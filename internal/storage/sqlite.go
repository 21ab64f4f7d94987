// Package storage provides the local SQLite-backed implementation of the
// host bookmark service and key/value store, plus the app config file.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tabgrid/tabgrid/internal/host"
	"github.com/tabgrid/tabgrid/internal/model"
)

const currentSchemaVersion = 1

// RootID is the id of the invisible tree root.
const RootID = "0"

// BarID is the id of the seeded "Bookmarks bar" container.
const BarID = "1"

// Service implements host.Bookmarks and host.KV over a SQLite database.
type Service struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path.
func Open(path string) (*Service, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &Service{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.seed(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Path returns the database file path.
func (s *Service) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Service) Close() error {
	return s.db.Close()
}

// migrate runs database migrations.
func (s *Service) migrate() error {
	var version int
	err := s.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		if err := s.migrateV1(); err != nil {
			return err
		}
	}

	return nil
}

// migrateV1 creates the initial schema.
func (s *Service) migrateV1() error {
	schema := `
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS nodes (
			id TEXT PRIMARY KEY NOT NULL,
			parent_id TEXT,
			title TEXT NOT NULL DEFAULT '',
			url TEXT,
			position INTEGER NOT NULL DEFAULT 0,
			date_added INTEGER NOT NULL DEFAULT 0,
			FOREIGN KEY (parent_id) REFERENCES nodes(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY NOT NULL,
			value BLOB NOT NULL
		);

		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`
	_, err := s.db.Exec(schema)
	return err
}

// seed inserts the root and the built-in containers on first open.
func (s *Service) seed() error {
	now := time.Now().UnixMilli()
	rows := []struct {
		id, parent, title string
		position          int
	}{
		{RootID, "", "", 0},
		{BarID, RootID, "Bookmarks bar", 0},
		{"2", RootID, "Other bookmarks", 1},
	}
	for _, r := range rows {
		var parent any
		if r.parent != "" {
			parent = r.parent
		}
		_, err := s.db.Exec(`
			INSERT OR IGNORE INTO nodes (id, parent_id, title, url, position, date_added)
			VALUES (?, ?, ?, NULL, ?, ?)
		`, r.id, parent, r.title, r.position, now)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetTree loads all nodes and assembles the tree.
func (s *Service) GetTree() (*model.Node, error) {
	rows, err := s.db.Query(`
		SELECT id, parent_id, title, url, date_added
		FROM nodes
		ORDER BY parent_id, position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nodes := make(map[string]*model.Node)
	parents := make(map[string]string)
	var ids []string

	for rows.Next() {
		var (
			n        model.Node
			parentID sql.NullString
			url      sql.NullString
		)
		if err := rows.Scan(&n.ID, &parentID, &n.Title, &url, &n.DateAdded); err != nil {
			return nil, err
		}
		if url.Valid {
			n.URL = url.String
		}
		nodes[n.ID] = &n
		if parentID.Valid {
			parents[n.ID] = parentID.String
		}
		ids = append(ids, n.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// ids is ordered by (parent, position), so each parent's children append
	// in child order.
	for _, id := range ids {
		parentID, ok := parents[id]
		if !ok {
			continue
		}
		if parent, ok := nodes[parentID]; ok {
			parent.Children = append(parent.Children, nodes[id])
		}
	}

	root, ok := nodes[RootID]
	if !ok {
		return nil, fmt.Errorf("get tree: %w", host.ErrNotFound)
	}
	return root, nil
}

// Create appends a node to the parent's children.
func (s *Service) Create(p host.CreateParams) (*model.Node, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := containerExists(tx, p.ParentID); err != nil {
		return nil, fmt.Errorf("create under %s: %w", p.ParentID, err)
	}

	var position int
	if err := tx.QueryRow(
		"SELECT COUNT(*) FROM nodes WHERE parent_id = ?", p.ParentID,
	).Scan(&position); err != nil {
		return nil, err
	}

	dateAdded := p.DateAdded
	if dateAdded == 0 {
		dateAdded = time.Now().UnixMilli()
	}

	node := &model.Node{
		ID:        model.GenerateID(),
		Title:     p.Title,
		URL:       p.URL,
		DateAdded: dateAdded,
	}

	var url any
	if p.URL != "" {
		url = p.URL
	}
	_, err = tx.Exec(`
		INSERT INTO nodes (id, parent_id, title, url, position, date_added)
		VALUES (?, ?, ?, ?, ?, ?)
	`, node.ID, p.ParentID, p.Title, url, position, dateAdded)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return node, nil
}

// Update changes a node's title.
func (s *Service) Update(id string, title string) error {
	if id == RootID {
		return fmt.Errorf("update root: %w", host.ErrNotFound)
	}
	res, err := s.db.Exec("UPDATE nodes SET title = ? WHERE id = ?", title, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("update %s: %w", id, host.ErrNotFound)
	}
	return nil
}

// Move reparents or repositions a node. For a bookmark the index counts the
// target parent's URL-bearing children only, matching the positions the grid
// shows; for a folder it counts all children. Indexes apply after the node
// has left its old slot; negative or out-of-range indexes append.
func (s *Service) Move(id string, parentID string, index int) error {
	if id == RootID {
		return fmt.Errorf("move root: %w", host.ErrNotFound)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var (
		oldParent sql.NullString
		oldPos    int
		url       sql.NullString
	)
	err = tx.QueryRow(
		"SELECT parent_id, position, url FROM nodes WHERE id = ?", id,
	).Scan(&oldParent, &oldPos, &url)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("move %s: %w", id, host.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if err := containerExists(tx, parentID); err != nil {
		return fmt.Errorf("move %s under %s: %w", id, parentID, err)
	}
	if cyclic, err := isDescendant(tx, parentID, id); err != nil {
		return err
	} else if cyclic {
		return fmt.Errorf("move %s: target is inside the moved subtree", id)
	}

	// Take the node out of its old slot.
	if _, err := tx.Exec(
		"UPDATE nodes SET position = position - 1 WHERE parent_id = ? AND position > ?",
		oldParent, oldPos,
	); err != nil {
		return err
	}

	var siblings int
	if err := tx.QueryRow(
		"SELECT COUNT(*) FROM nodes WHERE parent_id = ? AND id != ?", parentID, id,
	).Scan(&siblings); err != nil {
		return err
	}
	target := index
	if url.Valid && target >= 0 {
		// Subfolders may sit between links; translate the link index to a
		// child position so the bookmark lands where the grid showed it.
		target, err = linkIndexToChildPos(tx, parentID, id, target)
		if err != nil {
			return err
		}
	}
	if target < 0 || target > siblings {
		target = siblings
	}

	if _, err := tx.Exec(
		"UPDATE nodes SET position = position + 1 WHERE parent_id = ? AND position >= ? AND id != ?",
		parentID, target, id,
	); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"UPDATE nodes SET parent_id = ?, position = ? WHERE id = ?",
		parentID, target, id,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// linkIndexToChildPos maps an index among a parent's URL-bearing children to
// a position among all children. An index past the last link lands right
// after it; a parent without links appends.
func linkIndexToChildPos(tx *sql.Tx, parentID, excludeID string, index int) (int, error) {
	rows, err := tx.Query(
		"SELECT position FROM nodes WHERE parent_id = ? AND id != ? AND url IS NOT NULL ORDER BY position",
		parentID, excludeID,
	)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var positions []int
	for rows.Next() {
		var pos int
		if err := rows.Scan(&pos); err != nil {
			return 0, err
		}
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	if len(positions) == 0 {
		return -1, nil
	}
	if index >= len(positions) {
		return positions[len(positions)-1] + 1, nil
	}
	return positions[index], nil
}

// Remove deletes a leaf node or an empty folder.
func (s *Service) Remove(id string) error {
	if id == RootID {
		return fmt.Errorf("remove root: %w", host.ErrNotFound)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var children int
	if err := tx.QueryRow(
		"SELECT COUNT(*) FROM nodes WHERE parent_id = ?", id,
	).Scan(&children); err != nil {
		return err
	}
	if children > 0 {
		return fmt.Errorf("remove %s: folder is not empty", id)
	}

	return removeNode(tx, id)
}

// RemoveTree deletes a folder and all of its descendants.
func (s *Service) RemoveTree(id string) error {
	if id == RootID {
		return fmt.Errorf("remove root: %w", host.ErrNotFound)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// ON DELETE CASCADE takes the descendants with the node.
	return removeNode(tx, id)
}

// removeNode deletes one row and compacts the sibling positions, then
// commits.
func removeNode(tx *sql.Tx, id string) error {
	var (
		parent sql.NullString
		pos    int
	)
	err := tx.QueryRow(
		"SELECT parent_id, position FROM nodes WHERE id = ?", id,
	).Scan(&parent, &pos)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("remove %s: %w", id, host.ErrNotFound)
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec("DELETE FROM nodes WHERE id = ?", id); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"UPDATE nodes SET position = position - 1 WHERE parent_id = ? AND position > ?",
		parent, pos,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// containerExists checks that id names an existing folder node.
func containerExists(tx *sql.Tx, id string) error {
	var url sql.NullString
	err := tx.QueryRow("SELECT url FROM nodes WHERE id = ?", id).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return host.ErrNotFound
	}
	if err != nil {
		return err
	}
	if url.Valid {
		return fmt.Errorf("node is a bookmark, not a folder")
	}
	return nil
}

// isDescendant reports whether candidate lies in the subtree rooted at
// ancestor (or equals it).
func isDescendant(tx *sql.Tx, candidate, ancestor string) (bool, error) {
	current := candidate
	for current != "" {
		if current == ancestor {
			return true, nil
		}
		var parent sql.NullString
		err := tx.QueryRow("SELECT parent_id FROM nodes WHERE id = ?", current).Scan(&parent)
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		if !parent.Valid {
			return false, nil
		}
		current = parent.String
	}
	return false, nil
}

// Get implements host.KV.
func (s *Service) Get(key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

// Set implements host.KV.
func (s *Service) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

// DefaultPath returns the default database path: ~/.config/tabgrid/bookmarks.db
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "tabgrid", "bookmarks.db"), nil
}
