// Package sqlitestore provides an accumulator.LeafStore persisted in a sqlite
// database. Several logs may share a database; leaves are keyed by log id and
// position.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/forestrie/go-merkleaccumulator/accumulator"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

var ErrPositionGap = errors.New("stored leaf positions are not contiguous")

const ddl = `CREATE TABLE IF NOT EXISTS leaves(
	log_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	value BLOB NOT NULL,
	PRIMARY KEY (log_id, position)
);`

// LeafStore writes every leaf through to the database and serves reads from
// memory. It is loaded once, when it is created.
type LeafStore struct {
	db    *sql.DB
	owned bool
	logID string
	mem   *accumulator.MemLeafStore
}

// Open opens, creating if necessary, the database at path and loads the
// leaves of the log.
func Open(path string, logID uuid.UUID) (*LeafStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	s, err := New(db, logID)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.owned = true
	return s, nil
}

// New uses an already open database. The caller remains responsible for
// closing it.
func New(db *sql.DB, logID uuid.UUID) (*LeafStore, error) {
	if _, err := db.Exec(ddl); err != nil {
		return nil, err
	}
	s := &LeafStore{
		db:    db,
		logID: logID.String(),
		mem:   accumulator.NewMemLeafStore(),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *LeafStore) load() error {
	rows, err := s.db.Query(
		`SELECT position, value FROM leaves WHERE log_id = ? ORDER BY position`, s.logID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var position uint64
		var value []byte
		if err = rows.Scan(&position, &value); err != nil {
			return err
		}
		if position != s.mem.Count() {
			return fmt.Errorf("%w: expected %d, found %d", ErrPositionGap, s.mem.Count(), position)
		}
		leaf, err := accumulator.HashFromBytes(value)
		if err != nil {
			return fmt.Errorf("leaf %d: %w", position, err)
		}
		if _, err = s.mem.Append(leaf); err != nil {
			return err
		}
	}
	return rows.Err()
}

// Append inserts the value at the next position. The insert fails if another
// writer has already stored a leaf at that position.
func (s *LeafStore) Append(value accumulator.Hash) (uint64, error) {
	position := s.mem.Count()
	_, err := s.db.Exec(
		`INSERT INTO leaves (log_id, position, value) VALUES (?, ?, ?)`, s.logID, position, value.Bytes())
	if err != nil {
		return 0, err
	}
	return s.mem.Append(value)
}

func (s *LeafStore) Get(i uint64) (accumulator.Hash, error) { return s.mem.Get(i) }
func (s *LeafStore) Count() uint64                          { return s.mem.Count() }
func (s *LeafStore) Leaves() []accumulator.Hash             { return s.mem.Leaves() }

// Close closes the database if it was opened by Open
func (s *LeafStore) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
