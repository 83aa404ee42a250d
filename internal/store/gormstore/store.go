// Package gormstore is the relational adapter of the store contract,
// backed by sqlite through gorm.
package gormstore

import "gorm.io/gorm"

type Store struct {
	database *gorm.DB
}

func New(database *gorm.DB) *Store {
	return &Store{database: database}
}

// Open opens (creating if needed) the sqlite database at dbPath and returns
// a ready store.
func Open(dbPath string) (*Store, error) {
	database, err := OpenSQLite(dbPath)
	if err != nil {
		return nil, err
	}
	return New(database), nil
}

// DB exposes the underlying handle for lifecycle management in main.
func (s *Store) DB() *gorm.DB {
	return s.database
}
