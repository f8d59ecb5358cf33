// Package store implements the collaborator read/write surfaces the ranking
// engine consumes, backed by the shared postgres instance. The content and
// social subsystems own most of these tables, this package only issues the
// narrow queries ranking needs.
package store

import "gorm.io/gorm"

type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}
