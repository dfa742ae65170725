// Package db wires the durable store: connection setup, schema migrations,
// and the repositories built on top of the shared connection.
package db

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/accountd/internal/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Conn() *sql.DB
	Users() users.Repository
	Close() error
}
