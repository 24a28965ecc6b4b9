package database

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgconn"
)

const EventsTable = "events"

var PSQL = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PGX содержит операции для работы с базой.
type PGX interface {
	Queryable
}

// Queryable содержит основные операции для query-инга db.
type Queryable interface {
	Exec(ctx context.Context, sqlizer sqlizer) (pgconn.CommandTag, error)
	Get(ctx context.Context, dst interface{}, sqlizer sqlizer) error
	Select(ctx context.Context, dst interface{}, sqlizer sqlizer) error
}

type sqlizer interface {
	ToSql() (sql string, args []interface{}, err error)
}
