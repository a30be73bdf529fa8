package repository

import (
	"time"

	"github.com/Masterminds/squirrel"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// insertedRow receives the columns postgres fills in on INSERT ... RETURNING.
type insertedRow struct {
	ID         int64     `db:"id"`
	CreatedAt  time.Time `db:"created_at"`
	ModifiedAt time.Time `db:"modified_at"`
}

const returningInserted = "RETURNING id, created_at, modified_at"
