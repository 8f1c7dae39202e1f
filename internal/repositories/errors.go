package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

var ErrNotFound = errors.New("not found")

func notFound(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// nonNil keeps NOT NULL text[] columns from receiving a NULL array.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
