package store

import (
	sq "github.com/Masterminds/squirrel"
)

// ListOption modifies a list query.
type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

// ByName keeps rows whose name contains the given text, case-insensitively.
func ByName(name string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.ILike{"name": "%" + name + "%"})
	}
}

// OnlyOpen keeps rows that have not ended.
func OnlyOpen() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.Eq{"end_time": nil})
	}
}
