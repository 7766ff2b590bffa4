package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var (
	// ErrNoRows is returned when a lookup, update or delete matched nothing.
	ErrNoRows = sql.ErrNoRows

	ErrEmptyWhere = errors.New("db: refusing to run without a where filter")
	ErrEmptyData  = errors.New("db: nothing to write")
)

// Data is the column -> value set written by Create and Update. An untyped
// nil value writes NULL.
type Data map[string]any

// Where is a conjunction of column = value conditions.
type Where map[string]any

func (w Where) predicate() *entsql.Predicate {
	cols := slices.Sorted(maps.Keys(w))
	preds := make([]*entsql.Predicate, 0, len(cols))
	for _, col := range cols {
		preds = append(preds, entsql.EQ(col, w[col]))
	}
	if len(preds) == 1 {
		return preds[0]
	}
	return entsql.And(preds...)
}

// Later is an Update value that sets column to now, or to one microsecond
// past the stored value when that is not older than now.
func Later(column string, now time.Time) any {
	return entsql.ExprFunc(func(b *entsql.Builder) {
		b.WriteString("GREATEST(").
			Arg(now).
			Comma().
			Ident(column).
			WriteString(" + interval '1 microsecond')")
	})
}

// Table is a typed handle on one table. Columns of T are matched by the
// `sql` struct tag, so every selected column needs a tagged field.
type Table[T any] struct {
	client  *Client
	name    string
	columns []string
}

func NewTable[T any](client *Client, name string, columns ...string) *Table[T] {
	return &Table[T]{
		client:  client,
		name:    name,
		columns: columns,
	}
}

// Create inserts one row and returns it as stored.
func (t *Table[T]) Create(ctx context.Context, data Data) (*T, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	b := t.client.builder().Insert(t.name)
	for _, col := range slices.Sorted(maps.Keys(data)) {
		b.Set(col, data[col])
	}
	b.Returning(t.columns...)

	row, err := t.one(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("%s.insert: %w", t.name, err)
	}
	return row, nil
}

// FindMany returns every row matching where (all rows for an empty filter),
// ordered by the given columns ascending. The result is never nil.
func (t *Table[T]) FindMany(ctx context.Context, where Where, orderBy ...string) ([]T, error) {
	b := t.client.builder()
	s := b.Select(t.columns...).From(b.Table(t.name))
	if len(where) > 0 {
		s.Where(where.predicate())
	}
	for _, col := range orderBy {
		s.OrderBy(entsql.Asc(col))
	}

	rows, err := t.all(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("%s.select: %w", t.name, err)
	}
	return rows, nil
}

// FindUnique returns the single row matching where, or ErrNoRows.
func (t *Table[T]) FindUnique(ctx context.Context, where Where) (*T, error) {
	if len(where) == 0 {
		return nil, ErrEmptyWhere
	}

	b := t.client.builder()
	s := b.Select(t.columns...).
		From(b.Table(t.name)).
		Where(where.predicate()).
		Limit(1)

	row, err := t.one(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("%s.select_one: %w", t.name, err)
	}
	return row, nil
}

// Update writes data to the rows matching where and returns the first updated
// row, or ErrNoRows when nothing matched.
func (t *Table[T]) Update(ctx context.Context, where Where, data Data) (*T, error) {
	if len(where) == 0 {
		return nil, ErrEmptyWhere
	}
	if len(data) == 0 {
		return nil, ErrEmptyData
	}

	b := t.client.builder().Update(t.name)
	for _, col := range slices.Sorted(maps.Keys(data)) {
		b.Set(col, data[col])
	}
	b.Where(where.predicate()).Returning(t.columns...)

	row, err := t.one(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("%s.update: %w", t.name, err)
	}
	return row, nil
}

// Delete removes the rows matching where. It returns ErrNoRows when nothing
// was deleted.
func (t *Table[T]) Delete(ctx context.Context, where Where) (int64, error) {
	if len(where) == 0 {
		return 0, ErrEmptyWhere
	}

	res, err := t.client.exec(ctx, t.client.builder().Delete(t.name).Where(where.predicate()))
	if err != nil {
		return 0, fmt.Errorf("%s.delete: %w", t.name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s.delete: rows affected: %w", t.name, err)
	}
	if n == 0 {
		return 0, fmt.Errorf("%s.delete: %w", t.name, ErrNoRows)
	}
	return n, nil
}

func (t *Table[T]) all(ctx context.Context, q entsql.Querier) ([]T, error) {
	rows, err := t.client.query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	out := make([]T, 0)
	if err := entsql.ScanSlice(rows, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (t *Table[T]) one(ctx context.Context, q entsql.Querier) (*T, error) {
	rows, err := t.all(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return &rows[0], nil
}
