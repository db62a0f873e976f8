package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"github.com/fintrack/fintrack-go/internal/model"
)

// Columns shared by every collection.
const (
	ColID    = "id"
	ColOwner = "user_id"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateKey  = errors.New("duplicate key")
	ErrUnknownColumn = errors.New("unknown column")
	ErrFilterNeedsID = errors.New("filter must include the record id")
	ErrEmptyUpdate   = errors.New("update has no fields")

	// ErrMissingReference is returned when a record points at a row that does
	// not exist, such as a deleted owner.
	ErrMissingReference = errors.New("referenced record does not exist")
)

// Filter matches records whose columns equal the given values.
type Filter map[string]any

// Doc is a set of column values to insert or update.
type Doc map[string]any

// Sort orders a result set by one column.
type Sort struct {
	Column string
	Desc   bool
}

type rowScanner interface {
	Scan(dest ...any) error
}

// Collection is a table of records of type T addressed by a string id.
// Column names in filters, docs and sorts are checked against the
// collection's column set before any SQL is built.
type Collection[T any] struct {
	db      *sql.DB
	name    string
	columns []string
	known   map[string]struct{}
	scan    func(rowScanner) (*T, error)
}

func newCollection[T any](db *sql.DB, name string, columns []string, scan func(rowScanner) (*T, error)) *Collection[T] {
	known := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		known[c] = struct{}{}
	}
	return &Collection[T]{
		db:      db,
		name:    name,
		columns: columns,
		known:   known,
		scan:    scan,
	}
}

// Insert stores doc and returns its id, generating one when doc has none.
func (c *Collection[T]) Insert(ctx context.Context, doc Doc) (string, error) {
	row := maps.Clone(doc)
	if row == nil {
		row = Doc{}
	}
	id, _ := row[ColID].(string)
	if id == "" {
		id = model.NewID()
		row[ColID] = id
	}

	keys, err := c.sortedKeys(row)
	if err != nil {
		return "", err
	}

	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = row[k]
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(c.name), joinIdents(keys), placeholders(len(keys)))

	if _, err := c.db.ExecContext(ctx, query, args...); err != nil {
		if isDuplicateKeyError(err) {
			return "", fmt.Errorf("insert into %s: %w", c.name, ErrDuplicateKey)
		}
		if isForeignKeyError(err) {
			return "", fmt.Errorf("insert into %s: %w", c.name, ErrMissingReference)
		}
		return "", fmt.Errorf("insert into %s: %w", c.name, err)
	}

	return id, nil
}

// FindOne returns the first record matching f or ErrNotFound.
func (c *Collection[T]) FindOne(ctx context.Context, f Filter) (*T, error) {
	where, args, err := c.where(f)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s%s LIMIT 1", joinIdents(c.columns), quoteIdent(c.name), where)

	item, err := c.scan(c.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find in %s: %w", c.name, err)
	}

	return item, nil
}

// FindMany returns a lazy sequence of records matching f. The query runs when
// iteration starts and the rows are released when iteration stops; a failure
// is yielded once as the final element.
func (c *Collection[T]) FindMany(ctx context.Context, f Filter, sorts ...Sort) iter.Seq2[*T, error] {
	return func(yield func(*T, error) bool) {
		where, args, err := c.where(f)
		if err != nil {
			yield(nil, err)
			return
		}
		order, err := c.orderBy(sorts)
		if err != nil {
			yield(nil, err)
			return
		}

		query := fmt.Sprintf("SELECT %s FROM %s%s%s", joinIdents(c.columns), quoteIdent(c.name), where, order)

		rows, err := c.db.QueryContext(ctx, query, args...)
		if err != nil {
			yield(nil, fmt.Errorf("query %s: %w", c.name, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			item, err := c.scan(rows)
			if err != nil {
				yield(nil, fmt.Errorf("scan %s: %w", c.name, err))
				return
			}
			if !yield(item, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("iterate %s: %w", c.name, err))
		}
	}
}

// UpdateOne applies set to the record addressed by f and returns the number
// of matched rows, which includes rows whose values were already equal.
func (c *Collection[T]) UpdateOne(ctx context.Context, f Filter, set Doc) (int64, error) {
	if _, ok := f[ColID]; !ok {
		return 0, ErrFilterNeedsID
	}
	if len(set) == 0 {
		return 0, ErrEmptyUpdate
	}

	keys, err := c.sortedKeys(set)
	if err != nil {
		return 0, err
	}
	where, whereArgs, err := c.where(f)
	if err != nil {
		return 0, err
	}

	assignments := make([]string, len(keys))
	args := make([]any, 0, len(keys)+len(whereArgs))
	for i, k := range keys {
		assignments[i] = quoteIdent(k) + " = ?"
		args = append(args, set[k])
	}
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s", quoteIdent(c.name), strings.Join(assignments, ", "), where)

	result, err := c.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, fmt.Errorf("update %s: %w", c.name, ErrDuplicateKey)
		}
		return 0, fmt.Errorf("update %s: %w", c.name, err)
	}

	return result.RowsAffected()
}

// DeleteOne removes the record addressed by f and returns the number of
// deleted rows.
func (c *Collection[T]) DeleteOne(ctx context.Context, f Filter) (int64, error) {
	if _, ok := f[ColID]; !ok {
		return 0, ErrFilterNeedsID
	}

	where, args, err := c.where(f)
	if err != nil {
		return 0, err
	}

	result, err := c.db.ExecContext(ctx, "DELETE FROM "+quoteIdent(c.name)+where, args...)
	if err != nil {
		return 0, fmt.Errorf("delete from %s: %w", c.name, err)
	}

	return result.RowsAffected()
}

// Count returns the number of records matching f.
func (c *Collection[T]) Count(ctx context.Context, f Filter) (int64, error) {
	where, args, err := c.where(f)
	if err != nil {
		return 0, err
	}

	var n int64
	query := "SELECT COUNT(*) FROM " + quoteIdent(c.name) + where
	if err := c.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}

	return n, nil
}

// SumByGroup sums sumField over records matching f, grouped by groupKey.
// Groups with no matching records are absent from the result.
func (c *Collection[T]) SumByGroup(ctx context.Context, f Filter, groupKey, sumField string) (map[string]float64, error) {
	if err := c.checkColumns(groupKey, sumField); err != nil {
		return nil, err
	}
	where, args, err := c.where(f)
	if err != nil {
		return nil, err
	}

	g, s := quoteIdent(groupKey), quoteIdent(sumField)
	query := fmt.Sprintf("SELECT %s, COALESCE(SUM(%s), 0) FROM %s%s GROUP BY %s", g, s, quoteIdent(c.name), where, g)

	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", c.name, err)
	}
	defer rows.Close()

	totals := make(map[string]float64)
	for rows.Next() {
		var (
			group string
			total float64
		)
		if err := rows.Scan(&group, &total); err != nil {
			return nil, fmt.Errorf("scan %s aggregate: %w", c.name, err)
		}
		totals[group] = total
	}

	return totals, rows.Err()
}

func (c *Collection[T]) checkColumns(cols ...string) error {
	for _, col := range cols {
		if _, ok := c.known[col]; !ok {
			return fmt.Errorf("%w %q in %s", ErrUnknownColumn, col, c.name)
		}
	}
	return nil
}

func (c *Collection[T]) sortedKeys(m map[string]any) ([]string, error) {
	keys := slices.Sorted(maps.Keys(m))
	if err := c.checkColumns(keys...); err != nil {
		return nil, err
	}
	return keys, nil
}

func (c *Collection[T]) where(f Filter) (string, []any, error) {
	if len(f) == 0 {
		return "", nil, nil
	}

	keys, err := c.sortedKeys(f)
	if err != nil {
		return "", nil, err
	}

	conds := make([]string, len(keys))
	args := make([]any, len(keys))
	for i, k := range keys {
		conds[i] = quoteIdent(k) + " = ?"
		args[i] = f[k]
	}

	return " WHERE " + strings.Join(conds, " AND "), args, nil
}

func (c *Collection[T]) orderBy(sorts []Sort) (string, error) {
	if len(sorts) == 0 {
		return "", nil
	}

	terms := make([]string, len(sorts))
	for i, s := range sorts {
		if err := c.checkColumns(s.Column); err != nil {
			return "", err
		}
		dir := "ASC"
		if s.Desc {
			dir = "DESC"
		}
		terms[i] = quoteIdent(s.Column) + " " + dir
	}

	return " ORDER BY " + strings.Join(terms, ", "), nil
}

// quoteIdent quotes a trusted identifier. Backticks work in both MySQL and SQLite.
func quoteIdent(name string) string {
	return "`" + name + "`"
}

func joinIdents(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = quoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
