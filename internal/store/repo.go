package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// ReadAll returns the full contents of a table, one Row per record in
// schema column order. Results are served from the read cache until the
// next write or until the cache TTL expires.
func (s *Store) ReadAll(ctx context.Context, table Table) ([]Row, error) {
	if err := table.check(); err != nil {
		return nil, err
	}

	if cached, ok := s.cache.Get(table); ok {
		return cached, nil
	}

	cols := table.Columns()
	query := fmt.Sprintf(`SELECT %s FROM %s`, strings.Join(cols, ", "), table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classify("read "+string(table), err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, classify("read "+string(table), err)
		}
		r := make(Row, len(cols))
		for i, c := range cols {
			if vals[i].Valid {
				r[c] = vals[i].String
			} else {
				r[c] = ""
			}
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("read "+string(table), err)
	}

	s.cache.Add(table, out)
	return out, nil
}

// Insert appends one row with the given column values. Empty strings are
// stored as NULL. Columns not listed take their schema defaults.
func (s *Store) Insert(ctx context.Context, table Table, values Row) error {
	if err := table.check(); err != nil {
		return err
	}
	for col := range values {
		if err := table.checkColumn(col); err != nil {
			return err
		}
	}

	var cols []string
	var args []any
	for _, c := range table.Columns() {
		v, ok := values[c]
		if !ok {
			continue
		}
		cols = append(cols, c)
		args = append(args, nullable(v))
	}
	if len(cols) == 0 {
		return fmt.Errorf("insert %s: no columns given", table)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		table, strings.Join(cols, ", "), placeholders(len(cols)))

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return classify("insert "+string(table), err)
	}

	s.invalidate()
	return nil
}

// UpdateByKey updates the listed columns on the row whose key column
// matches keyValue. Empty strings are normalized to NULL. A key that
// matches no row is a no-op, not an error.
func (s *Store) UpdateByKey(ctx context.Context, table Table, keyColumn, keyValue string, values Row) error {
	if err := table.check(); err != nil {
		return err
	}
	if err := table.checkColumn(keyColumn); err != nil {
		return err
	}
	for col := range values {
		if err := table.checkColumn(col); err != nil {
			return err
		}
	}

	var sets []string
	var args []any
	for _, c := range table.Columns() {
		v, ok := values[c]
		if !ok {
			continue
		}
		sets = append(sets, c+" = ?")
		args = append(args, nullable(v))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, keyValue)

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = ?`,
		table, strings.Join(sets, ", "), keyColumn)

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return classify("update "+string(table), err)
	}

	s.invalidate()
	return nil
}

// DeleteByKey deletes the matching row in a single transaction. For the
// two parent tables the dependent BotKnowledgeLink rows are removed first,
// inside the same transaction, so no dangling link survives a delete and
// no failure leaves a half-deleted pair.
func (s *Store) DeleteByKey(ctx context.Context, table Table, keyColumn, keyValue string) error {
	if err := table.check(); err != nil {
		return err
	}
	if err := table.checkColumn(keyColumn); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return classify("delete "+string(table), err)
	}
	defer tx.Rollback()

	switch table {
	case TableBots:
		_, err = tx.ExecContext(ctx, fmt.Sprintf(
			`DELETE FROM BotKnowledgeLink WHERE Bot_ID IN (SELECT Bot_ID FROM Bots WHERE %s = ?)`,
			keyColumn), keyValue)
	case TableKnowledge:
		_, err = tx.ExecContext(ctx, fmt.Sprintf(
			`DELETE FROM BotKnowledgeLink WHERE KnowledgeBase_ID IN (SELECT ID FROM KnowledgeBase WHERE %s = ?)`,
			keyColumn), keyValue)
	}
	if err != nil {
		return classify("delete "+string(table)+" links", err)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, table, keyColumn)
	if _, err := tx.ExecContext(ctx, query, keyValue); err != nil {
		return classify("delete "+string(table), err)
	}

	if err := tx.Commit(); err != nil {
		return classify("delete "+string(table), err)
	}

	s.invalidate()
	return nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
