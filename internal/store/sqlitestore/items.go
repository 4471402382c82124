package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/inventory/internal/model"
)

const selectItems = "SELECT id, name, category, quantity, price FROM inventory"

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (model.Item, error) {
	var (
		it       model.Item
		category sql.NullString
	)
	if err := row.Scan(&it.ID, &it.Name, &category, &it.Quantity, &it.Price); err != nil {
		return model.Item{}, err
	}
	it.Category = category.String
	return it, nil
}

// Create inserts a new item and returns its id.
func (s *Store) Create(ctx context.Context, d model.Draft) (int64, error) {
	var id int64
	err := s.withConn(ctx, "create", func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx,
			"INSERT INTO inventory (name, category, quantity, price) VALUES (?, ?, ?, ?)",
			d.Name, d.Category, d.Quantity, d.Price)
		if err != nil {
			return err
		}
		id, err = res.LastInsertId()
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Get returns the item with the given id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, id int64) (model.Item, error) {
	var it model.Item
	err := s.withConn(ctx, "get", func(conn *sql.Conn) error {
		var err error
		it, err = scanItem(conn.QueryRowContext(ctx, selectItems+" WHERE id = ?", id))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("id %d: %w", id, ErrNotFound)
		}
		return err
	})
	if err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// List returns every item ordered by name.
func (s *Store) List(ctx context.Context) ([]model.Item, error) {
	var items []model.Item
	err := s.withConn(ctx, "list", func(conn *sql.Conn) error {
		var err error
		items, err = queryItems(ctx, conn, selectItems+" ORDER BY name, id")
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Update replaces every mutable field of the item with the given id. It
// returns ErrNotFound when no row matched; writing identical values still
// counts as a match.
func (s *Store) Update(ctx context.Context, id int64, d model.Draft) error {
	return s.withConn(ctx, "update", func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx,
			"UPDATE inventory SET name = ?, category = ?, quantity = ?, price = ? WHERE id = ?",
			d.Name, d.Category, d.Quantity, d.Price, id)
		if err != nil {
			return err
		}
		return expectRow(res, id)
	})
}

// Delete removes the item with the given id, or reports ErrNotFound.
func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.withConn(ctx, "delete", func(conn *sql.Conn) error {
		res, err := conn.ExecContext(ctx, "DELETE FROM inventory WHERE id = ?", id)
		if err != nil {
			return err
		}
		return expectRow(res, id)
	})
}

// Search returns the items whose name or category contains term, ignoring
// case, ordered by name. The term is matched literally; an empty term
// matches everything.
func (s *Store) Search(ctx context.Context, term string) ([]model.Item, error) {
	pattern := "%" + escapeLike(term) + "%"
	var items []model.Item
	err := s.withConn(ctx, "search", func(conn *sql.Conn) error {
		var err error
		items, err = queryItems(ctx, conn,
			selectItems+` WHERE name LIKE ? ESCAPE '\' OR category LIKE ? ESCAPE '\' ORDER BY name, id`,
			pattern, pattern)
		return err
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func queryItems(ctx context.Context, conn *sql.Conn, query string, args ...any) ([]model.Item, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func expectRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
