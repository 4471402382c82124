package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/idilsaglam/inventory/internal/model"
)

// Header is the first row of every exported file.
var Header = []string{"ID", "Name", "Category", "Quantity", "Price"}

// Export writes all items, ordered by name, to a CSV file at path. A
// failed export may leave a partial file behind.
func (s *Store) Export(ctx context.Context, path string) (err error) {
	items, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return s.fail("export", fmt.Errorf("create file: %w", err))
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = s.fail("export", fmt.Errorf("close file: %w", cerr))
		}
	}()

	if err := writeItems(f, items); err != nil {
		return s.fail("export", err)
	}
	s.log.Info("exported items", zap.String("path", path), zap.Int("count", len(items)))
	return nil
}

// ExportTo is Export over an arbitrary writer.
func (s *Store) ExportTo(ctx context.Context, w io.Writer) error {
	items, err := s.List(ctx)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := writeItems(w, items); err != nil {
		return s.fail("export", err)
	}
	return nil
}

func writeItems(w io.Writer, items []model.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, it := range items {
		rec := []string{
			strconv.FormatInt(it.ID, 10),
			it.Name,
			it.Category,
			strconv.Itoa(it.Quantity),
			model.FormatPrice(it.Price),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write item %d: %w", it.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// Import reads a CSV file at path and inserts its items. See ImportFrom.
func (s *Store) Import(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, s.fail("import", fmt.Errorf("open file: %w", err))
	}
	defer f.Close()

	n, err := s.ImportFrom(ctx, f)
	if err != nil {
		return 0, err
	}
	s.log.Info("imported items", zap.String("path", path), zap.Int("count", n))
	return n, nil
}

// ImportFrom skips one header record, then inserts one new item per record
// from its name, category, quantity and price columns. The id column is
// ignored; every item gets a fresh id. Name and category are stored as
// written in the file, surrounding blanks included; only the numeric
// columns are trimmed. Interactive input trims all four through
// model.ParseDraft. Records with fewer than five
// fields are skipped. The whole import is one transaction: a malformed or
// invalid record undoes every insert of the call.
func (s *Store) ImportFrom(ctx context.Context, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			err = ErrEmptySource
		}
		return 0, s.fail("import", fmt.Errorf("read header: %w", err))
	}

	count := 0
	err := s.withTx(ctx, "import", func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx,
			"INSERT INTO inventory (name, category, quantity, price) VALUES (?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for {
			rec, err := cr.Read()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			line, _ := cr.FieldPos(0)
			if len(rec) < len(Header) {
				s.log.Debug("skipping short record", zap.Int("line", line), zap.Int("fields", len(rec)))
				continue
			}

			d, err := parseRecord(rec)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			if _, err := stmt.ExecContext(ctx, d.Name, d.Category, d.Quantity, d.Price); err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			count++
		}
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func parseRecord(rec []string) (model.Draft, error) {
	q, err := model.ParseQuantity(rec[3])
	if err != nil {
		return model.Draft{}, err
	}
	p, err := model.ParsePrice(rec[4])
	if err != nil {
		return model.Draft{}, err
	}
	d := model.Draft{Name: rec[1], Category: rec[2], Quantity: q, Price: p}
	if err := d.Validate(); err != nil {
		return model.Draft{}, err
	}
	return d, nil
}
