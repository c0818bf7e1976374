// Package sqlite is a resource storage handler executing plans against a SQL
// table through database/sql and the pure Go SQLite driver.
//
// Column identifiers are never taken from the request as is: every field
// name is checked against the resource schema before being quoted into a
// statement, values are always bound as arguments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/resource"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema"
	"github.com/luis-knd/tempoAndJiraIntegrationAPI-sub000/schema/query"
)

// DriverName is the database/sql driver name to open SQLite databases with.
const DriverName = "sqlite"

// ErrNoTable is returned when the schema of a handler names no table.
var ErrNoTable = errors.New("sqlite: schema has no table name")

// Handler stores the items of a resource in a SQLite table.
type Handler struct {
	db      *sql.DB
	table   string
	schema  *schema.Schema
	columns []string
}

// NewHandler creates a handler for the table of the resource described by s.
// The columns of the table are the fields of s.
func NewHandler(db *sql.DB, s *schema.Schema) *Handler {
	return &Handler{
		db:      db,
		table:   s.TableName(),
		schema:  s,
		columns: s.FieldNames(),
	}
}

// Open opens a SQLite database. In memory databases are restricted to a
// single connection as each connection gets its own database.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dsn)
	if err != nil {
		return nil, err
	}
	if strings.Contains(dsn, ":memory:") {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// CreateTable creates the table of the resource if it does not exist.
func (h *Handler) CreateTable(ctx context.Context) error {
	if h.table == "" {
		return ErrNoTable
	}
	defs := make([]string, 0, len(h.columns))
	for _, c := range h.columns {
		defs = append(defs, quote(c)+columnType(c, h.schema.Fields[c]))
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(h.table), strings.Join(defs, ", "))
	if _, err := h.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("sqlite: create table %s: %w", h.table, err)
	}
	return nil
}

func columnType(name string, f schema.Field) string {
	switch {
	case name == "id":
		return " INTEGER PRIMARY KEY"
	case f.ArrayFilterable:
		return " TEXT"
	case f.Type == schema.Number:
		return " NUMERIC"
	case f.Type == schema.Text, f.Type == schema.Date:
		return " TEXT"
	}
	return ""
}

// Insert stores new items in a single transaction.
func (h *Handler) Insert(ctx context.Context, items []*resource.Item) (err error) {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()
	cols := make([]string, 0, len(h.columns))
	marks := make([]string, 0, len(h.columns))
	for _, c := range h.columns {
		cols = append(cols, quote(c))
		marks = append(marks, "?")
	}
	stmt := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(h.table), strings.Join(cols, ", "), strings.Join(marks, ", "))
	for _, item := range items {
		args := make([]interface{}, 0, len(h.columns))
		for _, c := range h.columns {
			v, err := h.encode(c, item.Payload[c])
			if err != nil {
				return err
			}
			args = append(args, v)
		}
		if _, err = tx.ExecContext(ctx, stmt, args...); err != nil {
			if strings.Contains(err.Error(), "UNIQUE constraint failed") {
				err = resource.ErrConflict
			}
			return err
		}
	}
	return tx.Commit()
}

// encode converts a payload value into its stored form.
func (h *Handler) encode(column string, v interface{}) (interface{}, error) {
	if v == nil {
		return nil, nil
	}
	if h.schema.Fields[column].ArrayFilterable {
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("sqlite: encode %s: %w", column, err)
		}
		return string(b), nil
	}
	if t, ok := v.(time.Time); ok {
		return t.UTC().Format(query.TimestampFormat), nil
	}
	return v, nil
}

// decode converts a scanned value into its payload form.
func (h *Handler) decode(column string, v interface{}) (interface{}, error) {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if s, ok := v.(string); ok && h.schema.Fields[column].ArrayFilterable {
		var list []interface{}
		if err := json.Unmarshal([]byte(s), &list); err != nil {
			return nil, fmt.Errorf("sqlite: decode %s: %w", column, err)
		}
		return list, nil
	}
	return v, nil
}

// Find implements resource.Storer interface.
func (h *Handler) Find(ctx context.Context, p *resource.Plan) (*resource.ItemList, error) {
	where, args, err := h.where(p.Predicate)
	if err != nil {
		return nil, err
	}
	list := &resource.ItemList{Items: []*resource.Item{}}
	count := fmt.Sprintf("SELECT COUNT(*) FROM %s%s", quote(h.table), where)
	if err := h.db.QueryRowContext(ctx, count, args...).Scan(&list.Total); err != nil {
		return nil, err
	}
	orderBy, err := h.orderBy(p.Sort)
	if err != nil {
		return nil, err
	}
	cols := make([]string, 0, len(h.columns))
	for _, c := range h.columns {
		cols = append(cols, quote(c))
	}
	stmt := fmt.Sprintf("SELECT %s FROM %s%s%s", strings.Join(cols, ", "), quote(h.table), where, orderBy)
	if w := p.Window; w != nil {
		offset := w.Offset
		if offset < 0 {
			offset = 0
		}
		if offset >= list.Total {
			return list, nil
		}
		stmt += " LIMIT ? OFFSET ?"
		args = append(args, w.Limit, offset)
	}
	rows, err := h.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		values := make([]interface{}, len(h.columns))
		ptrs := make([]interface{}, len(h.columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		payload := make(map[string]interface{}, len(h.columns))
		for i, c := range h.columns {
			if payload[c], err = h.decode(c, values[i]); err != nil {
				return nil, err
			}
		}
		list.Items = append(list.Items, &resource.Item{ID: payload["id"], Payload: payload})
	}
	return list, rows.Err()
}
