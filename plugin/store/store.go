package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-hclog"
	"github.com/saylorsolutions/tokstream/pkg/source"
	"github.com/saylorsolutions/tokstream/pkg/token"
	_ "modernc.org/sqlite"
)

var (
	tablePattern = regexp.MustCompile(`^[\w\d]+(\.[\w\d]+)?$`)
	ErrBadTable  = errors.New("invalid table name")
)

const createTable = `
create table if not exists %s (
	idx integer primary key,
	type integer not null,
	text text not null,
	pos integer not null,
	line integer not null
)`

// SqliteStore records token streams into Sqlite3 tables so they can be
// replayed later, deterministically and as often as needed.
type SqliteStore struct {
	db  *sql.DB
	log hclog.Logger
}

func NewStore(log hclog.Logger, filename string) (*SqliteStore, error) {
	db, err := sql.Open("sqlite", filename)
	if err != nil {
		return nil, err
	}
	log = log.Named("sqlite-token-store")
	return &SqliteStore{
		db:  db,
		log: log,
	}, nil
}

// Record drains src up to its first EOF token, persisting every token into
// the named table in stream order. The EOF itself is not stored: replaying
// the table produces it again at the end.
func (s *SqliteStore) Record(ctx context.Context, src token.Source, table string) error {
	if !tablePattern.MatchString(table) {
		return fmt.Errorf("%w: %s", ErrBadTable, table)
	}
	s.log.Debug("Ensuring the specified table is present", "table", table)
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf(createTable, table)); err != nil {
		source.Drain(src)
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		source.Drain(src)
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "insert into "+table+" (idx, type, text, pos, line) values (?, ?, ?, ?, ?)")
	if err != nil {
		source.Drain(src)
		_ = tx.Rollback()
		return err
	}

	s.log.Debug("Starting record operation", "table", table)
	count := 0
	for {
		tok := src.NextToken()
		if tok.Type() == token.EOF {
			break
		}
		var pos, line int
		if ct, ok := tok.(*token.Common); ok {
			pos, line = ct.Pos, ct.Line
		}
		if _, err := stmt.ExecContext(ctx, count, int(tok.Type()), tok.Text(), pos, line); err != nil {
			source.Drain(src)
			_ = tx.Rollback()
			return err
		}
		count++
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	s.log.Debug("Recorded tokens", "table", table, "count", count)
	return nil
}

// QueryTokens replays a previously recorded table as a token.Source, in
// stream order, ending with EOF tokens.
func (s *SqliteStore) QueryTokens(table string) (token.Source, error) {
	if !tablePattern.MatchString(table) {
		return nil, fmt.Errorf("%w: %s", ErrBadTable, table)
	}
	rows, err := s.db.Query("select type, text, pos, line from " + table + " order by idx")
	if err != nil {
		return nil, err
	}
	return newQuerySource(s.log, table, rows), nil
}

func (s *SqliteStore) Close() error {
	return s.db.Close()
}
