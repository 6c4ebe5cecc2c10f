package report

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"

	_ "modernc.org/sqlite"

	"github.com/gael12334/hexchunk/chunk"
	"github.com/gael12334/hexchunk/pkg/types"
)

// SQLiteSink stores records in a runs table, one row per record, in
// emission order.
type SQLiteSink struct {
	db   *sql.DB
	ins  *sql.Stmt
	seq  int64
	path string
}

func createSQLite(path string) (*SQLiteSink, error) {
	// A report is never appended to; start from an empty database.
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, types.SinkIO("remove '"+path+"'", err)
	}
	// synchronous=FULL is applied to every connection opened from the DSN.
	db, err := sql.Open("sqlite", path+"?_pragma=synchronous(FULL)")
	if err != nil {
		return nil, types.SinkIO("open '"+path+"'", err)
	}
	db.SetMaxOpenConns(1)
	s := &SQLiteSink{db: db, path: path}
	if err := s.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, types.SinkIO("init '"+path+"'", err)
	}
	return s, nil
}

func (s *SQLiteSink) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `
CREATE TABLE runs (
	seq INTEGER PRIMARY KEY,
	kind TEXT NOT NULL,
	pos INTEGER NOT NULL,
	chunks INTEGER NOT NULL DEFAULT 0,
	bytes INTEGER NOT NULL DEFAULT 0
)`); err != nil {
		return err
	}
	ins, err := s.db.PrepareContext(ctx,
		"INSERT INTO runs(seq, kind, pos, chunks, bytes) VALUES(?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	s.ins = ins
	return nil
}

// Append inserts rec. Each insert commits on its own.
func (s *SQLiteSink) Append(rec chunk.Record) error {
	if s.db == nil {
		return types.SinkIO("append", os.ErrClosed)
	}
	s.seq++
	if _, err := s.ins.Exec(s.seq, rec.Kind.String(), rec.Offset, rec.Chunks, rec.Bytes); err != nil {
		s.seq--
		return types.SinkIO("insert record", err)
	}
	return nil
}

// Close releases the database.
func (s *SQLiteSink) Close() error {
	if s.db == nil {
		return nil
	}
	_ = s.ins.Close()
	err := s.db.Close()
	s.db = nil
	return types.SinkIO("close '"+s.path+"'", err)
}
