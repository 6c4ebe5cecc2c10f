package report

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gael12334/hexchunk/chunk"
)

// ReadText parses a text report.
func ReadText(r io.Reader) ([]chunk.Record, error) {
	var recs []chunk.Record
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		rec, err := chunk.ParseRecord(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		recs = append(recs, rec)
	}
	return recs, sc.Err()
}

// ReadTextFile parses the text report at path.
func ReadTextFile(path string) ([]chunk.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadText(f)
}

// ReadSQLite loads the records of a SQLite report in emission order.
func ReadSQLite(ctx context.Context, path string) ([]chunk.Record, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, "SELECT kind, pos, chunks, bytes FROM runs ORDER BY seq")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []chunk.Record
	for rows.Next() {
		var (
			kind string
			rec  chunk.Record
		)
		if err := rows.Scan(&kind, &rec.Offset, &rec.Chunks, &rec.Bytes); err != nil {
			return nil, err
		}
		if rec.Kind, err = chunk.ParseRecordKind(kind); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// ReadFile loads a report of either format.
func ReadFile(ctx context.Context, path string, format Format) ([]chunk.Record, error) {
	if format == FormatSQLite {
		return ReadSQLite(ctx, path)
	}
	return ReadTextFile(path)
}
