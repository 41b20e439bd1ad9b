package crud

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

// Export writes every row of table to path, one JSON object per line. The
// file is replaced atomically. It returns the number of rows written.
func (e *Engine) Export(ctx context.Context, sess types.Session, table, path string) (int, error) {
	s, err := types.SchemaFor(table)
	if err != nil {
		return 0, err
	}
	query := fmt.Sprintf("SELECT %s FROM %s", quoteAll(s.ColumnNames()), quote(table))
	rows, err := scanAll(ctx, sess, sess, table, query)
	if err != nil {
		return 0, err
	}

	records := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return 0, fmt.Errorf("marshaling %s %s: %w", table, row.Key(), err)
		}
		records = append(records, data)
	}
	if err := writeJSONL(path, records); err != nil {
		return 0, err
	}
	e.log.Info().Str("table", table).Str("path", path).Int("rows", len(records)).Msg("exported")
	return len(records), nil
}

// Import creates one row of table per record in the JSONL file at path.
// Blank and malformed lines are skipped. Every record goes through Create,
// so each passes the same validation and integrity rules; the first failure
// stops the import and earlier records stay committed.
func (e *Engine) Import(ctx context.Context, sess types.Session, table, path string) (int, error) {
	if _, err := types.SchemaFor(table); err != nil {
		return 0, err
	}
	records, err := readJSONL(path)
	if err != nil {
		return 0, err
	}

	imported := 0
	for i, rec := range records {
		payload, err := types.ParsePayload(rec)
		if err != nil {
			return imported, fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, err := e.Create(ctx, sess, table, payload); err != nil {
			return imported, fmt.Errorf("record %d: %w", i+1, err)
		}
		imported++
	}
	e.log.Info().Str("table", table).Str("path", path).Int("rows", imported).Msg("imported")
	return imported, nil
}

// readJSONL returns each non-empty, parseable line of the file.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		cp := make([]byte, len(line))
		copy(cp, line)
		records = append(records, cp)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL writes records through a temp file in the same directory that
// is synced and then renamed over path.
func writeJSONL(path string, records []json.RawMessage) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err := w.Write(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
