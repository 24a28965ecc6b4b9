package sink

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

const fileExt = ".log"

// FileSink keeps every entry in "<dir>/<type>-<YYYY-MM-DD>.log".
type FileSink struct {
	dir string
	mu  sync.Mutex
}

func NewFileSink(dir string) (*FileSink, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("sink directory is required")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create sink directory: %w", err)
	}

	return &FileSink{dir: dir}, nil
}

// Append writes one line, creating the entry file if it does not exist.
func (s *FileSink) Append(ctx context.Context, kind string, at time.Time, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create sink directory: %w", err)
	}

	f, err := os.OpenFile(s.path(EntryID(kind, at)), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open entry: %w", err)
	}

	if _, err := f.WriteString(FormatLine(at, message) + "\n"); err != nil {
		_ = f.Close()
		return fmt.Errorf("write entry: %w", err)
	}

	return f.Close()
}

func (s *FileSink) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read sink directory: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), fileExt))
	}
	sort.Strings(ids)

	return ids, nil
}

func (s *FileSink) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid entry id %q", id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path(id)); err != nil {
		return fmt.Errorf("remove entry %q: %w", id, err)
	}

	return nil
}

func (s *FileSink) path(id string) string {
	return filepath.Join(s.dir, id+fileExt)
}
