package userdata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/dmitrijs2005/fingergate/internal/filex"
)

// FileRepository keeps one JSON file per user in a directory, named
// "<username>_data.json" with the username path-escaped.
type FileRepository struct {
	dir string
}

// NewFileRepository creates dir if needed.
func NewFileRepository(dir string) (*FileRepository, error) {
	abs, err := filex.EnsureDir(dir)
	if err != nil {
		return nil, err
	}
	return &FileRepository{dir: abs}, nil
}

// Path returns the file backing username's record.
func (r *FileRepository) Path(username string) string {
	return filepath.Join(r.dir, url.PathEscape(username)+"_data.json")
}

func (r *FileRepository) Get(ctx context.Context, username string) (*models.UserDataRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.Path(username))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read user data for %q: %w", username, err)
	}
	return decodeRecord(data, username)
}

func (r *FileRepository) Put(ctx context.Context, rec *models.UserDataRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encodeRecord(rec)
	if err != nil {
		return fmt.Errorf("encode user data for %q: %w", rec.Username, err)
	}
	if err := filex.WriteFileAtomic(r.Path(rec.Username), data, 0o600); err != nil {
		return fmt.Errorf("write user data for %q: %w", rec.Username, err)
	}
	return nil
}
