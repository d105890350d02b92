// Package userdata implements backends for the per-user data record: one
// free-text record per username, replaced wholesale on every save.
package userdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fingergate/internal/client/models"
)

// ErrCorrupt reports a stored record that exists but cannot be decoded or
// belongs to a different username.
var ErrCorrupt = errors.New("corrupt user data record")

// Repository stores UserDataRecords keyed by username.
//
// Get returns common.ErrNotFound when nothing was saved for username and
// ErrCorrupt when the stored bytes are unusable. Put replaces the record
// atomically: a concurrent or subsequent Get sees either the previous record
// or the new one in full.
type Repository interface {
	Get(ctx context.Context, username string) (*models.UserDataRecord, error)
	Put(ctx context.Context, rec *models.UserDataRecord) error
}

func encodeRecord(rec *models.UserDataRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeRecord(data []byte, username string) (*models.UserDataRecord, error) {
	var rec models.UserDataRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if rec.Username != username {
		return nil, fmt.Errorf("%w: record belongs to %q", ErrCorrupt, rec.Username)
	}
	return &rec, nil
}
