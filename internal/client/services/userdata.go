package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/fingergate/internal/client/models"
	"github.com/dmitrijs2005/fingergate/internal/client/repositories/userdata"
	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/dmitrijs2005/fingergate/internal/logging"
	"github.com/dmitrijs2005/fingergate/internal/syncx"
)

// UserDataService reads and writes the record of the session's user.
//
// Load never fails because of storage: a missing, unreadable or corrupt
// record is reported as models.NoData. Save rejects blank content with
// common.ErrEmptyContent and reports backend failures as
// common.ErrStorageUnavailable. Both require a live session
// (common.ErrNoSession otherwise).
type UserDataService interface {
	Load(ctx context.Context, sess *models.Session) (string, error)
	Save(ctx context.Context, sess *models.Session, content string) error
}

type userDataService struct {
	repo     userdata.Repository
	sessions SessionVerifier
	locks    syncx.KeyedMutex
	log      logging.Logger
}

func NewUserDataService(repo userdata.Repository, sessions SessionVerifier, log logging.Logger) UserDataService {
	if log == nil {
		log = logging.NewNop()
	}
	return &userDataService{repo: repo, sessions: sessions, log: log}
}

func (s *userDataService) Load(ctx context.Context, sess *models.Session) (string, error) {
	if err := s.sessions.Verify(sess); err != nil {
		return models.NoData, err
	}

	unlock := s.locks.Lock(sess.Username)
	defer unlock()

	rec, err := s.repo.Get(ctx, sess.Username)
	switch {
	case err == nil:
		return rec.Content, nil
	case errors.Is(err, common.ErrNotFound):
		return models.NoData, nil
	case errors.Is(err, userdata.ErrCorrupt):
		s.log.Warn(ctx, "user data record is corrupt", "username", sess.Username, "err", err)
		return models.NoData, nil
	default:
		s.log.Warn(ctx, "user data unavailable", "username", sess.Username, "err", err)
		return models.NoData, nil
	}
}

func (s *userDataService) Save(ctx context.Context, sess *models.Session, content string) error {
	if err := s.sessions.Verify(sess); err != nil {
		return err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return common.ErrEmptyContent
	}

	unlock := s.locks.Lock(sess.Username)
	defer unlock()

	rec := &models.UserDataRecord{AccountID: sess.AccountID, Username: sess.Username, Content: content}
	if err := s.repo.Put(ctx, rec); err != nil {
		s.log.Error(ctx, "save user data", "username", sess.Username, "err", err)
		return fmt.Errorf("%w: %v", common.ErrStorageUnavailable, err)
	}
	s.log.Info(ctx, "user data saved", "username", sess.Username, "account_id", sess.AccountID)
	return nil
}
