// Package users implements account registration, verification, and login.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/imararent/imararent/internal/common"
	"github.com/imararent/imararent/internal/logging"
	"github.com/imararent/imararent/internal/server/auth"
	"github.com/imararent/imararent/internal/server/codes"
	"github.com/imararent/imararent/internal/server/config"
	"github.com/imararent/imararent/internal/server/mailer"
	"github.com/imararent/imararent/internal/server/models"
	usersrepo "github.com/imararent/imararent/internal/server/repositories/users"
)

const codeLength = 6

// makeCode and timeSince are indirections so tests can pin the issued code
// and the clock.
var makeCode = func() (string, error) {
	return common.MakeRandDigits(codeLength)
}

var timeSince = time.Since

type Service struct {
	repo   usersrepo.Repository
	codes  codes.Store
	mailer mailer.Mailer
	logger logging.Logger
	cfg    *config.Config
}

func NewService(repo usersrepo.Repository, codeStore codes.Store, m mailer.Mailer, logger logging.Logger, cfg *config.Config) *Service {
	return &Service{
		repo:   repo,
		codes:  codeStore,
		mailer: m,
		logger: logger,
		cfg:    cfg,
	}
}

// Register creates a pending Tenant account and emails the first
// verification code. A duplicate email returns common.ErrEmailTaken.
func (s *Service) Register(ctx context.Context, name, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleTenant,
		Status:       models.StatusPending,
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return common.ErrEmailTaken
		}
		s.logger.Error(ctx, "error creating user", "error", err)
		return common.ErrInternal
	}

	return s.issueCode(ctx, user.Email)
}

func (s *Service) issueCode(ctx context.Context, email string) error {
	code, err := makeCode()
	if err != nil {
		return common.ErrInternal
	}
	if err := s.codes.Save(ctx, email, code); err != nil {
		s.logger.Error(ctx, "error saving verification code", "error", err)
		return common.ErrInternal
	}
	if err := s.mailer.SendCode(ctx, email, code); err != nil {
		s.logger.Error(ctx, "error delivering verification code", "error", err)
		return common.ErrInternal
	}
	return nil
}

// Login checks the credentials and returns the account with a signed access
// token. Unknown emails and bad passwords are indistinguishable to the
// caller; a pending account returns common.ErrNotVerified.
func (s *Service) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		s.logger.Error(ctx, "error loading user", "error", err)
		return nil, "", common.ErrInternal
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return nil, "", common.ErrUnauthorized
	}

	if user.Status != models.StatusActive {
		return nil, "", common.ErrNotVerified
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role), []byte(s.cfg.SecretKey), s.cfg.AccessTokenValidityDuration)
	if err != nil {
		s.logger.Error(ctx, "error signing token", "error", err)
		return nil, "", common.ErrInternal
	}

	return user, token, nil
}

// Verify checks the emailed code and activates the account. The code store
// reports common.ErrCodeInvalid and common.ErrCodeExpired; both pass
// through unchanged.
func (s *Service) Verify(ctx context.Context, email, code string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrCodeInvalid
		}
		s.logger.Error(ctx, "error loading user", "error", err)
		return common.ErrInternal
	}

	if user.Status == models.StatusActive {
		return nil
	}

	if err := s.codes.Check(ctx, user.Email, code); err != nil {
		if errors.Is(err, common.ErrCodeInvalid) || errors.Is(err, common.ErrCodeExpired) {
			return err
		}
		s.logger.Error(ctx, "error checking verification code", "error", err)
		return common.ErrInternal
	}

	if err := s.repo.SetStatus(ctx, user.ID, models.StatusActive); err != nil {
		s.logger.Error(ctx, "error activating user", "error", err)
		return common.ErrInternal
	}

	s.logger.Info(ctx, "account activated", "email", user.Email)
	return nil
}

// Resend issues a fresh verification code for a pending account, holding the
// configured minimum interval between sends.
func (s *Service) Resend(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrCodeInvalid
		}
		s.logger.Error(ctx, "error loading user", "error", err)
		return common.ErrInternal
	}

	if user.Status == models.StatusActive {
		return common.ErrCodeInvalid
	}

	issued, err := s.codes.LastIssued(ctx, user.Email)
	if err != nil {
		s.logger.Error(ctx, "error reading code issue time", "error", err)
		return common.ErrInternal
	}
	if !issued.IsZero() && timeSince(issued) < s.cfg.ResendMinInterval {
		return common.ErrResendTooSoon
	}

	return s.issueCode(ctx, user.Email)
}

// GetByID loads an account for authenticated requests.
func (s *Service) GetByID(ctx context.Context, id string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	return user, nil
}

// SetAvatarKey records the storage key of an uploaded avatar.
func (s *Service) SetAvatarKey(ctx context.Context, id, key string) error {
	if err := s.repo.SetAvatarKey(ctx, id, key); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrUnauthorized
		}
		return common.ErrInternal
	}
	return nil
}
