package services

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-blog/internal/common"
	"github.com/sbilibin2017/gw-blog/internal/logger"
	"github.com/sbilibin2017/gw-blog/internal/models"
)

// AccountReader defines read-only operations for accounts.
type AccountReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.AccountDB, error)
	GetByLogin(ctx context.Context, login string) (*models.AccountDB, error)
}

// AccountWriter defines write operations for accounts.
type AccountWriter interface {
	Save(ctx context.Context, account *models.AccountDB) error
}

// AccountCache caches public account records.
type AccountCache interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Account, error)
	Set(ctx context.Context, account *models.Account) error
}

// TokenGenerator issues bearer tokens for an account.
type TokenGenerator interface {
	Generate(ctx context.Context, accountID uuid.UUID) (string, error)
}

// PasswordHasher creates and checks password digests.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, digest string) bool
}

// AuthService handles registration, login and account lookup.
type AuthService struct {
	reader    AccountReader
	writer    AccountWriter
	cache     AccountCache
	tokens    TokenGenerator
	hasher    PasswordHasher
	publisher *eventPublisher

	dummyOnce   sync.Once
	dummyDigest string
}

// NewAuthService creates a new AuthService instance. cache and kafkaWriter may be nil.
func NewAuthService(
	reader AccountReader,
	writer AccountWriter,
	cache AccountCache,
	tokens TokenGenerator,
	hasher PasswordHasher,
	kafkaWriter KafkaWriter,
) *AuthService {
	return &AuthService{
		reader:    reader,
		writer:    writer,
		cache:     cache,
		tokens:    tokens,
		hasher:    hasher,
		publisher: newEventPublisher(kafkaWriter),
	}
}

// Register creates an account and returns it with a fresh token.
func (svc *AuthService) Register(ctx context.Context, username, email, password, confirmPassword string) (*models.AuthResult, error) {
	if err := validateRegistration(username, email, password, confirmPassword); err != nil {
		return nil, err
	}

	digest, err := svc.hasher.Hash(ctx, password)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to hash password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &models.AccountDB{
		AccountID:    uuid.New(),
		Username:     strings.TrimSpace(username),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: digest,
	}

	if err := svc.writer.Save(ctx, account); err != nil {
		if cv, ok := common.AsConstraintViolation(err); ok {
			logger.FromContext(ctx).Infow("registration conflict", "field", cv.Field, "constraint", cv.Constraint)
			return nil, &ConflictError{Field: cv.Field}
		}
		logger.FromContext(ctx).Errorw("failed to save account", "username", account.Username, "error", err)
		return nil, err
	}

	token, err := svc.tokens.Generate(ctx, account.AccountID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to generate JWT", "account_id", account.AccountID, "error", err)
		return nil, err
	}

	public := account.Public()
	svc.cacheAccount(ctx, public)
	svc.publisher.publish(ctx, models.EventAccountRegistered, account.AccountID, account.AccountID)

	return &models.AuthResult{User: public, Token: token}, nil
}

// Authenticate checks a username or email with its password and returns
// the account with a fresh token. Unknown logins and wrong passwords both
// yield ErrInvalidCredentials.
func (svc *AuthService) Authenticate(ctx context.Context, login, password string) (*models.AuthResult, error) {
	if err := validateLogin(login, password); err != nil {
		return nil, err
	}

	account, err := svc.reader.GetByLogin(ctx, strings.TrimSpace(login))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			// keep the response time close to a real password check
			svc.hasher.Verify(ctx, password, svc.dummy(ctx))
			logger.FromContext(ctx).Infow("login failed", "reason", "unknown account")
			return nil, ErrInvalidCredentials
		}
		logger.FromContext(ctx).Errorw("failed to get account", "error", err)
		return nil, err
	}

	if !svc.hasher.Verify(ctx, password, account.PasswordHash) {
		logger.FromContext(ctx).Infow("login failed", "reason", "password mismatch", "account_id", account.AccountID)
		return nil, ErrInvalidCredentials
	}

	token, err := svc.tokens.Generate(ctx, account.AccountID)
	if err != nil {
		logger.FromContext(ctx).Errorw("failed to generate JWT", "account_id", account.AccountID, "error", err)
		return nil, err
	}

	return &models.AuthResult{User: account.Public(), Token: token}, nil
}

// GetByID returns the public account for a textual id.
func (svc *AuthService) GetByID(ctx context.Context, id string) (*models.Account, error) {
	accountID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, ErrInvalidID
	}
	return svc.Resolve(ctx, accountID)
}

// Resolve returns the public account for accountID, reading through the cache.
func (svc *AuthService) Resolve(ctx context.Context, accountID uuid.UUID) (*models.Account, error) {
	if svc.cache != nil {
		cached, err := svc.cache.Get(ctx, accountID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			logger.FromContext(ctx).Warnw("account cache unavailable", "account_id", accountID, "error", err)
		}
	}

	account, err := svc.reader.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, ErrAccountNotFound
		}
		logger.FromContext(ctx).Errorw("failed to get account", "account_id", accountID, "error", err)
		return nil, err
	}

	public := account.Public()
	svc.cacheAccount(ctx, public)
	return public, nil
}

func (svc *AuthService) cacheAccount(ctx context.Context, account *models.Account) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Set(ctx, account); err != nil {
		logger.FromContext(ctx).Warnw("failed to cache account", "account_id", account.ID, "error", err)
	}
}

// dummy returns a digest used to spend bcrypt time on unknown logins.
func (svc *AuthService) dummy(ctx context.Context) string {
	svc.dummyOnce.Do(func() {
		digest, err := svc.hasher.Hash(ctx, uuid.NewString())
		if err != nil {
			logger.FromContext(ctx).Errorw("failed to hash dummy password", "error", err)
			return
		}
		svc.dummyDigest = digest
	})
	return svc.dummyDigest
}
