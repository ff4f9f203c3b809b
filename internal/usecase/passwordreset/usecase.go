package passwordreset

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
	"unicode"

	"timesheet-backend/internal/domain/user"
	"timesheet-backend/pkg/id"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const keyPrefix = "reset:"

// Expired tokens are kept this much longer so Verify can tell expired from unknown.
const expiredGrace = 24 * time.Hour

// Structured verification codes returned to clients.
const (
	CodeTokenInvalid = "TOKEN_INVALID"
	CodeTokenExpired = "TOKEN_EXPIRED"
)

var (
	ErrTokenInvalid     = errors.New("reset token is invalid")
	ErrTokenExpired     = errors.New("reset token has expired")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWeakPassword     = errors.New("password must be at least 8 characters with an upper case letter, a lower case letter and a digit")
)

type tokenEntry struct {
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Issued is what the issuer learns. The token itself only reaches the Notifier.
type Issued struct {
	UserID    string    `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Notifier delivers a reset link to the account owner.
type Notifier interface {
	SendResetLink(ctx context.Context, u user.User, token string, expiresAt time.Time) error
}

// LogNotifier records that a link was issued without delivering it. The
// token is never logged.
type LogNotifier struct{ Log *zap.Logger }

func (n LogNotifier) SendResetLink(_ context.Context, u user.User, _ string, expiresAt time.Time) error {
	if n.Log != nil {
		n.Log.Info("reset link ready for delivery", zap.String("user_id", u.ID), zap.Time("expires_at", expiresAt))
	}
	return nil
}

type Verification struct {
	Valid     bool       `json:"valid"`
	Code      string     `json:"code,omitempty"`
	UserID    string     `json:"userId,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type ResetInput struct {
	Password string `json:"password" validate:"required"`
	Confirm  string `json:"confirmPassword" validate:"required"`
}

type Usecase struct {
	rdb    *redis.Client
	users  user.Repository
	notify Notifier
	ttl    time.Duration
	log    *zap.Logger
	cost   int
	now    func() time.Time
}

func NewUsecase(rdb *redis.Client, users user.Repository, notify Notifier, ttl time.Duration, log *zap.Logger) *Usecase {
	if log == nil {
		log = zap.NewNop()
	}
	if notify == nil {
		notify = LogNotifier{Log: log}
	}
	return &Usecase{rdb: rdb, users: users, notify: notify, ttl: ttl, log: log, cost: bcrypt.DefaultCost, now: time.Now}
}

// Issue creates a token for userID and hands it to the notifier. A token
// the notifier could not deliver is withdrawn.
func (u *Usecase) Issue(ctx context.Context, userID string) (*Issued, error) {
	owner, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	token := id.NewToken()
	entry := tokenEntry{UserID: userID, ExpiresAt: u.now().UTC().Add(u.ttl)}
	payload, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	if err := u.rdb.Set(ctx, keyPrefix+token, payload, u.ttl+expiredGrace).Err(); err != nil {
		return nil, fmt.Errorf("store reset token: %w", err)
	}
	if err := u.notify.SendResetLink(ctx, *owner, token, entry.ExpiresAt); err != nil {
		if derr := u.rdb.Del(ctx, keyPrefix+token).Err(); derr != nil {
			u.log.Warn("undelivered reset token not withdrawn", zap.String("user_id", userID), zap.Error(derr))
		}
		return nil, fmt.Errorf("deliver reset link: %w", err)
	}
	u.log.Info("reset token issued", zap.String("user_id", userID), zap.Time("expires_at", entry.ExpiresAt))
	return &Issued{UserID: userID, ExpiresAt: entry.ExpiresAt}, nil
}

func (u *Usecase) Verify(ctx context.Context, token string) (*Verification, error) {
	entry, err := u.lookup(ctx, token)
	switch {
	case errors.Is(err, ErrTokenInvalid):
		return &Verification{Code: CodeTokenInvalid}, nil
	case errors.Is(err, ErrTokenExpired):
		return &Verification{Code: CodeTokenExpired, ExpiresAt: &entry.ExpiresAt}, nil
	case err != nil:
		return nil, err
	}
	return &Verification{Valid: true, UserID: entry.UserID, ExpiresAt: &entry.ExpiresAt}, nil
}

// Reset sets a new password and consumes the token. The token is claimed
// with GETDEL so only one of several concurrent resets wins.
func (u *Usecase) Reset(ctx context.Context, token string, in ResetInput) error {
	entry, err := u.lookup(ctx, token)
	if err != nil {
		return err
	}
	if in.Password != in.Confirm {
		return ErrPasswordMismatch
	}
	if !StrongEnough(in.Password) {
		return ErrWeakPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return err
	}
	raw, err := u.rdb.GetDel(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrTokenInvalid
	}
	if err != nil {
		return err
	}
	if err := u.users.UpdatePasswordHash(ctx, entry.UserID, string(hash)); err != nil {
		// give the token back so the owner can retry
		if rerr := u.rdb.Set(ctx, keyPrefix+token, raw, entry.ExpiresAt.Sub(u.now())+expiredGrace).Err(); rerr != nil {
			u.log.Warn("reset token not restored", zap.String("user_id", entry.UserID), zap.Error(rerr))
		}
		return err
	}
	u.log.Info("password reset", zap.String("user_id", entry.UserID))
	return nil
}

// Invalidate removes the token. Unknown tokens are not an error.
func (u *Usecase) Invalidate(ctx context.Context, token string) error {
	return u.rdb.Del(ctx, keyPrefix+token).Err()
}

func (u *Usecase) lookup(ctx context.Context, token string) (tokenEntry, error) {
	var e tokenEntry
	if token == "" {
		return e, ErrTokenInvalid
	}
	raw, err := u.rdb.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return e, ErrTokenInvalid
	}
	if err != nil {
		return e, err
	}
	if err := json.Unmarshal(raw, &e); err != nil || e.UserID == "" {
		return e, ErrTokenInvalid
	}
	if !u.now().Before(e.ExpiresAt) {
		return e, ErrTokenExpired
	}
	return e, nil
}

// StrongEnough applies the password policy: at least 8 characters with an
// upper case letter, a lower case letter and a digit.
func StrongEnough(pw string) bool {
	if len([]rune(pw)) < 8 {
		return false
	}
	var upper, lower, digit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	return upper && lower && digit
}
