package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"besfit/internal/models"
	"besfit/internal/util"
)

// ErrSessionRevoked is returned for a token whose session was logged out or
// never recorded.
var ErrSessionRevoked = errors.New("session revoked")

// Tokens issues and revokes login tokens. Every token is backed by a
// models.Session row keyed by its jti.
type Tokens struct {
	DB     *gorm.DB
	Secret string
	Issuer string
	TTL    time.Duration
}

func NewTokens(db *gorm.DB, secret, issuer string, ttlHours int) *Tokens {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &Tokens{DB: db, Secret: secret, Issuer: issuer, TTL: time.Duration(ttlHours) * time.Hour}
}

// Issue signs a token for the account, records its session and stamps the
// login time and IP.
func (t *Tokens) Issue(ctx context.Context, accountID uint, ip string) (string, time.Time, error) {
	token, claims, err := util.GenerateToken(t.Secret, t.Issuer, accountID, t.TTL)
	if err != nil {
		return "", time.Time{}, err
	}
	expires := claims.ExpiresAt.Time

	err = t.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.Session{ID: claims.ID, UserID: accountID, ExpiresAt: expires}).Error; err != nil {
			return err
		}
		now := time.Now()
		return tx.Model(&models.User{}).Where("id = ?", accountID).
			Updates(map[string]interface{}{"last_login_at": now, "last_login_ip": ip}).Error
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("record session: %w", err)
	}
	return token, expires, nil
}

// Verify parses the token and checks its session is still active.
func (t *Tokens) Verify(ctx context.Context, token string) (*util.Claims, error) {
	claims, err := util.ParseToken(t.Secret, token)
	if err != nil {
		return nil, err
	}

	var s models.Session
	err = t.DB.WithContext(ctx).Where("id = ? AND user_id = ?", claims.ID, claims.UserID).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionRevoked
	}
	if err != nil {
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if s.Revoked || time.Now().After(s.ExpiresAt) {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

// Revoke marks the session as logged out.
func (t *Tokens) Revoke(ctx context.Context, sessionID string) error {
	err := t.DB.WithContext(ctx).Model(&models.Session{}).
		Where("id = ?", sessionID).Update("revoked", true).Error
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// PurgeExpired deletes sessions that expired before now.
func (t *Tokens) PurgeExpired(ctx context.Context) (int64, error) {
	res := t.DB.WithContext(ctx).Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
