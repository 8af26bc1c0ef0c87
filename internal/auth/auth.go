// Package auth verifies account credentials and registers new accounts.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"besfit/internal/models"
	"besfit/internal/util"
)

type Reason string

const (
	MissingFields Reason = "missing_fields"
	InvalidInput  Reason = "invalid_input"
	NoSuchAccount Reason = "no_such_account"
	WrongSecret   Reason = "wrong_secret"
	AccountExists Reason = "account_exists"
	ServerError   Reason = "server_error"
)

var messages = map[Reason]string{
	MissingFields: "please fill in all fields",
	InvalidInput:  "invalid input",
	NoSuchAccount: "username/email combination not found",
	WrongSecret:   "username/email or password is incorrect",
	AccountExists: "this username or email is already in use",
	ServerError:   "server error, please try again",
}

// Error is the only error type the Gateway returns. Message is safe to show
// to users; Err keeps the internal cause for logs.
type Error struct {
	Reason  Reason
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("auth %s", e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(r Reason, err error) *Error {
	return &Error{Reason: r, Message: messages[r], Err: err}
}

// ReasonOf returns the Reason of an *Error in err's chain, or "".
func ReasonOf(err error) Reason {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return ""
}

// Account is the identity returned by a successful Authenticate.
type Account struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
}

type Gateway struct {
	DB         *gorm.DB
	BcryptCost int
}

func NewGateway(db *gorm.DB, bcryptCost int) *Gateway {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Gateway{DB: db, BcryptCost: bcryptCost}
}

// Authenticate checks that username and email belong to the same account and
// that password matches its hash.
func (g *Gateway) Authenticate(ctx context.Context, username, email, password string) (Account, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return Account{}, newError(MissingFields, nil)
	}

	var user models.User
	err := g.DB.WithContext(ctx).
		Where("username = ? AND email = ?", username, email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Account{}, newError(NoSuchAccount, nil)
	}
	if err != nil {
		return Account{}, newError(ServerError, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return Account{}, newError(WrongSecret, nil)
		}
		return Account{}, newError(ServerError, err)
	}
	return Account{ID: user.ID, Username: user.Username, FirstName: user.FirstName}, nil
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

func (in *RegisterInput) normalize() {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
}

func (in RegisterInput) validate() *Error {
	if in.FirstName == "" || in.LastName == "" || in.Username == "" || in.Email == "" || in.Password == "" {
		return newError(MissingFields, nil)
	}
	for _, check := range []func() error{
		func() error { return util.ValidateName(in.FirstName) },
		func() error { return util.ValidateName(in.LastName) },
		func() error { return util.ValidateUsername(in.Username) },
		func() error { return util.ValidateEmail(in.Email) },
		func() error { return util.ValidatePassword(in.Password) },
	} {
		if err := check(); err != nil {
			return &Error{Reason: InvalidInput, Message: err.Error(), Err: err}
		}
	}
	return nil
}

// Register creates an account. Username and email must both be unused.
func (g *Gateway) Register(ctx context.Context, in RegisterInput) (Account, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return Account{}, err
	}

	db := g.DB.WithContext(ctx)
	var count int64
	if err := db.Model(&models.User{}).
		Where("username = ? OR email = ?", in.Username, in.Email).
		Count(&count).Error; err != nil {
		return Account{}, newError(ServerError, err)
	}
	if count > 0 {
		return Account{}, newError(AccountExists, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), g.BcryptCost)
	if err != nil {
		return Account{}, newError(ServerError, err)
	}

	user := models.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return Account{}, newError(AccountExists, err)
		}
		return Account{}, newError(ServerError, err)
	}
	return Account{ID: user.ID, Username: user.Username, FirstName: user.FirstName}, nil
}

// ChangePassword replaces the hash after verifying the current password.
func (g *Gateway) ChangePassword(ctx context.Context, accountID uint, current, next string) error {
	if current == "" || next == "" {
		return newError(MissingFields, nil)
	}
	if err := util.ValidatePassword(next); err != nil {
		return &Error{Reason: InvalidInput, Message: err.Error(), Err: err}
	}

	db := g.DB.WithContext(ctx)
	var user models.User
	if err := db.First(&user, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newError(NoSuchAccount, nil)
		}
		return newError(ServerError, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return newError(WrongSecret, nil)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), g.BcryptCost)
	if err != nil {
		return newError(ServerError, err)
	}
	if err := db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		return newError(ServerError, err)
	}
	return nil
}
