package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const RoleSeller = "SELLER"

var ErrInvalidCredentials = errors.New("invalid credentials")

// AccessTokenIssuer signs tokens for an authenticated subject.
type AccessTokenIssuer interface {
	Issue(subject string, role string, now time.Time) (token string, expiresAt time.Time, err error)
}

type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier { return &BcryptPasswordVerifier{} }

func (v *BcryptPasswordVerifier) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

// SellerAuthUsecase logs in the single canteen seller configured by env.
type SellerAuthUsecase struct {
	email        string
	passwordHash string
	verifier     PasswordVerifier
	issuer       AccessTokenIssuer
	clock        Clock
	logger       *slog.Logger
}

func NewSellerAuthUsecase(
	email string,
	passwordHash string,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
	logger *slog.Logger,
) *SellerAuthUsecase {
	return &SellerAuthUsecase{
		email:        strings.ToLower(strings.TrimSpace(email)),
		passwordHash: passwordHash,
		verifier:     verifier,
		issuer:       issuer,
		clock:        clock,
		logger:       logger,
	}
}

type SellerLoginOutput struct {
	Token     string
	ExpiresAt time.Time
}

func (u *SellerAuthUsecase) Login(ctx context.Context, email, password string) (SellerLoginOutput, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return SellerLoginOutput{}, NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}
	if u.email == "" || u.passwordHash == "" {
		return SellerLoginOutput{}, NewHTTPError(http.StatusServiceUnavailable, "Seller login is not configured")
	}

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(u.email)) == 1
	//bcrypt runs even when the email differs
	passOK := u.verifier.Verify(password, u.passwordHash)
	if !emailOK || !passOK {
		u.logger.Warn("seller login failed", "email", email)
		return SellerLoginOutput{}, wrapHTTPError(http.StatusUnauthorized, "Invalid Credentials", ErrInvalidCredentials)
	}

	token, exp, err := u.issuer.Issue(u.email, RoleSeller, u.clock.Now())
	if err != nil {
		return SellerLoginOutput{}, wrapHTTPError(http.StatusInternalServerError, "internal error", err)
	}
	u.logger.Info("seller logged in", "email", email)
	return SellerLoginOutput{Token: token, ExpiresAt: exp}, nil
}
