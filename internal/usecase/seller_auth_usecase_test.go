package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type IssuerMock struct{ mock.Mock }

func (m *IssuerMock) Issue(subject, role string, now time.Time) (string, time.Time, error) {
	args := m.Called(subject, role, now)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func newSellerAuth(t *testing.T, issuer AccessTokenIssuer) *SellerAuthUsecase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)

	clock := fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return NewSellerAuthUsecase("Seller@Canteen.test", string(hash), NewBcryptPasswordVerifier(), issuer, clock,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSellerAuthUsecase_Login(t *testing.T) {
	issuer := new(IssuerMock)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer.On("Issue", "seller@canteen.test", RoleSeller, now).Return("signed.jwt", now.Add(7*24*time.Hour), nil).Once()

	out, err := newSellerAuth(t, issuer).Login(context.Background(), " seller@canteen.TEST ", "open-sesame")
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt", out.Token)
	assert.Equal(t, now.Add(7*24*time.Hour), out.ExpiresAt)
	issuer.AssertExpectations(t)
}

func TestSellerAuthUsecase_Login_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		code     int
	}{
		{"wrong password", "seller@canteen.test", "guess", http.StatusUnauthorized},
		{"wrong email", "other@canteen.test", "open-sesame", http.StatusUnauthorized},
		{"missing password", "seller@canteen.test", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := new(IssuerMock)
			_, err := newSellerAuth(t, issuer).Login(context.Background(), tt.email, tt.password)

			he, ok := AsHTTPError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, he.Status)
			issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSellerAuthUsecase_Login_IssuerFailure(t *testing.T) {
	issuer := new(IssuerMock)
	issuer.On("Issue", mock.Anything, mock.Anything, mock.Anything).Return("", time.Time{}, errors.New("boom")).Once()

	_, err := newSellerAuth(t, issuer).Login(context.Background(), "seller@canteen.test", "open-sesame")
	he, ok := AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)
}
