package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/CryptoYield/CryptoYield/internal/db/models"
	"github.com/CryptoYield/CryptoYield/internal/uniuri"
	"github.com/CryptoYield/CryptoYield/internal/web/session"
)

// TokenType is the token_type of issued tokens.
const TokenType = "bearer"

// Claims are the JWT claims of an access token. ID (jti) names the session.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Token is the response of a successful login.
type Token struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	User        *models.Account `json:"user"`
}

// Service issues and resolves bearer tokens.
type Service struct {
	local  *LocalProvider
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService creates a new auth service.
func NewService(db *gorm.DB, secret []byte, ttl time.Duration) *Service {
	return &Service{
		local:  NewLocalProvider(db),
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Login authenticates email and password and issues a token.
// Unknown emails and wrong passwords both yield ErrInvalidCredentials.
func (s *Service) Login(email, password string) (*Token, error) {
	account, err := s.local.Authenticate(email, password)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidPassword) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	return s.IssueToken(account)
}

// IssueToken creates a session for account and returns the signed token naming it.
func (s *Service) IssueToken(account *models.Account) (*Token, error) {
	now := s.now()
	sessionID := uniuri.NewLen(uniuri.UUIDLen)

	data := session.Data{
		AccountID: account.ID,
		Email:     account.Email,
		IssuedAt:  now.UTC(),
	}
	if err := data.Write(sessionID, s.ttl); err != nil {
		return nil, fmt.Errorf("failed to write session: %w", err)
	}

	claims := Claims{
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   account.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	log.Info().Str("user", account.Email).Msg("issued access token")

	return &Token{
		AccessToken: signed,
		TokenType:   TokenType,
		ExpiresIn:   int64(s.ttl / time.Second),
		User:        account,
	}, nil
}

// ResolveToken verifies the token and its session and returns the account.
func (s *Service) ResolveToken(raw string) (*models.Account, error) {
	claims, err := s.parse(raw)
	if err != nil {
		return nil, err
	}

	var data session.Data
	if err = data.Read(claims.ID); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil, ErrInvalidToken
		}

		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	if data.AccountID != claims.Subject {
		return nil, ErrInvalidToken
	}

	account, err := s.local.GetAccountByID(data.AccountID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}

		return nil, err
	}

	if !account.Active {
		return nil, ErrUserAccountDisabled
	}

	return account, nil
}

// Logout deletes the session named by the token.
func (s *Service) Logout(raw string) error {
	claims, err := s.parse(raw)
	if err != nil {
		return err
	}

	return session.Delete(claims.ID)
}

func (s *Service) parse(raw string) (*Claims, error) {
	claims := new(Claims)

	_, err := jwt.ParseWithClaims(raw, claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// BearerToken strips an optional "Bearer " prefix from an Authorization header value.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrMissingAuthHeader
	}

	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")), nil
}
