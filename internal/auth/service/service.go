// Package service issues dashboard access tokens for the single configured operator.
package service

import (
	"crypto/subtle"
	"time"

	"contactcenter_backend/platform/apperr"
	"contactcenter_backend/platform/config"
	"contactcenter_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	accessTokenType = "access"
	operatorRole    = "operator"
	tokenTypeBearer = "Bearer"
)

// Token is an issued access token.
type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}

type Service struct {
	cfg config.OperatorConfig
	log *logger.Logger
	now func() time.Time
}

func New(cfg config.OperatorConfig, log *logger.Logger) *Service {
	return &Service{cfg: cfg, log: log, now: time.Now}
}

// Login checks the operator credentials and issues an access token. Login is
// refused outright when no password hash is configured.
func (s *Service) Login(username, password string) (Token, error) {
	hash := s.cfg.GetDashboardPasswordHash()
	if hash == "" {
		s.log.AuthEvent("login", username, false, "no password hash configured")
		return Token{}, apperr.Unauthorized("invalid credentials")
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.cfg.GetDashboardUsername())) == 1
	passErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if !userOK || passErr != nil {
		s.log.AuthEvent("login", username, false, "invalid credentials")
		return Token{}, apperr.Unauthorized("invalid credentials")
	}

	ttl := s.cfg.GetAccessTokenTTL()
	signed, err := s.signJWT(username, []string{operatorRole}, ttl)
	if err != nil {
		return Token{}, apperr.Wrap(apperr.KindInternal, "could not issue token", err).WithOp("auth.Login")
	}

	s.log.AuthEvent("login", username, true, "")
	return Token{AccessToken: signed, TokenType: tokenTypeBearer, ExpiresIn: ttl}, nil
}

func (s *Service) signJWT(subject string, roles []string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   subject,
		"type":  accessTokenType,
		"roles": roles,
		"exp":   now.Add(ttl).Unix(),
		"iat":   now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
