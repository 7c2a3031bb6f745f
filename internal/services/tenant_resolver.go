package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/NishantSagar12345/NextCellCRM/internal/config"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrUnauthenticated is the only error category a TenantResolver returns
var ErrUnauthenticated = errors.New("unauthenticated")

// TenantResolver turns a bearer credential into the tenant it belongs to
type TenantResolver interface {
	ResolveTenant(ctx context.Context, token string) (uuid.UUID, error)
	Close()
}

type jwtTenantResolver struct {
	parser  *jwt.Parser
	keyfunc jwt.Keyfunc
	claim   string
	jwks    *keyfunc.JWKS
	logger  *zap.Logger
}

// NewJWTTenantResolver verifies tokens with the shared secret, or with the
// remote key set when a JWKS URL is configured.
func NewJWTTenantResolver(cfg config.JWTConfig, logger *zap.Logger) (TenantResolver, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if cfg.JWKSURL != "" {
		jwks, err := keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshInterval:   time.Hour,
			RefreshRateLimit:  5 * time.Minute,
			RefreshTimeout:    10 * time.Second,
			RefreshUnknownKID: true,
			RefreshErrorHandler: func(err error) {
				logger.Warn("jwks refresh failed", zap.Error(err))
			},
		})
		if err != nil {
			return nil, fmt.Errorf("load jwks: %w", err)
		}
		r := newResolver(cfg, jwks.Keyfunc, logger)
		r.jwks = jwks
		return r, nil
	}

	if cfg.Secret == "" {
		return nil, errors.New("jwt secret is required when no jwks url is set")
	}
	secret := []byte(cfg.Secret)
	return newResolver(cfg, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	}, logger), nil
}

// NewTenantResolverWithKeyfunc builds a resolver around an existing key lookup
func NewTenantResolverWithKeyfunc(cfg config.JWTConfig, kf jwt.Keyfunc, logger *zap.Logger) TenantResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return newResolver(cfg, kf, logger)
}

func newResolver(cfg config.JWTConfig, kf jwt.Keyfunc, logger *zap.Logger) *jwtTenantResolver {
	algorithm := cfg.Algorithm
	if algorithm == "" {
		algorithm = jwt.SigningMethodHS256.Alg()
	}
	claim := cfg.TenantClaim
	if claim == "" {
		claim = "tenant_id"
	}

	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{algorithm})}
	if cfg.RequireExpiry {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	return &jwtTenantResolver{
		parser:  jwt.NewParser(opts...),
		keyfunc: kf,
		claim:   claim,
		logger:  logger,
	}
}

func (r *jwtTenantResolver) ResolveTenant(ctx context.Context, token string) (uuid.UUID, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return uuid.Nil, fmt.Errorf("%w: missing token", ErrUnauthenticated)
	}

	claims := jwt.MapClaims{}
	parsed, err := r.parser.ParseWithClaims(token, claims, r.keyfunc)
	if err != nil {
		r.logger.Debug("token rejected", zap.Error(err))
		return uuid.Nil, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}
	if !parsed.Valid {
		return uuid.Nil, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}

	raw, ok := claims[r.claim].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return uuid.Nil, fmt.Errorf("%w: missing %s claim", ErrUnauthenticated, r.claim)
	}

	tenantID, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil || tenantID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s claim", ErrUnauthenticated, r.claim)
	}

	return tenantID, nil
}

func (r *jwtTenantResolver) Close() {
	if r.jwks != nil {
		r.jwks.EndBackground()
	}
}

// SignTenantToken mints an HMAC token carrying tenant_id. A zero ttl omits exp.
func SignTenantToken(secret []byte, algorithm string, tenantID uuid.UUID, ttl time.Duration) (string, error) {
	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return "", fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"tenant_id": tenantID.String(),
		"iat":       now.Unix(),
	}
	if ttl > 0 {
		claims["exp"] = now.Add(ttl).Unix()
	}

	return jwt.NewWithClaims(method, claims).SignedString(secret)
}
