package okta

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pawsense/internal/ports/auth"

	jwtverifier "github.com/okta/okta-jwt-verifier-golang"
)

var (
	ErrNotConfigured = errors.New("okta verifier not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrMissingUserID = errors.New("okta claims missing user id")
)

type Config struct {
	Issuer   string // https://<dominio>/oauth2/default
	Audience string
	ClientID string
}

// accessTokenVerifier es la parte de *jwtverifier.JwtVerifier que usamos.
type accessTokenVerifier interface {
	VerifyAccessToken(jwt string) (*jwtverifier.Jwt, error)
}

// Verifier implementa auth.AuthVerifier validando access tokens de Okta.
type Verifier struct {
	v accessTokenVerifier
}

func NewVerifier(cfg Config) (*Verifier, error) {
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		return nil, ErrNotConfigured
	}

	toValidate := map[string]string{}
	if aud := strings.TrimSpace(cfg.Audience); aud != "" {
		toValidate["aud"] = aud
	}
	if cid := strings.TrimSpace(cfg.ClientID); cid != "" {
		toValidate["cid"] = cid
	}

	setup := jwtverifier.JwtVerifier{
		Issuer:           issuer,
		ClaimsToValidate: toValidate,
	}
	return &Verifier{v: setup.New()}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if v == nil || v.v == nil {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	jwt, err := v.v.VerifyAccessToken(token)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("okta verify failed: %w", err)
	}
	return claimsFrom(jwt.Claims)
}

// claimsFrom: Okta pone el id de usuario en "uid"; "sub" suele ser el login.
func claimsFrom(m map[string]interface{}) (auth.Claims, error) {
	str := func(k string) string {
		s, _ := m[k].(string)
		return strings.TrimSpace(s)
	}

	c := auth.Claims{
		UserID: str("uid"),
		Email:  str("email"),
		Name:   str("name"),
	}
	if c.UserID == "" {
		c.UserID = str("sub")
	}
	if c.UserID == "" {
		return auth.Claims{}, ErrMissingUserID
	}
	if c.Email == "" && strings.Contains(str("sub"), "@") {
		c.Email = str("sub")
	}
	return c, nil
}
