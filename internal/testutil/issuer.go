package testutil

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jose "gopkg.in/go-jose/go-jose.v2"
)

// Audience is the API audience test tokens are minted for.
const Audience = "casting-agency-test"

const keyID = "test-key"

// Issuer is an in-process identity provider. It serves a JWKS document at
// /.well-known/jwks.json and signs RS256 access tokens.
type Issuer struct {
	Server *httptest.Server
	key    *rsa.PrivateKey
}

// NewIssuer starts an issuer that is closed when t ends.
func NewIssuer(t testing.TB) *Issuer {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}

	jwks, err := json.Marshal(jose.JSONWebKeySet{Keys: []jose.JSONWebKey{{
		Key:       &key.PublicKey,
		KeyID:     keyID,
		Algorithm: "RS256",
		Use:       "sig",
	}}})
	if err != nil {
		t.Fatalf("failed to marshal JWKS: %v", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/jwks.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(jwks)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &Issuer{Server: srv, key: key}
}

// URL is the expected `iss` claim.
func (i *Issuer) URL() string {
	return i.Server.URL + "/"
}

// JWKSURL is where the signing keys are published.
func (i *Issuer) JWKSURL() string {
	return i.Server.URL + "/.well-known/jwks.json"
}

// TokenOptions shapes a minted token. Zero values produce a valid token
// for Audience with no permissions claim.
type TokenOptions struct {
	Subject     string
	Permissions []string
	Audience    string
	Issuer      string
	ExpiresAt   time.Time

	// ForeignKey signs with a key the JWKS does not publish, under the
	// published key id.
	ForeignKey bool

	// KeyID overrides the "kid" header; NoKeyID drops it.
	KeyID   string
	NoKeyID bool
}

// Token signs a token described by opts.
func (i *Issuer) Token(t testing.TB, opts TokenOptions) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "auth0|casting-director",
		"aud": []string{Audience},
		"iss": i.URL(),
		"iat": now.Add(-time.Minute).Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	if opts.Subject != "" {
		claims["sub"] = opts.Subject
	}
	if opts.Audience != "" {
		claims["aud"] = []string{opts.Audience}
	}
	if opts.Issuer != "" {
		claims["iss"] = opts.Issuer
	}
	if !opts.ExpiresAt.IsZero() {
		claims["exp"] = opts.ExpiresAt.Unix()
	}
	if opts.Permissions != nil {
		claims["permissions"] = opts.Permissions
	}

	key := i.key
	if opts.ForeignKey {
		var err error
		if key, err = rsa.GenerateKey(rand.Reader, 2048); err != nil {
			t.Fatalf("failed to generate RSA key: %v", err)
		}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	switch {
	case opts.NoKeyID:
	case opts.KeyID != "":
		token.Header["kid"] = opts.KeyID
	default:
		token.Header["kid"] = keyID
	}

	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

// Bearer returns the Authorization header value for a token.
func Bearer(token string) string {
	return "Bearer " + token
}
