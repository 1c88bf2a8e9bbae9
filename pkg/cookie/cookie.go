package cookie

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"golang.org/x/crypto/chacha20poly1305"
)

const minSecretLength = 32

// Manager reads and writes HTTP cookies with shared defaults and optional
// authenticated encryption of values. Multiple secrets support key
// rotation: the first secret seals new cookies, every secret is tried when
// opening.
type Manager struct {
	keys     [][]byte
	defaults Options
}

// New creates a Manager. Each secret must be at least 32 characters; the
// actual AEAD key is derived from it with SHA-256.
func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	keys := make([][]byte, len(secrets))
	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
		key := sha256.Sum256([]byte(s))
		keys[i] = key[:]
	}

	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	defaults = applyOptions(defaults, opts)

	return &Manager{keys: keys, defaults: defaults}, nil
}

// Set writes a plain cookie with the manager defaults, overridden by opts.
func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// Get returns the raw cookie value or ErrCookieNotFound.
func (m *Manager) Get(r *http.Request, name string) (string, error) {
	cookie, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return cookie.Value, nil
}

// Delete expires the cookie by writing an empty value with a negative
// max-age and an epoch expiry.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	options := applyOptions(m.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// SetSealed writes a cookie whose value is encrypted and authenticated, so
// it can carry credentials without exposing or allowing tampering with them.
func (m *Manager) SetSealed(w http.ResponseWriter, name, value string, opts ...Option) error {
	sealed, err := m.seal(value)
	if err != nil {
		return err
	}
	m.Set(w, name, sealed, opts...)
	return nil
}

// GetSealed reads and opens a cookie written by SetSealed.
func (m *Manager) GetSealed(r *http.Request, name string) (string, error) {
	sealed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.open(sealed)
}

// seal encrypts with XChaCha20-Poly1305 under the newest key. The random
// nonce is prepended so the cookie is self-contained.
func (m *Manager) seal(value string) (string, error) {
	aead, err := chacha20poly1305.NewX(m.keys[0])
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := aead.Seal(nonce, nonce, []byte(value), nil)
	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// open tries every key so cookies sealed before a rotation stay readable.
func (m *Manager) open(sealed string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(sealed)
	if err != nil {
		return "", ErrInvalidFormat
	}

	for _, key := range m.keys {
		aead, err := chacha20poly1305.NewX(key)
		if err != nil {
			continue
		}
		if len(raw) < aead.NonceSize() {
			return "", ErrInvalidFormat
		}
		nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]
		if plaintext, err := aead.Open(nil, nonce, ciphertext, nil); err == nil {
			return string(plaintext), nil
		}
	}

	return "", ErrDecryptionFailed
}
