package tenant

import (
	"context"
	"net"
	"strings"
)

// defaultStorageKey is where the last resolved slug is remembered.
const defaultStorageKey = "tenant:slug"

// Storage persists the last successfully resolved tenant slug so later
// resolutions (e.g. after a restart, or on hosts without a tenant
// subdomain) can fall back to it. Implementations must be safe for
// concurrent use.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Resolver derives the active tenant slug for outgoing requests.
//
// Resolution order, first non-empty wins:
//
//  1. explicit override carried in the context (WithContext)
//  2. the current host, matching "<slug>.localhost" (any port) or
//     "<slug>.<public domain>"
//  3. the slug previously persisted in Storage
//  4. the configured build-time default
//
// A successful resolution from (1) or (2) is written back to Storage as the
// new fallback. Failing to resolve is not an error; callers treat the
// absent slug as "send no tenant header".
type Resolver struct {
	publicDomain string
	defaultSlug  string
	storage      Storage
	host         func() string
	storageKey   string
}

// NewResolver creates a tenant resolver. Without options it only ever
// resolves from a context override.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{storageKey: defaultStorageKey}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the active tenant slug, or ok=false when no source
// yields one.
func (r *Resolver) Resolve(ctx context.Context) (string, bool) {
	if slug, ok := FromContext(ctx); ok {
		if slug = Sanitize(slug); slug != "" {
			r.remember(ctx, slug)
			return slug, true
		}
	}

	if r.host != nil {
		if slug := SlugFromHost(r.host(), r.publicDomain); slug != "" {
			r.remember(ctx, slug)
			return slug, true
		}
	}

	if r.storage != nil {
		if slug, err := r.storage.Get(ctx, r.storageKey); err == nil && slug != "" {
			return slug, true
		}
	}

	if r.defaultSlug != "" {
		return r.defaultSlug, true
	}

	return "", false
}

// remember persists the slug as the new fallback. Storage failures are
// swallowed; persistence is a hint, not a source of truth.
func (r *Resolver) remember(ctx context.Context, slug string) {
	if r.storage == nil {
		return
	}
	_ = r.storage.Set(ctx, r.storageKey, slug)
}

// SlugFromHost extracts the tenant slug from a host of the form
// "<slug>.localhost" (any port) or "<slug>.<publicDomain>". A bare domain or
// a host with extra labels before the slug yields "".
func SlugFromHost(host, publicDomain string) string {
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.ToLower(host)

	for _, domain := range []string{"localhost", strings.ToLower(publicDomain)} {
		if domain == "" {
			continue
		}
		suffix := "." + domain
		if !strings.HasSuffix(host, suffix) {
			continue
		}
		rest := strings.TrimSuffix(host, suffix)
		// Exactly one label before the domain; "a.b.example.com" is not
		// a tenant host for domain "example.com".
		if rest == "" || strings.Contains(rest, ".") || rest == "www" {
			continue
		}
		return Sanitize(rest)
	}

	return ""
}
