// Package tenant resolves the tenant slug an outgoing API request belongs to.
//
// Multi-tenant backends identify the organization by a header carrying a
// lowercase slug. This package derives that slug from, in priority order: an
// explicit override in the context, the current host name ("acme.localhost"
// or "acme.example.com"), the last slug persisted in storage, and a
// build-time default. Overrides and host matches are remembered in storage
// so future resolutions survive a restart.
//
// # Usage
//
//	resolver := tenant.NewResolver(
//		tenant.WithPublicDomain("example.com"),
//		tenant.WithHost("acme.example.com"),
//		tenant.WithStorage(tenant.NewMemoryStorage()),
//	)
//
//	slug, ok := resolver.Resolve(ctx)
//	if ok {
//		req.Header.Set("X-Tenant-Subdomain", slug)
//	}
//
// Absence of a tenant is a valid outcome, not an error: requests simply go
// out without the tenant header.
//
// Raw identifiers are normalized with Sanitize before use, so "Café GmbH"
// and "cafe-gmbh" resolve to the same slug.
package tenant
