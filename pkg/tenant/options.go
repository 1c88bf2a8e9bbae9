package tenant

// Option configures a Resolver.
type Option func(*Resolver)

// WithPublicDomain sets the public domain used to match tenant hosts of the
// form "<slug>.<domain>".
func WithPublicDomain(domain string) Option {
	return func(r *Resolver) {
		r.publicDomain = domain
	}
}

// WithDefault sets the build-time default slug used when no other source
// resolves.
func WithDefault(slug string) Option {
	return func(r *Resolver) {
		r.defaultSlug = Sanitize(slug)
	}
}

// WithStorage sets the persistence backend for remembered slugs.
func WithStorage(s Storage) Option {
	return func(r *Resolver) {
		r.storage = s
	}
}

// WithStorageKey overrides the key remembered slugs are stored under.
func WithStorageKey(key string) Option {
	return func(r *Resolver) {
		if key != "" {
			r.storageKey = key
		}
	}
}

// WithHostFunc sets the source of the current host name, e.g. the browser
// location in a WASM build or a static value in a CLI.
func WithHostFunc(f func() string) Option {
	return func(r *Resolver) {
		r.host = f
	}
}

// WithHost is a convenience for a fixed host name.
func WithHost(host string) Option {
	return WithHostFunc(func() string { return host })
}
