// Package apikit is a resilient HTTP client core for multi-tenant web
// applications. It assembles the request pipeline from pkg/httpx (request
// building, retrying transport, response resolution), pkg/tenant (subdomain
// tenant resolution), pkg/tokenstore (token lifecycle) and pkg/authguard
// (authentication failure handling) behind one Client.
//
// # Usage
//
//	tokens := tokenstore.New()
//	client, err := apikit.New("https://api.example.com",
//		apikit.WithTenantSource(tenant.NewResolver(tenant.WithPublicDomain("example.com"))),
//		apikit.WithTokenSource(tokens),
//		apikit.WithAuthGuard(authguard.New(authguard.WithTokenClearer(tokens))),
//	)
//	if err != nil {
//		return err
//	}
//
//	env, err := client.Get(ctx, "/invoices", url.Values{"page": {"2"}})
//	if err != nil {
//		return err
//	}
//	var invoices []Invoice
//	if err := env.Decode(&invoices); err != nil {
//		return err
//	}
//
// Server-rendered handlers that keep tokens in cookies use
// pkg/sessionbridge instead of a client-side token store.
package apikit
