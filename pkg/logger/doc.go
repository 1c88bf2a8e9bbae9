// Package logger provides a small factory over log/slog with consistent
// defaults for the apikit packages.
//
// The factory produces JSON logs at INFO level by default, which suits
// production log aggregation; development setups usually switch to text
// format at debug level:
//
//	log := logger.New(logger.WithDevelopment("dashboard"))
//	log.Debug("retrying request", logger.URL(u), logger.Attempt(2))
//
// Context extractors allow request-scoped values (request IDs, tenant slugs)
// to be attached to every record logged with that context:
//
//	log := logger.New(logger.WithContextExtractors(myRequestIDExtractor))
//
// The attr helpers (Error, RequestID, Tenant, Status, Attempt, URL) keep
// attribute keys consistent across packages.
package logger
