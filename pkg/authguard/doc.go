// Package authguard handles client-side authentication failures: clearing
// stored credentials and redirecting to the login page with a return path.
//
// The redirect is guarded by a once-only flag so that many simultaneous
// 401s (a page firing several API calls with an expired token) produce a
// single navigation. The flag is never reset within a Guard's lifetime;
// each page session is expected to construct its own Guard.
//
// Navigation and location access are injected as capabilities, keeping the
// guard testable outside a browser:
//
//	guard := authguard.New(
//		authguard.WithTokenClearer(tokens),
//		authguard.WithNavigator(authguard.NavigatorFunc(browser.Navigate)),
//		authguard.WithLocator(authguard.LocatorFunc(browser.Location)),
//	)
//
//	// on a 401
//	guard.Handle(ctx, opts.OnAuthFailure, opts.SkipAuthGuard)
package authguard
