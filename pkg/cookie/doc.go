// Package cookie manages HTTP cookies with shared defaults and sealed
// (encrypted and authenticated) values for carrying credentials.
//
// Sealing uses XChaCha20-Poly1305 with a key derived from each configured
// secret. Secrets are ordered newest first: the first seals new cookies,
// all of them are tried when opening, which allows rotating secrets without
// invalidating cookies issued before the rotation.
//
// # Usage
//
//	mgr, err := cookie.New([]string{secret},
//		cookie.WithSecure(true),
//		cookie.WithDomain(".example.com"),
//	)
//
//	// write an httpOnly credential cookie
//	err = mgr.SetSealed(w, "access_token", token, cookie.WithMaxAge(900))
//
//	// read it back
//	token, err := mgr.GetSealed(r, "access_token")
//
//	// expire it
//	mgr.Delete(w, "access_token")
//
// Defaults are Path "/", HttpOnly, SameSite Lax; per-call options override
// them.
package cookie
