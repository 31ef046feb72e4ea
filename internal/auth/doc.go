// Package auth provides local account authentication and bearer token sessions.
//
// Accounts live in the accounts table and carry an Argon2id password hash.
// A successful login issues an HS256 signed JWT whose jti names a server side
// session kept in the fiber session storage, so logging out revokes the token
// even before it expires.
//
// Example usage:
//
//	svc := auth.NewService(db, []byte(cfg.Webserver.TokenSecret), cfg.Webserver.Session.ExpiryTime)
//	token, err := svc.Login(email, password)
//	account, err := svc.ResolveToken(token.AccessToken)
package auth
