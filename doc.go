// Package bearer issues and validates signed bearer tokens for password
// authenticated users.
//
// The pipeline has two directions. On the way in, CredentialVerifier checks a
// username/password pair against a CredentialStore, Authenticator assembles a
// ClaimSet (subject id, username, display name, one claim per role) and
// TokenCodec signs it into a compact HS256 token. On the way out, TokenCodec
// verifies a presented token (signature, issuer, audience, lifetime) and the
// UserInfo projector turns the recovered claims into a transport friendly
// identity snapshot.
//
// The server keeps no session state: the token is the state. Credential
// storage (users, roles, password hashes) lives behind the CredentialStore
// interface; the store subpackage ships a bun backed implementation and the
// middleware/jwtware subpackage guards HTTP routes.
package bearer
