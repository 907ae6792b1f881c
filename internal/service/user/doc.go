// Package user implements tenant user management and authentication for
// both realms: super users (platform operators) and organization users.
//
// Login issues a JWT whose jti is persisted on the principal row; logout
// rotates the jti, revoking every outstanding token at once.
package user
