// Package auth implements password handling, JWT issuance/verification
// for the two principal realms (super users and organization users), and
// the HTTP middleware that enforces authentication and role checks.
package auth
