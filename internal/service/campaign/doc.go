// Package campaign implements campaign lifecycle management.
//
// The service handles creation, status transitions and stats; the
// Executor materializes a run into per-recipient send rows that the send
// worker drains. Status transitions that race with the executor are
// guarded by conditional updates in the repository, never by
// check-then-act in Go.
//
// Repository implementations live in repository/postgres/.
package campaign
