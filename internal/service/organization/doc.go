// Package organization implements tenant organization management.
//
// Organizations are the top-level tenancy boundary: every user, contact,
// audience, template and campaign belongs to exactly one organization.
// Only super users manage organizations. Deletion is soft so a tenant can
// be restored with its data intact.
//
// Repository implementations live in repository/postgres/.
package organization
