// Package template implements email type and email template management.
// Templates carry Liquid merge tags ({{first_name}} and friends) that are
// rendered per recipient at send time.
package template
