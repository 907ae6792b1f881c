// Package audience implements audience segmentation. An audience is a
// named set of optional taxonomy filters; contacts whose preference
// matches any populated filter dimension belong to the audience. An
// audience with no filters matches every contact in the organization.
package audience
