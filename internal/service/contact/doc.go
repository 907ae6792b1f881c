// Package contact implements contact and preference management plus CSV
// bulk import. Every contact carries a property-preference record
// (BHK type, furnishing, location, property type, power backup) that
// audience segmentation matches against.
package contact
