// Package model defines the shared data types for diagram extraction:
// page geometry, the page element union (text and image), diagram headers,
// solution details, image candidates, and the compiled DiagramRecord.
package model
