package models

import "fmt"

// RecordBuilder accumulates fields during the parse phase of a detail page.
// All fields start at their defaults; the extractor fills them in a fixed
// order, the post-processing pipeline runs once, and Build freezes the
// result into a PropertyRecord value.
type RecordBuilder struct {
	PropertyRecord
}

// NewRecord creates a builder for the given detail-page URL with every
// field at its default.
func NewRecord(url string, category Category) *RecordBuilder {
	return &RecordBuilder{PropertyRecord: PropertyRecord{
		URL:            url,
		Category:       category,
		PropertyType:   TypeUnknown,
		Amenities:      []string{},
		KeyInformation: []string{},
		KeyFeatures:    []string{},
		Features:       map[string]string{},
	}}
}

// AddError records a single-field extraction failure. Field failures never
// abort the rest of the parse; they are carried on the record for
// debugging.
func (b *RecordBuilder) AddError(stage string, err error) {
	b.ExtractionErrors = append(b.ExtractionErrors, fmt.Sprintf("%s: %v", stage, err))
}

// Build freezes the accumulated fields into a PropertyRecord.
func (b *RecordBuilder) Build() PropertyRecord {
	return b.PropertyRecord
}
