package importer

// RawRecord is one loosely-typed listing object from a JSON batch.
type RawRecord map[string]any

// ImportReport summarizes a batch for the user-facing message. The CLI
// batch uploader depends on the inserted/skipped JSON shape.
type ImportReport struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated,omitempty"`
	Skipped  int `json:"skipped"`
}
