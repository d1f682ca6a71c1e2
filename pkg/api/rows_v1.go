// pkg/api/rows_v1.go
package api

// CloneRowV1 is the JSONL export schema: one object per exported clone.
// Fields follow the column order of the field spec, repeats included.
type CloneRowV1 struct {
	CloneID int       `json:"clone_id"`
	Fields  []FieldV1 `json:"fields"`
}

// FieldV1 is one exported column.
type FieldV1 struct {
	Header string `json:"header"`
	Value  string `json:"value"`
}
