package dictionary

// Schema declares the named CSV/feature columns a dictionary family carries
// (spec.md §9 supplement, grounded on the reference's dictionary schema):
// consumers resolve a column by name instead of a hardcoded index, so the
// same detail-reading code works across IPADIC-like and custom field
// layouts.
type Schema struct {
	Fields []string
}

// NewSchema builds a Schema from an ordered field-name list.
func NewSchema(fields []string) Schema {
	return Schema{Fields: append([]string(nil), fields...)}
}

// FieldIndex returns the column index of name, if declared.
func (s Schema) FieldIndex(name string) (int, bool) {
	for i, f := range s.Fields {
		if f == name {
			return i, true
		}
	}
	return 0, false
}

// DefaultIPADICSchema is the column layout of the worked examples in
// spec.md §4.4: surface, left_id, right_id, cost, then nine POS/reading
// feature columns (13 total).
var DefaultIPADICSchema = NewSchema([]string{
	"surface",
	"left_context_id",
	"right_context_id",
	"cost",
	"pos",
	"pos_subcategory_1",
	"pos_subcategory_2",
	"pos_subcategory_3",
	"conjugation_type",
	"conjugation_form",
	"base_form",
	"reading",
	"pronunciation",
})
