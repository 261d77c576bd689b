package dictionary

import (
	"encoding/json"

	"github.com/kotoba-nlp/kotoba/kerr"
)

// Metadata is the content of a compiled dictionary directory's
// metadata.json (spec.md §9 supplement): build provenance plus every flag
// the builder needs to reproduce the encoding decisions baked into the
// binary blobs sitting next to it.
type Metadata struct {
	Name                     string             `json:"name"`
	Encoding                 string             `json:"encoding"`
	CompressAlgorithm        CompressAlgorithm  `json:"compress_algorithm"`
	FlexibleCSV              bool               `json:"flexible_csv"`
	SkipInvalidCostOrID      bool               `json:"skip_invalid_cost_or_id"`
	NormalizeDetails         bool               `json:"normalize_details"`
	UnkFieldsNum             int                `json:"unk_fields_num"`
	SimpleUserdicFieldsNum   int                `json:"simple_userdic_fields_num"`
	DetailedUserdicFieldsNum int                `json:"detailed_userdic_fields_num"`
	SimpleWordCost           int16              `json:"simple_word_cost"`
	SimpleContextID          uint16             `json:"simple_context_id"`
	Schema                   Schema             `json:"schema"`
	BuildID                  string             `json:"build_id"`
}

// DefaultMetadata mirrors the IPADIC-shaped defaults spec.md §9 names.
func DefaultMetadata() Metadata {
	return Metadata{
		Name:                     "unnamed",
		Encoding:                 "UTF-8",
		CompressAlgorithm:        CompressZstandard,
		FlexibleCSV:              false,
		SkipInvalidCostOrID:      false,
		NormalizeDetails:         false,
		UnkFieldsNum:             10,
		SimpleUserdicFieldsNum:   3,
		DetailedUserdicFieldsNum: len(DefaultIPADICSchema.Fields),
		SimpleWordCost:           -10000,
		SimpleContextID:          0,
		Schema:                   DefaultIPADICSchema,
	}
}

// MarshalJSON/UnmarshalJSON for Schema so metadata.json carries
// `"schema": {"fields": [...]}` rather than leaking the unexported layout.
func (s Schema) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Fields []string `json:"fields"`
	}{Fields: s.Fields})
}

func (s *Schema) UnmarshalJSON(data []byte) error {
	var aux struct {
		Fields []string `json:"fields"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	s.Fields = aux.Fields
	return nil
}

// EncodeMetadata renders m as indented JSON, the form written to disk.
func EncodeMetadata(m Metadata) ([]byte, error) {
	out, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, kerr.New(kerr.Serialize, err).WithContext("encoding metadata.json")
	}
	return out, nil
}

// DecodeMetadata parses the bytes of a metadata.json file.
func DecodeMetadata(data []byte) (Metadata, error) {
	var m Metadata
	if err := json.Unmarshal(data, &m); err != nil {
		return Metadata{}, kerr.New(kerr.Deserialize, err).WithContext("decoding metadata.json")
	}
	return m, nil
}
