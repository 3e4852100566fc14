package importer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is written by Export and accepted by Load.
const SchemaVersion = 1

// Schedule is the top-level YAML structure for price schedule import and
// export.
type Schedule struct {
	Version   int             `yaml:"version"`
	ChangedBy string          `yaml:"changed_by,omitempty"`
	Products  []ProductImport `yaml:"products"`
}

// ProductImport is one product and its price cards. A product whose code
// already exists is reused; otherwise it is created.
type ProductImport struct {
	Code   string        `yaml:"code"`
	Name   string        `yaml:"name,omitempty"`
	Prices []PriceImport `yaml:"prices"`
}

// PriceImport is one price card. End defaults to Start.
type PriceImport struct {
	Start     string   `yaml:"start"`
	End       *string  `yaml:"end,omitempty"`
	UnitPrice *float64 `yaml:"unit_price"`
}

// LoadSchedule reads and parses a price schedule YAML file.
func LoadSchedule(path string) (*Schedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSchedule(data)
}

// ParseSchedule decodes YAML. Unknown keys are rejected so that typos such
// as "unitprice" do not silently import a card without a price.
func ParseSchedule(data []byte) (*Schedule, error) {
	var s Schedule
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("parsing schedule: empty document")
		}
		return nil, fmt.Errorf("parsing schedule: %w", err)
	}
	if s.Version == 0 {
		s.Version = SchemaVersion
	}
	return &s, nil
}

// WriteSchedule encodes s as YAML with two-space indentation.
func WriteSchedule(w io.Writer, s *Schedule) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding schedule: %w", err)
	}
	return enc.Close()
}
