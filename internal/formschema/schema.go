package formschema

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"reiadvisor/internal/model"

	"gopkg.in/yaml.v3"
)

// Form field names, shared by the HTML form, the JSON API and the schema
const (
	FieldState           = "state"
	FieldCity            = "city"
	FieldLocality        = "locality"
	FieldPropertyType    = "property_type"
	FieldBHK             = "bhk"
	FieldSizeSqFt        = "size_sqft"
	FieldYearBuilt       = "year_built"
	FieldFurnishedStatus = "furnished_status"
	FieldFloorNo         = "floor_no"
	FieldTotalFloors     = "total_floors"
	FieldNearbySchools   = "nearby_schools"
	FieldNearbyHospitals = "nearby_hospitals"
	FieldPublicTransport = "public_transport"
	FieldParking         = "parking"
	FieldSecurity        = "security"
	FieldFacing          = "facing"
	FieldOwnerType       = "owner_type"
	FieldAvailability    = "availability"
	FieldAmenities       = "amenities"
)

// SelectFields are the closed-set fields every schema must define
var SelectFields = []string{
	FieldState, FieldCity, FieldPropertyType, FieldFurnishedStatus,
	FieldPublicTransport, FieldParking, FieldSecurity, FieldFacing,
	FieldOwnerType, FieldAvailability,
}

// NumberFields are the bounded integer fields every schema must define
var NumberFields = []string{
	FieldBHK, FieldSizeSqFt, FieldYearBuilt, FieldFloorNo, FieldTotalFloors,
	FieldNearbySchools, FieldNearbyHospitals,
}

//go:embed form.yaml
var embeddedSchema []byte

// Schema describes the valuation form: widgets, bounds and the default
// policy for fields a client does not send.
type Schema struct {
	Title     string                 `yaml:"title" json:"title"`
	Sections  []Section              `yaml:"sections" json:"sections"`
	Selects   map[string]SelectField `yaml:"selects" json:"selects"`
	Texts     map[string]TextField   `yaml:"texts" json:"texts"`
	Numbers   map[string]NumberField `yaml:"numbers" json:"numbers"`
	Amenities AmenityField           `yaml:"amenities" json:"amenities"`
}

// Section groups fields on the page
type Section struct {
	Title  string   `yaml:"title" json:"title"`
	Fields []string `yaml:"fields" json:"fields"`
}

// SelectField is a closed-set selector
type SelectField struct {
	Label   string   `yaml:"label" json:"label"`
	Column  string   `yaml:"column" json:"column"`
	Default string   `yaml:"default" json:"default"`
	Options []string `yaml:"options" json:"options"`
}

// TextField is a free-text input
type TextField struct {
	Label     string `yaml:"label" json:"label"`
	Column    string `yaml:"column" json:"column"`
	Default   string `yaml:"default" json:"default"`
	MaxLength int    `yaml:"max_length" json:"max_length"`
}

// NumberField is a bounded integer input. Max 0 means "the reference year".
type NumberField struct {
	Label   string `yaml:"label" json:"label"`
	Column  string `yaml:"column" json:"column"`
	Min     int    `yaml:"min" json:"min"`
	Max     int    `yaml:"max" json:"max"`
	Default int    `yaml:"default" json:"default"`
}

// AmenityField is the amenities checklist feeding Amenity_Score
type AmenityField struct {
	Label   string            `yaml:"label" json:"label"`
	Column  string            `yaml:"column" json:"column"`
	Options []string          `yaml:"options" json:"options"`
	Aliases map[string]string `yaml:"aliases" json:"aliases,omitempty"`
}

// Bounds returns the inclusive range of the field for a reference year
func (f NumberField) Bounds(referenceYear int) (int, int) {
	if f.Max == 0 {
		return f.Min, referenceYear
	}
	return f.Min, f.Max
}

// Load reads the schema at path, or the embedded schema when path is empty
func Load(path string) (*Schema, error) {
	if path == "" {
		return Parse(embeddedSchema)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read form schema: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded schema. It panics if the embedded file is
// broken, which the package tests rule out.
func Default() *Schema {
	s, err := Parse(embeddedSchema)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse decodes and validates a YAML schema
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid form schema YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that the form covers every record column exactly once
// (derived Age_of_Property excepted) and that defaults respect their own widgets.
func (s *Schema) Validate() error {
	for _, name := range SelectFields {
		if _, ok := s.Selects[name]; !ok {
			return fmt.Errorf("form schema is missing select %s", name)
		}
	}
	for _, name := range NumberFields {
		if _, ok := s.Numbers[name]; !ok {
			return fmt.Errorf("form schema is missing number %s", name)
		}
	}
	if _, ok := s.Texts[FieldLocality]; !ok {
		return fmt.Errorf("form schema is missing text %s", FieldLocality)
	}

	covered := map[string]string{}
	claim := func(field, column string) error {
		if !model.IsFeatureColumn(column) {
			return fmt.Errorf("field %s maps to unknown column %q", field, column)
		}
		if other, dup := covered[column]; dup {
			return fmt.Errorf("column %s is mapped by both %s and %s", column, other, field)
		}
		covered[column] = field
		return nil
	}

	for name, f := range s.Selects {
		if err := claim(name, f.Column); err != nil {
			return err
		}
		if !model.IsCategorical(f.Column) {
			return fmt.Errorf("select %s maps to numeric column %s", name, f.Column)
		}
		if len(f.Options) == 0 {
			return fmt.Errorf("select %s has no options", name)
		}
		if !contains(f.Options, f.Default) {
			return fmt.Errorf("select %s default %q is not one of its options", name, f.Default)
		}
	}

	for name, f := range s.Texts {
		if err := claim(name, f.Column); err != nil {
			return err
		}
		if !model.IsCategorical(f.Column) {
			return fmt.Errorf("text %s maps to numeric column %s", name, f.Column)
		}
		if f.Default == "" {
			return fmt.Errorf("text %s has no default", name)
		}
	}

	for name, f := range s.Numbers {
		if err := claim(name, f.Column); err != nil {
			return err
		}
		if model.IsCategorical(f.Column) {
			return fmt.Errorf("number %s maps to categorical column %s", name, f.Column)
		}
		if f.Max != 0 && f.Min > f.Max {
			return fmt.Errorf("number %s has min %d above max %d", name, f.Min, f.Max)
		}
		if f.Default < f.Min || (f.Max != 0 && f.Default > f.Max) {
			return fmt.Errorf("number %s default %d is outside [%d, %d]", name, f.Default, f.Min, f.Max)
		}
	}

	if size, ok := s.Numbers[FieldSizeSqFt]; !ok || size.Min < 1 {
		return fmt.Errorf("number %s must exist with a minimum of at least 1", FieldSizeSqFt)
	}

	if err := claim(FieldAmenities, s.Amenities.Column); err != nil {
		return err
	}
	if s.Amenities.Column != model.ColAmenityScore {
		return fmt.Errorf("amenities must feed %s", model.ColAmenityScore)
	}
	for alias, target := range s.Amenities.Aliases {
		if !contains(s.Amenities.Options, target) {
			return fmt.Errorf("amenity alias %q points at unknown amenity %q", alias, target)
		}
	}

	var missing []string
	for _, col := range model.FeatureColumns {
		if col == model.ColAgeOfProperty {
			continue
		}
		if _, ok := covered[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("form schema leaves columns unmapped: %v", missing)
	}

	for _, sec := range s.Sections {
		for _, field := range sec.Fields {
			if !s.HasField(field) {
				return fmt.Errorf("section %q lists unknown field %s", sec.Title, field)
			}
		}
	}

	return nil
}

// HasField reports whether name is a field of the form
func (s *Schema) HasField(name string) bool {
	if name == FieldAmenities {
		return true
	}
	if _, ok := s.Selects[name]; ok {
		return true
	}
	if _, ok := s.Texts[name]; ok {
		return true
	}
	_, ok := s.Numbers[name]
	return ok
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
