package service

import (
	"fmt"
	"html"
	"log"
	"strings"
	"unicode/utf8"

	"reiadvisor/internal/formschema"
	"reiadvisor/internal/model"
	"reiadvisor/internal/utils"

	"github.com/microcosm-cc/bluemonday"
)

// RecordBuilder maps submitted form values onto a complete FeatureRecord.
// It only enforces what the form widgets enforce (ranges, closed sets);
// cross-field consistency such as Floor_No <= Total_Floors is reported as a
// warning and the record is still built.
type RecordBuilder struct {
	schema    *formschema.Schema
	sanitizer *bluemonday.Policy
}

// NewRecordBuilder creates a builder for schema
func NewRecordBuilder(schema *formschema.Schema) *RecordBuilder {
	return &RecordBuilder{
		schema:    schema,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Schema returns the form schema the builder applies
func (b *RecordBuilder) Schema() *formschema.Schema {
	return b.schema
}

// Build produces one field-complete record. referenceYear drives both the
// Year_Built upper bound and Age_of_Property.
func (b *RecordBuilder) Build(form *model.PropertyForm, referenceYear int) (*model.FeatureRecord, []string, error) {
	if form == nil {
		form = &model.PropertyForm{}
	}

	rec := &model.FeatureRecord{}
	var err error

	selects := []struct {
		field string
		value *string
		dst   *string
	}{
		{formschema.FieldState, form.State, &rec.State},
		{formschema.FieldCity, form.City, &rec.City},
		{formschema.FieldPropertyType, form.PropertyType, &rec.PropertyType},
		{formschema.FieldFurnishedStatus, form.FurnishedStatus, &rec.FurnishedStatus},
		{formschema.FieldPublicTransport, form.PublicTransportAccessibility, &rec.PublicTransportAccessibility},
		{formschema.FieldParking, form.ParkingSpace, &rec.ParkingSpace},
		{formschema.FieldSecurity, form.Security, &rec.Security},
		{formschema.FieldFacing, form.Facing, &rec.Facing},
		{formschema.FieldOwnerType, form.OwnerType, &rec.OwnerType},
		{formschema.FieldAvailability, form.AvailabilityStatus, &rec.AvailabilityStatus},
	}
	for _, s := range selects {
		if *s.dst, err = b.selectValue(s.field, s.value); err != nil {
			return nil, nil, err
		}
	}

	if rec.Locality, err = b.localityValue(form.Locality); err != nil {
		return nil, nil, err
	}

	numbers := []struct {
		field string
		value *int
		dst   *int
	}{
		{formschema.FieldBHK, form.BHK, &rec.BHK},
		{formschema.FieldSizeSqFt, form.SizeInSqFt, &rec.SizeInSqFt},
		{formschema.FieldYearBuilt, form.YearBuilt, &rec.YearBuilt},
		{formschema.FieldFloorNo, form.FloorNo, &rec.FloorNo},
		{formschema.FieldTotalFloors, form.TotalFloors, &rec.TotalFloors},
		{formschema.FieldNearbySchools, form.NearbySchools, &rec.NearbySchools},
		{formschema.FieldNearbyHospitals, form.NearbyHospitals, &rec.NearbyHospitals},
	}
	for _, n := range numbers {
		if *n.dst, err = b.numberValue(n.field, n.value, referenceYear); err != nil {
			return nil, nil, err
		}
	}

	rec.AgeOfProperty = PropertyAge(referenceYear, rec.YearBuilt)

	if rec.AmenityScore, err = b.amenityScore(form.Amenities); err != nil {
		return nil, nil, err
	}

	var warnings []string
	if rec.FloorNo > rec.TotalFloors {
		w := fmt.Sprintf("Floor_No %d is above Total_Floors %d; the record is submitted unchanged", rec.FloorNo, rec.TotalFloors)
		log.Printf("⚠️  %s", w)
		warnings = append(warnings, w)
	}

	return rec, warnings, nil
}

// PropertyAge returns referenceYear - yearBuilt
func PropertyAge(referenceYear, yearBuilt int) int {
	return referenceYear - yearBuilt
}

// ResolveAmenities maps submitted amenity names onto the checklist, dropping
// duplicates. Unknown names are a validation error.
func (b *RecordBuilder) ResolveAmenities(names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	resolved := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		match, ok := utils.MatchOption(name, b.schema.Amenities.Options, b.schema.Amenities.Aliases)
		if !ok {
			return nil, &ValidationError{
				Field:  formschema.FieldAmenities,
				Reason: fmt.Sprintf("%q is not on the amenities checklist", name),
			}
		}
		if !seen[match] {
			seen[match] = true
			resolved = append(resolved, match)
		}
	}
	return resolved, nil
}

func (b *RecordBuilder) amenityScore(names []string) (int, error) {
	resolved, err := b.ResolveAmenities(names)
	if err != nil {
		return 0, err
	}
	return len(resolved), nil
}

func (b *RecordBuilder) selectValue(field string, value *string) (string, error) {
	f := b.schema.Selects[field]
	if value == nil {
		return f.Default, nil
	}
	canonical, ok := utils.CanonicalOption(*value, f.Options)
	if !ok {
		return "", &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("%q is not one of %s", *value, strings.Join(f.Options, ", ")),
		}
	}
	return canonical, nil
}

func (b *RecordBuilder) localityValue(value *string) (string, error) {
	f := b.schema.Texts[formschema.FieldLocality]
	if value == nil {
		return f.Default, nil
	}

	cleaned := strings.TrimSpace(html.UnescapeString(b.sanitizer.Sanitize(*value)))
	if cleaned == "" {
		return "", &ValidationError{Field: formschema.FieldLocality, Reason: "must not be empty"}
	}
	if f.MaxLength > 0 && utf8.RuneCountInString(cleaned) > f.MaxLength {
		return "", &ValidationError{
			Field:  formschema.FieldLocality,
			Reason: fmt.Sprintf("must be at most %d characters", f.MaxLength),
		}
	}
	return cleaned, nil
}

func (b *RecordBuilder) numberValue(field string, value *int, referenceYear int) (int, error) {
	f := b.schema.Numbers[field]
	if value == nil {
		return f.Default, nil
	}
	lo, hi := f.Bounds(referenceYear)
	if *value < lo || *value > hi {
		return 0, &ValidationError{
			Field:  field,
			Reason: fmt.Sprintf("%d is outside [%d, %d]", *value, lo, hi),
		}
	}
	return *value, nil
}
