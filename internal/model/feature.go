package model

// Feature column names, exactly as the transformer was fitted on them
const (
	ColState                        = "State"
	ColCity                         = "City"
	ColLocality                     = "Locality"
	ColPropertyType                 = "Property_Type"
	ColBHK                          = "BHK"
	ColSizeInSqFt                   = "Size_in_SqFt"
	ColYearBuilt                    = "Year_Built"
	ColFurnishedStatus              = "Furnished_Status"
	ColFloorNo                      = "Floor_No"
	ColTotalFloors                  = "Total_Floors"
	ColAgeOfProperty                = "Age_of_Property"
	ColNearbySchools                = "Nearby_Schools"
	ColNearbyHospitals              = "Nearby_Hospitals"
	ColPublicTransportAccessibility = "Public_Transport_Accessibility"
	ColParkingSpace                 = "Parking_Space"
	ColSecurity                     = "Security"
	ColFacing                       = "Facing"
	ColOwnerType                    = "Owner_Type"
	ColAvailabilityStatus           = "Availability_Status"
	ColAmenityScore                 = "Amenity_Score"
)

// FeatureColumns lists every column of the record schema
var FeatureColumns = []string{
	ColState, ColCity, ColLocality, ColPropertyType, ColBHK, ColSizeInSqFt,
	ColYearBuilt, ColFurnishedStatus, ColFloorNo, ColTotalFloors,
	ColAgeOfProperty, ColNearbySchools, ColNearbyHospitals,
	ColPublicTransportAccessibility, ColParkingSpace, ColSecurity, ColFacing,
	ColOwnerType, ColAvailabilityStatus, ColAmenityScore,
}

// FeatureRecord is the single-row input to the feature transformer.
// It is built fresh per submission and never mutated afterwards.
type FeatureRecord struct {
	State                        string `json:"State"`
	City                         string `json:"City"`
	Locality                     string `json:"Locality"`
	PropertyType                 string `json:"Property_Type"`
	BHK                          int    `json:"BHK"`
	SizeInSqFt                   int    `json:"Size_in_SqFt"`
	YearBuilt                    int    `json:"Year_Built"`
	FurnishedStatus              string `json:"Furnished_Status"`
	FloorNo                      int    `json:"Floor_No"`
	TotalFloors                  int    `json:"Total_Floors"`
	AgeOfProperty                int    `json:"Age_of_Property"`
	NearbySchools                int    `json:"Nearby_Schools"`
	NearbyHospitals              int    `json:"Nearby_Hospitals"`
	PublicTransportAccessibility string `json:"Public_Transport_Accessibility"`
	ParkingSpace                 string `json:"Parking_Space"`
	Security                     string `json:"Security"`
	Facing                       string `json:"Facing"`
	OwnerType                    string `json:"Owner_Type"`
	AvailabilityStatus           string `json:"Availability_Status"`
	AmenityScore                 int    `json:"Amenity_Score"`
}

// Categorical returns the value of a string column
func (r *FeatureRecord) Categorical(column string) (string, bool) {
	switch column {
	case ColState:
		return r.State, true
	case ColCity:
		return r.City, true
	case ColLocality:
		return r.Locality, true
	case ColPropertyType:
		return r.PropertyType, true
	case ColFurnishedStatus:
		return r.FurnishedStatus, true
	case ColPublicTransportAccessibility:
		return r.PublicTransportAccessibility, true
	case ColParkingSpace:
		return r.ParkingSpace, true
	case ColSecurity:
		return r.Security, true
	case ColFacing:
		return r.Facing, true
	case ColOwnerType:
		return r.OwnerType, true
	case ColAvailabilityStatus:
		return r.AvailabilityStatus, true
	}
	return "", false
}

// Numeric returns the value of an integer column as float64
func (r *FeatureRecord) Numeric(column string) (float64, bool) {
	switch column {
	case ColBHK:
		return float64(r.BHK), true
	case ColSizeInSqFt:
		return float64(r.SizeInSqFt), true
	case ColYearBuilt:
		return float64(r.YearBuilt), true
	case ColFloorNo:
		return float64(r.FloorNo), true
	case ColTotalFloors:
		return float64(r.TotalFloors), true
	case ColAgeOfProperty:
		return float64(r.AgeOfProperty), true
	case ColNearbySchools:
		return float64(r.NearbySchools), true
	case ColNearbyHospitals:
		return float64(r.NearbyHospitals), true
	case ColAmenityScore:
		return float64(r.AmenityScore), true
	}
	return 0, false
}

// IsCategorical reports whether column holds a string value
func IsCategorical(column string) bool {
	var r FeatureRecord
	_, ok := r.Categorical(column)
	return ok
}

// IsFeatureColumn reports whether column belongs to the record schema
func IsFeatureColumn(column string) bool {
	var r FeatureRecord
	if _, ok := r.Categorical(column); ok {
		return true
	}
	_, ok := r.Numeric(column)
	return ok
}
