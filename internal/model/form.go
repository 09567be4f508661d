package model

// PropertyForm carries the raw values submitted through the valuation form.
// A nil field means the submitting UI does not expose it; the builder fills it
// from the form schema defaults.
type PropertyForm struct {
	State                        *string  `json:"state,omitempty" form:"state"`
	City                         *string  `json:"city,omitempty" form:"city"`
	Locality                     *string  `json:"locality,omitempty" form:"locality"`
	PropertyType                 *string  `json:"property_type,omitempty" form:"property_type"`
	BHK                          *int     `json:"bhk,omitempty" form:"bhk"`
	SizeInSqFt                   *int     `json:"size_sqft,omitempty" form:"size_sqft"`
	YearBuilt                    *int     `json:"year_built,omitempty" form:"year_built"`
	FurnishedStatus              *string  `json:"furnished_status,omitempty" form:"furnished_status"`
	FloorNo                      *int     `json:"floor_no,omitempty" form:"floor_no"`
	TotalFloors                  *int     `json:"total_floors,omitempty" form:"total_floors"`
	NearbySchools                *int     `json:"nearby_schools,omitempty" form:"nearby_schools"`
	NearbyHospitals              *int     `json:"nearby_hospitals,omitempty" form:"nearby_hospitals"`
	PublicTransportAccessibility *string  `json:"public_transport,omitempty" form:"public_transport"`
	ParkingSpace                 *string  `json:"parking,omitempty" form:"parking"`
	Security                     *string  `json:"security,omitempty" form:"security"`
	Facing                       *string  `json:"facing,omitempty" form:"facing"`
	OwnerType                    *string  `json:"owner_type,omitempty" form:"owner_type"`
	AvailabilityStatus           *string  `json:"availability,omitempty" form:"availability"`
	Amenities                    []string `json:"amenities,omitempty" form:"amenities"`
}
