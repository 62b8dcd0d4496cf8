package booking

// CuisinePreference is the cuisine a guest wants to be seated near.
type CuisinePreference string

const (
	CuisineItalian  CuisinePreference = "Italian"
	CuisineChinese  CuisinePreference = "Chinese"
	CuisineIndian   CuisinePreference = "Indian"
	CuisineAmerican CuisinePreference = "American"
	CuisineOther    CuisinePreference = "Other"
)

// IsValid returns true if the cuisine preference is recognized.
func (c CuisinePreference) IsValid() bool {
	switch c {
	case CuisineItalian, CuisineChinese, CuisineIndian, CuisineAmerican, CuisineOther:
		return true
	}
	return false
}

// SeatingPreference is where the party wants to be seated.
type SeatingPreference string

const (
	SeatingIndoor  SeatingPreference = "Indoor"
	SeatingOutdoor SeatingPreference = "Outdoor"
)

// IsValid returns true if the seating preference is recognized.
func (s SeatingPreference) IsValid() bool {
	switch s {
	case SeatingIndoor, SeatingOutdoor:
		return true
	}
	return false
}
