package booking

// WeatherInfo is an optional value object attached to a booking by the
// caller. It is stored as-is and never derived server-side.
type WeatherInfo struct {
	Condition   string  `json:"condition"`
	Temperature int     `json:"temperature"`
	Description string  `json:"description"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}
