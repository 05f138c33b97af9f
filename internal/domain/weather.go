package domain

// Weather is the minimal internal shape derived from the upstream provider's
// payload. Temperatures are rounded to whole degrees Celsius; Tags carries
// the derived temperature-band and sky-condition labels used for product
// matching ("soğuk", "kış", "yağmurlu", …).
type Weather struct {
	Temperature int      `json:"temperature"`
	FeelsLike   int      `json:"feelsLike"`
	Humidity    int      `json:"humidity"`
	WindSpeed   float64  `json:"windSpeed"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
}
