package domain

import "time"

// Sample is a single timestamped sensor reading as returned by the portal
// data endpoint.
type Sample struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

// RawDay holds one day of raw sensor samples for a location, keyed by sensor
// role. Optional slices are nil when the location has no such sensor.
type RawDay struct {
	Temperature     []Sample
	Humidity        []Sample
	WindSpeed       []Sample
	AirPressure     []Sample
	SunshineHours   []Sample
	GlobalRadiation []Sample
}

// WeatherAggregate is one day of weather reduced to the values the
// Shuttleworth calculation consumes. SunshineHours is nil when the location
// has no sunshine sensor and an estimator must fill it in.
type WeatherAggregate struct {
	TMin          float64  `json:"t_min"`                    // °C
	TMax          float64  `json:"t_max"`                    // °C
	RHMin         float64  `json:"rh_min"`                   // %
	RHMax         float64  `json:"rh_max"`                   // %
	WindSpeed     float64  `json:"wind_speed"`               // km/h at 10 m, daily mean
	AirPressure   float64  `json:"air_pressure"`             // kPa, daily mean
	SunshineHours *float64 `json:"sunshine_hours,omitempty"` // hours
}

// CloudCover holds daily mean layered cloud cover in octas, fetched from a
// raster weather model when no radiation or sunshine sensor exists.
type CloudCover struct {
	Low    float64 `json:"low"`
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// Geometry is the solar-geometry relevant part of a location.
type Geometry struct {
	Latitude float64 `json:"latitude"` // degrees, -90..90
	Altitude float64 `json:"altitude"` // meters above sea level
}

// SeriesRefs holds the portal references to the input sensor series of a
// location, in tsId(...)/tsPath(...)/exchangeId(...) notation.
type SeriesRefs struct {
	Temperature     string `json:"temperature_ts"`
	Humidity        string `json:"humidity_ts"`
	WindSpeed       string `json:"wind_speed_ts"`
	AirPressure     string `json:"air_pressure_ts"`
	SunshineHours   string `json:"sunshine_hours_ts,omitempty"`
	GlobalRadiation string `json:"global_radiation_ts,omitempty"`
}

// Location is a lake-evaporation target discovered from portal metadata: the
// series to write to plus where its sensors live.
type Location struct {
	SeriesID       string     `json:"series_id"` // evaporation series to write back to
	Name           string     `json:"name"`
	OrganizationID string     `json:"organization_id"`
	Longitude      float64    `json:"longitude"`
	Geometry       Geometry   `json:"geometry"`
	Coastal        bool       `json:"coastal,omitempty"` // within ~50 km of a coast
	Albedo         float64    `json:"albedo,omitempty"`  // 0 means use the configured default
	Series         SeriesRefs `json:"series"`
}

// SunshineMethod identifies which estimator produced the sunshine hours used
// in a calculation.
type SunshineMethod string

const (
	SunshineMeasured    SunshineMethod = "measured"
	SunshineRadiation   SunshineMethod = "global_radiation"
	SunshineCloudLayers SunshineMethod = "cloud_layers"
	SunshineHargreaves  SunshineMethod = "temperature_range"
	SunshineNone        SunshineMethod = "none"
)

// Result is one computed daily evaporation value, ready for write-back and
// publishing.
type Result struct {
	Date           time.Time        `json:"date"`
	Location       Location         `json:"location"`
	Weather        WeatherAggregate `json:"weather"`
	Components     Components       `json:"components"`
	SunshineMethod SunshineMethod   `json:"sunshine_method"`
	ProcessedAt    time.Time        `json:"processed_at"`
}
