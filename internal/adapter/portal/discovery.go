package portal

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
)

// metadataKey marks a time series as a lake evaporation target. Series
// carrying this key in their metadata hold the sensor references below.
const metadataKey = "lakeEvaporation"

// evapMetadata is the lakeEvaporation block of a target series. The four
// required references point at sensor series in tsId(...), tsPath(...) or
// exchangeId(...) notation; sunshine and radiation are optional, as are the
// per-lake coastal flag and albedo override.
type evapMetadata struct {
	Temperature     string  `json:"Temps"`
	Humidity        string  `json:"RHTs"`
	WindSpeed       string  `json:"WSpeedTs"`
	AirPressure     string  `json:"AirPressureTs"`
	SunshineHours   string  `json:"hoursOfSunshineTs"`
	GlobalRadiation string  `json:"globalRadiationTs"`
	Coastal         bool    `json:"Coastal"`
	Albedo          float64 `json:"Albedo"`
}

// Discovery finds lake evaporation targets across portal organizations and
// resolves sensor series references to plain series IDs. The lookup maps are
// rebuilt from the full series listing on every DiscoverLocations call, so
// references stay resolvable even when series are recreated between cycles.
type Discovery struct {
	client *Client
	logger *slog.Logger

	pathToID     map[string]string
	exchangeToID map[string]string
}

// NewDiscovery creates a Discovery on top of an authenticated client.
func NewDiscovery(client *Client, logger *slog.Logger) *Discovery {
	return &Discovery{
		client:       client,
		logger:       logger,
		pathToID:     make(map[string]string),
		exchangeToID: make(map[string]string),
	}
}

// DiscoverLocations returns all lake evaporation targets. With a non-empty
// orgID only that organization is searched, otherwise every organization
// visible to the session. Targets with incomplete sensor references are
// logged and skipped rather than failing the whole discovery.
func (d *Discovery) DiscoverLocations(ctx context.Context, orgID string) ([]domain.Location, error) {
	var orgs []Organization
	if orgID != "" {
		orgs = []Organization{{ID: orgID}}
	} else {
		all, err := d.client.Organizations(ctx)
		if err != nil {
			return nil, err
		}
		orgs = all
	}

	d.pathToID = make(map[string]string)
	d.exchangeToID = make(map[string]string)

	var locations []domain.Location
	for _, org := range orgs {
		series, err := d.client.TimeSeriesList(ctx, org.ID)
		if err != nil {
			return nil, err
		}
		d.index(series)

		found := 0
		for _, ts := range series {
			loc, ok := d.toLocation(ts, org.ID)
			if !ok {
				continue
			}
			locations = append(locations, loc)
			found++
		}

		d.logger.Info("discovered organization",
			"org", org.ID,
			"series", len(series),
			"targets", found,
		)
	}

	return locations, nil
}

// Resolve turns a sensor series reference into a plain series ID. tsId
// references resolve directly; tsPath and exchangeId references go through
// the lookup maps built during the last DiscoverLocations call. A bare value
// without function notation is treated as an ID.
func (d *Discovery) Resolve(ref string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("empty series reference")
	}

	open := strings.Index(ref, "(")
	end := strings.LastIndex(ref, ")")
	if open < 0 || end < open {
		return ref, nil
	}

	kind := strings.TrimSpace(ref[:open])
	value := ref[open+1 : end]

	switch kind {
	case "tsId":
		return value, nil
	case "tsPath":
		if id, ok := d.pathToID[value]; ok {
			return id, nil
		}
		return "", fmt.Errorf("tsPath %q not found in series listing", value)
	case "exchangeId":
		if id, ok := d.exchangeToID[value]; ok {
			return id, nil
		}
		return "", fmt.Errorf("exchangeId %q not found in series listing", value)
	default:
		d.logger.Warn("unknown series reference type", "type", kind, "ref", ref)
		return value, nil
	}
}

func (d *Discovery) index(series []TimeSeries) {
	for _, ts := range series {
		if ts.ID == "" {
			continue
		}
		if ts.Path != "" {
			d.pathToID[ts.Path] = ts.ID
		}
		if ts.ExchangeID != "" {
			d.exchangeToID[ts.ExchangeID] = ts.ID
		}
	}
}

func (d *Discovery) toLocation(ts TimeSeries, orgID string) (domain.Location, bool) {
	if len(ts.Metadata) == 0 {
		return domain.Location{}, false
	}

	var meta map[string]json.RawMessage
	if err := json.Unmarshal(ts.Metadata, &meta); err != nil {
		d.logger.Warn("unparseable series metadata", "series", ts.ID, "error", err)
		return domain.Location{}, false
	}

	raw, ok := meta[metadataKey]
	if !ok {
		return domain.Location{}, false
	}

	var evap evapMetadata
	if err := json.Unmarshal(raw, &evap); err != nil {
		d.logger.Warn("unparseable lakeEvaporation metadata", "series", ts.ID, "error", err)
		return domain.Location{}, false
	}

	missing := missingRefs(evap)
	if len(missing) > 0 {
		d.logger.Warn("skipping target with incomplete sensor references",
			"series", ts.ID,
			"name", ts.Name,
			"missing", strings.Join(missing, ","),
		)
		return domain.Location{}, false
	}

	return domain.Location{
		SeriesID:       ts.ID,
		Name:           ts.LocationName,
		OrganizationID: orgID,
		Longitude:      ts.LocationLongitude,
		Geometry: domain.Geometry{
			Latitude: ts.LocationLatitude,
			Altitude: ts.LocationElevation,
		},
		Coastal: evap.Coastal,
		Albedo:  evap.Albedo,
		Series: domain.SeriesRefs{
			Temperature:     evap.Temperature,
			Humidity:        evap.Humidity,
			WindSpeed:       evap.WindSpeed,
			AirPressure:     evap.AirPressure,
			SunshineHours:   evap.SunshineHours,
			GlobalRadiation: evap.GlobalRadiation,
		},
	}, true
}

func missingRefs(m evapMetadata) []string {
	var missing []string
	if m.Temperature == "" {
		missing = append(missing, "Temps")
	}
	if m.Humidity == "" {
		missing = append(missing, "RHTs")
	}
	if m.WindSpeed == "" {
		missing = append(missing, "WSpeedTs")
	}
	if m.AirPressure == "" {
		missing = append(missing, "AirPressureTs")
	}
	return missing
}
