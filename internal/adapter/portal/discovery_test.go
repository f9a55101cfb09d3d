package portal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/lake-evaporation-service/internal/domain"
)

const discoveryListing = `[
	{
		"id": "ts-evap-1",
		"name": "Chiemsee evaporation",
		"locationName": "Chiemsee",
		"locationLatitude": 47.87,
		"locationLongitude": 12.4,
		"locationElevation": 518,
		"metadata": {
			"lakeEvaporation": {
				"Temps": "tsId(ts-temp-1)",
				"RHTs": "tsPath(/chiemsee/rh)",
				"WSpeedTs": "exchangeId(EX-WIND-1)",
				"AirPressureTs": "tsId(ts-press-1)",
				"hoursOfSunshineTs": "tsId(ts-sun-1)",
				"Albedo": 0.08
			}
		}
	},
	{
		"id": "ts-rh-1",
		"name": "Chiemsee relative humidity",
		"path": "/chiemsee/rh"
	},
	{
		"id": "ts-wind-1",
		"name": "Chiemsee wind speed",
		"exchangeId": "EX-WIND-1"
	},
	{
		"id": "ts-broken",
		"name": "target missing references",
		"metadata": {"lakeEvaporation": {"Temps": "tsId(ts-temp-9)"}}
	},
	{
		"id": "ts-unrelated",
		"name": "discharge gauge",
		"metadata": {"rating": {"curve": "v2"}}
	}
]`

func testDiscovery(t *testing.T) *Discovery {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/organizations":
			w.Write([]byte(`[{"id": "org-1", "name": "Water Authority"}]`))
		case "/organizations/org-1/timeSeries":
			w.Write([]byte(discoveryListing))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	return NewDiscovery(testClient(srv.URL), testLogger())
}

func TestDiscovery_DiscoverLocations(t *testing.T) {
	d := testDiscovery(t)

	locations, err := d.DiscoverLocations(context.Background(), "org-1")
	require.NoError(t, err)

	// The broken and unrelated series do not become targets.
	require.Len(t, locations, 1)

	want := domain.Location{
		SeriesID:       "ts-evap-1",
		Name:           "Chiemsee",
		OrganizationID: "org-1",
		Longitude:      12.4,
		Geometry:       domain.Geometry{Latitude: 47.87, Altitude: 518},
		Albedo:         0.08,
		Series: domain.SeriesRefs{
			Temperature:   "tsId(ts-temp-1)",
			Humidity:      "tsPath(/chiemsee/rh)",
			WindSpeed:     "exchangeId(EX-WIND-1)",
			AirPressure:   "tsId(ts-press-1)",
			SunshineHours: "tsId(ts-sun-1)",
		},
	}
	if diff := cmp.Diff(want, locations[0]); diff != "" {
		t.Errorf("location mismatch (-want +got):\n%s", diff)
	}
}

func TestDiscovery_AllOrganizations(t *testing.T) {
	d := testDiscovery(t)

	locations, err := d.DiscoverLocations(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, locations, 1)
	assert.Equal(t, "org-1", locations[0].OrganizationID)
}

func TestDiscovery_Resolve(t *testing.T) {
	d := testDiscovery(t)
	_, err := d.DiscoverLocations(context.Background(), "org-1")
	require.NoError(t, err)

	tests := []struct {
		name    string
		ref     string
		want    string
		wantErr bool
	}{
		{"tsId passes through", "tsId(ts-temp-1)", "ts-temp-1", false},
		{"tsPath resolves", "tsPath(/chiemsee/rh)", "ts-rh-1", false},
		{"exchangeId resolves", "exchangeId(EX-WIND-1)", "ts-wind-1", false},
		{"bare value treated as id", "ts-direct", "ts-direct", false},
		{"unknown path fails", "tsPath(/nowhere)", "", true},
		{"unknown exchange id fails", "exchangeId(EX-GONE)", "", true},
		{"empty reference fails", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := d.Resolve(tc.ref)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
