package exchange

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/moznion/go-optional"
)

// geoEndpoint is the public IP geolocation service the registration form uses
// to pre-select a country.
const geoEndpoint = "https://ipapi.co/json/"

// GeoLocator resolves the caller's country from their public IP address.
// Lookups are best-effort: any failure yields None and the registration form
// simply starts without a pre-selected country.
type GeoLocator struct {
	http *resty.Client
}

// NewGeoLocator creates a GeoLocator against the public ipapi.co service.
func NewGeoLocator() *GeoLocator {
	return NewGeoLocatorWithURL(geoEndpoint)
}

// NewGeoLocatorWithURL creates a GeoLocator against a custom endpoint.
// Used by tests to point at a local server.
func NewGeoLocatorWithURL(url string) *GeoLocator {
	httpClient := resty.New().
		SetBaseURL(url).
		SetTimeout(5 * time.Second)

	return &GeoLocator{http: httpClient}
}

// geoResponse is the subset of the ipapi.co payload we read.
type geoResponse struct {
	CountryCode string `json:"country_code"`
}

// DetectCountry returns the ISO 3166-1 alpha-2 country code for the caller's
// IP, or None when the lookup fails or returns no code.
func (g *GeoLocator) DetectCountry(ctx context.Context) optional.Option[string] {
	var out geoResponse

	resp, err := g.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("")
	if err != nil || !resp.IsSuccess() || out.CountryCode == "" {
		return optional.None[string]()
	}

	return optional.Some(out.CountryCode)
}
