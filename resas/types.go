package resas

import (
	"encoding/json"
	"strings"
)

// Prefecture is one entry of the prefectures catalogue.
type Prefecture struct {
	PrefCode int    `json:"prefCode"`
	PrefName string `json:"prefName"`
}

// City is one municipality belonging to a prefecture. BigCityFlag marks
// ordinance-designated cities and their wards; the API encodes it as a
// one-character string.
type City struct {
	PrefCode    int    `json:"prefCode"`
	CityCode    string `json:"cityCode"`
	CityName    string `json:"cityName"`
	BigCityFlag string `json:"bigCityFlag"`
}

// envelope is the top-level shape of a successful API response.
type envelope[T any] struct {
	Message string `json:"message"`
	Result  []T    `json:"result"`
}

// statusProbe captures the application-level status the API embeds in some
// response bodies. The statusCode field arrives as a bare number on some
// endpoints and as a quoted string on others, so it is kept raw and
// normalized on access.
type statusProbe struct {
	StatusCode json.RawMessage `json:"statusCode"`
	Message    string          `json:"message"`
}

// code returns the normalized status code and whether one was present.
func (p *statusProbe) code() (string, bool) {
	raw := strings.TrimSpace(string(p.StatusCode))
	if raw == "" || raw == "null" {
		return "", false
	}
	return strings.Trim(raw, `"`), true
}
