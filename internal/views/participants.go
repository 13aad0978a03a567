package views

import (
	"sort"

	"github.com/david/eu-project-explorer/internal/models"
)

const (
	fallbackLat = 50.0
	fallbackLon = 10.0
)

// countryCentres holds approximate coordinates used when a participant has none.
var countryCentres = map[string][2]float64{
	"EL": {37.9838, 23.7275}, "NO": {63.4305, 10.3951}, "ES": {40.4168, -3.7038},
	"IT": {41.9028, 12.4964}, "BE": {51.2194, 4.4025}, "DE": {50.9317, 13.3444},
	"FR": {46.6034, 2.2137}, "NL": {52.1326, 5.2913}, "AT": {47.5162, 14.5501},
	"CH": {46.8182, 8.2275}, "PT": {39.3999, -8.2245}, "SE": {60.1282, 18.6435},
	"FI": {61.9241, 25.7482}, "DK": {56.2639, 9.5018}, "PL": {51.9194, 19.1451},
	"CZ": {49.8175, 15.4730}, "HU": {47.1625, 19.5033}, "SK": {48.6690, 19.6990},
	"SI": {46.1512, 14.9955}, "HR": {45.1000, 15.2000}, "BG": {42.7339, 25.4858},
	"RO": {45.9432, 24.9668}, "LT": {55.1694, 25.2797}, "LV": {56.8796, 24.6032},
	"EE": {58.5953, 25.0136}, "IE": {53.4129, -8.2439}, "CY": {35.1264, 33.4299},
	"MT": {35.9375, 14.3754}, "LU": {49.8153, 6.1296},
}

// CountryCoordinates returns the map position for a country code.
func CountryCoordinates(code string) (lat, lon float64) {
	if c, ok := countryCentres[code]; ok {
		return c[0], c[1]
	}
	return fallbackLat, fallbackLon
}

type CountryStat struct {
	Country        string               `json:"country"`
	CountryCode    string               `json:"countryCode"`
	Count          int                  `json:"count"`
	HasCoordinator bool                 `json:"hasCoordinator"`
	Participants   []models.Participant `json:"participants"`
}

type Marker struct {
	Name        string  `json:"name"`
	LegalName   string  `json:"legalName"`
	Role        string  `json:"role"`
	Country     string  `json:"country"`
	CountryCode string  `json:"countryCode"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Approximate bool    `json:"approximate"`
}

type ParticipantsView struct {
	TotalParticipants int                 `json:"totalParticipants"`
	TotalCountries    int                 `json:"totalCountries"`
	Coordinator       *models.Participant `json:"coordinator,omitempty"`
	Countries         []CountryStat       `json:"countries"`
	Markers           []Marker            `json:"markers"`
}

// Participants groups a project's partners by country, busiest country first.
// Countries with equal counts keep their first-appearance order.
func Participants(p *models.Project) ParticipantsView {
	view := ParticipantsView{
		TotalParticipants: len(p.Participants),
		Countries:         []CountryStat{},
		Markers:           []Marker{},
	}

	index := make(map[string]int)
	for _, part := range p.Participants {
		i, ok := index[part.Country]
		if !ok {
			i = len(view.Countries)
			index[part.Country] = i
			view.Countries = append(view.Countries, CountryStat{Country: part.Country, CountryCode: part.CountryCode})
		}
		stat := &view.Countries[i]
		stat.Count++
		stat.Participants = append(stat.Participants, part)
		if part.IsCoordinator() {
			stat.HasCoordinator = true
		}

		view.Markers = append(view.Markers, markerFor(part))
	}
	sort.SliceStable(view.Countries, func(i, j int) bool {
		return view.Countries[i].Count > view.Countries[j].Count
	})
	view.TotalCountries = len(view.Countries)

	if coord, ok := p.CoordinatorParticipant(); ok {
		view.Coordinator = &coord
	}
	return view
}

func markerFor(part models.Participant) Marker {
	m := Marker{
		Name:        part.ShortName,
		LegalName:   part.LegalName,
		Role:        part.Role,
		Country:     part.Country,
		CountryCode: part.CountryCode,
		Lat:         part.Lat,
		Lon:         part.Lon,
	}
	defLat, defLon := CountryCoordinates(part.CountryCode)
	if m.Lat == 0 {
		m.Lat = defLat
		m.Approximate = true
	}
	if m.Lon == 0 {
		m.Lon = defLon
		m.Approximate = true
	}
	return m
}
