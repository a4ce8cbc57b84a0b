package config

import (
	"encoding/json"
	"fmt"
	"os"

	"photo-seo/model"
)

// DefaultLocations is the built-in service-area catalog, used when no
// catalog file is configured.
var DefaultLocations = []model.NamedLocation{
	{Name: "Wentzville (Default)", Latitude: 38.8126, Longitude: -90.8554},
	{Name: "O'Fallon, MO", Latitude: 38.8106, Longitude: -90.6998},
	{Name: "Chesterfield, MO", Latitude: 38.6631, Longitude: -90.5771},
	{Name: "St. Charles, MO", Latitude: 38.7881, Longitude: -90.4882},
	{Name: "Town and Country, MO", Latitude: 38.6465, Longitude: -90.4548},
	{Name: "Lake St. Louis, MO", Latitude: 38.7909, Longitude: -90.7854},
	{Name: "Wildwood, MO", Latitude: 38.5828, Longitude: -90.6629},
	{Name: "St. Peters, MO", Latitude: 38.7998, Longitude: -90.6265},
	{Name: "Ballwin, MO", Latitude: 38.5937, Longitude: -90.5476},
	{Name: "Cottleville, MO", Latitude: 38.7467, Longitude: -90.6479},
	{Name: "Dardenne Prairie, MO", Latitude: 38.7928, Longitude: -90.7282},
	{Name: "Ellisville, MO", Latitude: 38.5931, Longitude: -90.5901},
	{Name: "Manchester, MO", Latitude: 38.5912, Longitude: -90.5054},
	{Name: "Des Peres, MO", Latitude: 38.6012, Longitude: -90.4287},
	{Name: "Weldon Spring, MO", Latitude: 38.7126, Longitude: -90.6865},
	{Name: "Clarkson Valley, MO", Latitude: 38.6384, Longitude: -90.6054},
	{Name: "Troy, MO", Latitude: 38.9792, Longitude: -90.9807},
	{Name: "Warrenton, MO", Latitude: 38.8131, Longitude: -91.1399},
	{Name: "Foristell, MO", Latitude: 38.8170, Longitude: -90.9387},
	{Name: "St. Charles County, MO", Latitude: 38.7842, Longitude: -90.6798},
	{Name: "Columbia, MO", Latitude: 38.9517, Longitude: -92.3341},
}

// LoadLocations returns the catalog from a JSON file, or the built-in
// presets when no path is configured.
func LoadLocations(path string) ([]model.NamedLocation, error) {
	if path == "" {
		return DefaultLocations, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}

	var catalog []model.NamedLocation
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse locations file: %w", err)
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("locations file %s is empty", path)
	}
	return catalog, nil
}
