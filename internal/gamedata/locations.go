package gamedata

// ActionDef is something the player can do at a location.
type ActionDef struct {
	Label   string `json:"label"`             // Button label (e.g., "ramasser des baies")
	Message string `json:"message,omitempty"` // Flavor text shown when chosen
	Search  bool   `json:"search,omitempty"`  // True for the wild-search action
	Heal    bool   `json:"heal,omitempty"`    // True if the action restores the team
}

// LocationDef defines a place on the map loaded from JSON.
type LocationDef struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Routes      []string    `json:"routes"`  // IDs of directly reachable locations
	Actions     []ActionDef `json:"actions"` // Available actions
	Wild        []string    `json:"wild"`    // Species names found here
}

// LocationsFile represents the structure of locations.json.
type LocationsFile struct {
	Locations []LocationDef `json:"locations"`
}

// LoadLocations loads location definitions from the embedded locations.json file.
func LoadLocations() ([]LocationDef, error) {
	file, err := Load[LocationsFile]("locations.json")
	if err != nil {
		return nil, err
	}
	return file.Locations, nil
}
