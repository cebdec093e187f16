package planner

// Location is a geocoded point picked on the map, from autocomplete or from a POI lookup.
type Location struct {
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	PlaceName    string  `json:"placeName"`
	PlaceAddress string  `json:"placeAddress"`
	PlaceID      string  `json:"placeId,omitempty"`
}

// Equal compares coordinates and name, the identity callers use when deduplicating.
func (l Location) Equal(o Location) bool {
	return l.Lat == o.Lat && l.Lng == o.Lng && l.PlaceName == o.PlaceName
}

func copyLocation(l *Location) *Location {
	if l == nil {
		return nil
	}
	c := *l
	return &c
}
