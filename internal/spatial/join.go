package spatial

import "github.com/jengzang/civic-etl-go/internal/models"

// JoinPoints assigns each record the id of the zone containing its point.
// Left join: every record is kept, in order, with an invalid zone id when it
// falls outside all zones. The input slice is not modified.
func JoinPoints[T any](records []T, idx *ZoneIndex, coords func(T) (lat, lon float64), assign func(T, models.ZoneID) T) []T {
	out := make([]T, len(records))
	for i, r := range records {
		var zone models.ZoneID
		if id, ok := idx.Locate(coords(r)); ok {
			zone = models.Zone(id)
		}
		out[i] = assign(r, zone)
	}
	return out
}

// StationCoords returns a station's point for JoinPoints
func StationCoords(s models.Station) (float64, float64) { return s.Lat, s.Lon }

// AssignStationWard sets a station's ward
func AssignStationWard(s models.Station, z models.ZoneID) models.Station {
	s.WardID = z
	return s
}

// AccidentCoords returns a collision's point for JoinPoints
func AccidentCoords(a models.AccidentRecord) (float64, float64) { return a.Latitude, a.Longitude }

// AssignAccidentWard sets a collision's ward
func AssignAccidentWard(a models.AccidentRecord, z models.ZoneID) models.AccidentRecord {
	a.WardID = z
	return a
}

// WardZones converts cleaned wards into index zones
func WardZones(wards []models.Ward) []Zone {
	zones := make([]Zone, len(wards))
	for i, w := range wards {
		zones[i] = Zone{ID: w.ID, Name: w.Name, Polygon: w.Boundary}
	}
	return zones
}

// NeighborhoodZones converts cleaned neighbourhoods into index zones
func NeighborhoodZones(hoods []models.Neighborhood) []Zone {
	zones := make([]Zone, len(hoods))
	for i, n := range hoods {
		zones[i] = Zone{ID: n.ID, Name: n.Name, Polygon: n.Boundary}
	}
	return zones
}
