package models

// Station represents a bike-share dock with its ward and first recorded use
type Station struct {
	ID       int32   `json:"station_id" csv:"station_id" db:"station_id"`
	Name     string  `json:"name" csv:"name" db:"name"`
	Lat      float64 `json:"lat" csv:"lat" db:"lat"`
	Lon      float64 `json:"lon" csv:"lon" db:"lon"`
	Address  string  `json:"address" csv:"address" db:"address"`
	Capacity int     `json:"capacity" csv:"capacity" db:"capacity"`

	// Accepted payment methods
	RentKey         bool `json:"rent_key" csv:"rent_key" db:"rent_key"`
	RentPhone       bool `json:"rent_phone" csv:"rent_phone" db:"rent_phone"`
	RentTransitCard bool `json:"rent_transit_card" csv:"rent_transit_card" db:"rent_transit_card"`
	RentCreditCard  bool `json:"rent_credit_card" csv:"rent_credit_card" db:"rent_credit_card"`

	WardID   ZoneID `json:"ward_id" csv:"ward_id" db:"ward_id"`
	FirstUse Date   `json:"first_use" csv:"first_use" db:"first_use"` // earliest trip start/end at this station
}

// StationFilter represents filter parameters for querying stations
type StationFilter struct {
	WardID   int64 `form:"wardId"`
	Page     int   `form:"page"`
	PageSize int   `form:"pageSize"`
}

// NearestStationQuery locates the closest stations to a coordinate
type NearestStationQuery struct {
	Lat   *float64 `form:"lat" binding:"required"`
	Lon   *float64 `form:"lon" binding:"required"`
	Limit int      `form:"limit"`
}

// StationDistance pairs a station with its distance from a query point
type StationDistance struct {
	Station
	DistanceMeters float64 `json:"distance_meters"`
}
