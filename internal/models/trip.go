package models

import "time"

// Trip represents one cleaned bike-share ride
type Trip struct {
	ID             int64  `json:"trip_id" db:"trip_id"`
	UserType       string `json:"user_type" db:"user_type"` // Annual Member, Casual Member
	StartStationID int32  `json:"start_station_id" db:"start_station_id"`
	EndStationID   int32  `json:"end_station_id" db:"end_station_id"`
	BikeID         int32  `json:"bike_id" db:"bike_id"` // 0 before bike ids were recorded

	StartTime       time.Time `json:"start_time" db:"start_time"`
	EndTime         time.Time `json:"end_time" db:"end_time"`
	DurationMinutes float64   `json:"duration" db:"duration"`
}

// TimestampLayout is the output format of trip timestamps
const TimestampLayout = "2006-01-02 15:04:05"

// TripRow is the CSV projection of a trip
type TripRow struct {
	ID             int64   `csv:"trip_id"`
	UserType       string  `csv:"user_type"`
	StartStationID int32   `csv:"start_station_id"`
	StartTime      string  `csv:"start_time"`
	EndStationID   int32   `csv:"end_station_id"`
	EndTime        string  `csv:"end_time"`
	BikeID         int32   `csv:"bike_id"`
	Duration       float64 `csv:"duration"`
}

// Row converts a trip to its CSV projection
func (t Trip) Row() TripRow {
	return TripRow{
		ID:             t.ID,
		UserType:       t.UserType,
		StartStationID: t.StartStationID,
		StartTime:      t.StartTime.Format(TimestampLayout),
		EndStationID:   t.EndStationID,
		EndTime:        t.EndTime.Format(TimestampLayout),
		BikeID:         t.BikeID,
		Duration:       t.DurationMinutes,
	}
}

// TripFilter represents filter parameters for querying trips
type TripFilter struct {
	StationID int32  `form:"stationId"` // matches start or end station
	UserType  string `form:"userType"`
	StartTime int64  `form:"startTime"` // Unix timestamp
	EndTime   int64  `form:"endTime"`   // Unix timestamp
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}
