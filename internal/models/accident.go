package models

// AccidentRecord represents a cyclist-involved collision
type AccidentRecord struct {
	Date            Date    `json:"date" csv:"date" db:"date"`
	Latitude        float64 `json:"latitude" csv:"latitude" db:"latitude"`
	Longitude       float64 `json:"longitude" csv:"longitude" db:"longitude"`
	Light           string  `json:"light" csv:"light" db:"light"`
	Class           string  `json:"acclass" csv:"acclass" db:"acclass"` // Fatal, Non-Fatal Injury, Property Damage Only
	InvolvementType string  `json:"invtype" csv:"invtype" db:"invtype"`
	Injury          string  `json:"injury" csv:"injury" db:"injury"`
	CyclistType     string  `json:"cyclistype" csv:"cyclistype" db:"cyclistype"`
	CyclistAction   string  `json:"cycact" csv:"cycact" db:"cycact"`
	WardID          ZoneID  `json:"ward_id" csv:"ward_id" db:"ward_id"`
}

// ClassFatal marks a fatal collision
const ClassFatal = "Fatal"

// AccidentFilter represents filter parameters for querying accidents
type AccidentFilter struct {
	WardID   int64  `form:"wardId"`
	Class    string `form:"acclass"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}
