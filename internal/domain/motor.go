package domain

type MotorUnitStatus string

const (
	MotorUnitStatusAvailable   MotorUnitStatus = "AVAILABLE"
	MotorUnitStatusRented      MotorUnitStatus = "RENTED"
	MotorUnitStatusMaintenance MotorUnitStatus = "MAINTENANCE"
)

// Valid reports whether s is one of the known unit statuses
func (s MotorUnitStatus) Valid() bool {
	switch s {
	case MotorUnitStatusAvailable, MotorUnitStatusRented, MotorUnitStatusMaintenance:
		return true
	}
	return false
}

// MotorType is a motorcycle model offered for rent
type MotorType struct {
	ID          int32  `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	EngineCC    int32  `json:"engine_cc"`
	DailyRate   int64  `json:"daily_rate"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	CreatedOn   string `json:"created_on"`
	UpdatedOn   string `json:"updated_on"`
}

// MotorUnit is a single physical motorcycle of some type
type MotorUnit struct {
	ID          int32           `json:"id"`
	MotorTypeID int32           `json:"motor_type_id"`
	PlateNumber string          `json:"plate_number"`
	Color       string          `json:"color"`
	Year        int32           `json:"year"`
	DailyRate   int64           `json:"daily_rate"`
	Status      MotorUnitStatus `json:"status"`
	ImageURL    string          `json:"image_url"`
	CreatedOn   string          `json:"created_on"`
	UpdatedOn   string          `json:"updated_on"`
}
