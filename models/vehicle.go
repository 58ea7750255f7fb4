package models

// VehicleCategory groups vehicles for pricing and utilization purposes.
type VehicleCategory string

const (
	CategorySedan  VehicleCategory = "sedan"
	CategorySUV    VehicleCategory = "suv"
	CategoryExotic VehicleCategory = "exotic"
	CategoryVan    VehicleCategory = "van"
)

// Vehicle is the engine's read-only view of a fleet vehicle. Fleet management
// mutates these records elsewhere; the booking engine only reads them.
type Vehicle struct {
	ID            string          `bson:"id" json:"id"`
	Name          string          `bson:"name" json:"name"`
	Category      VehicleCategory `bson:"category" json:"category"`
	LocationID    string          `bson:"location_id" json:"location_id"`
	BaseDailyRate float64         `bson:"base_daily_rate" json:"base_daily_rate"` // fallback display rate, pricing uses base rules
	Currency      string          `bson:"currency" json:"currency"`
	// Utilization is the fraction [0,1] of this vehicle's category currently
	// rented. Snapshotted into the request context at quote time.
	Utilization float64 `bson:"utilization" json:"utilization"`
}
