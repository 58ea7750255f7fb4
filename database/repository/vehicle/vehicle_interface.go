package vehicleRepo

import (
	"context"

	"rentwheels/models"
)

// VehicleRepository is the engine's read-only view of the fleet.
type VehicleRepository interface {
	GetByID(ctx context.Context, id string) (*models.Vehicle, error)
	ListByLocation(ctx context.Context, locationID string) ([]models.Vehicle, error)
}
