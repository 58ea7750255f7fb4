package reservationRepo

import (
	"context"

	"rentwheels/models"
)

// ReservationRepository persists reservation records. The in-memory interval
// store is authoritative for overlap checks; this repository is the durable
// record behind it.
type ReservationRepository interface {
	Insert(ctx context.Context, r *models.Reservation) error
	UpdateStatus(ctx context.Context, id string, status models.ReservationStatus) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	ListActive(ctx context.Context) ([]models.Reservation, error)
	ListActiveByVehicle(ctx context.Context, vehicleID string) ([]models.Reservation, error)
}
