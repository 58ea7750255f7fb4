package models

// PickupReminderPayload is the asynq task payload for pre-rental pickup
// reminders, scheduled when a reservation is confirmed.
type PickupReminderPayload struct {
	ReservationID string `json:"reservationId"`
	VehicleID     string `json:"vehicleId"`
	PickupDate    string `json:"pickupDate"`
}
