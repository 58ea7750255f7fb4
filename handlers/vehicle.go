package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	reservationRepo "rentwheels/database/repository/reservation"
	vehicleRepo "rentwheels/database/repository/vehicle"
	"rentwheels/utils"
)

// VehicleHandler serves vehicle and reservation reads for the site pages.
type VehicleHandler struct {
	vehicles     vehicleRepo.VehicleRepository
	reservations reservationRepo.ReservationRepository
}

func NewVehicleHandler(vehicles vehicleRepo.VehicleRepository, reservations reservationRepo.ReservationRepository) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, reservations: reservations}
}

// GetVehicle handles GET /api/vehicles/:id.
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	vehicle, err := h.vehicles.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch vehicle", err.Error())
		return
	}
	if vehicle == nil {
		utils.JSONError(c, http.StatusNotFound, "vehicle not found", "")
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// ListVehicleReservations handles GET /api/vehicles/:id/reservations,
// returning the active (held/confirmed) reservations blocking the calendar.
func (h *VehicleHandler) ListVehicleReservations(c *gin.Context) {
	reservations, err := h.reservations.ListActiveByVehicle(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list reservations", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": reservations})
}
