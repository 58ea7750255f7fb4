package booking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	reservationRepo "rentwheels/database/repository/reservation"
	"rentwheels/models"
)

// IntervalStore tracks the occupied [start, end) intervals per vehicle and
// serializes conflicting reservation attempts. Each vehicle carries its own
// mutex so bookings on different vehicles proceed in parallel, while two
// concurrent reserves for the same vehicle are linearized: the loser gets a
// conflict, never a double-booking.
type IntervalStore struct {
	buffer time.Duration
	repo   reservationRepo.ReservationRepository // nil disables write-through

	mu       sync.RWMutex
	vehicles map[string]*vehicleIntervals
	byID     map[string]*models.Reservation
}

type vehicleIntervals struct {
	mu    sync.Mutex
	spans []*models.Reservation // held or confirmed only
}

func NewIntervalStore(buffer time.Duration, repo reservationRepo.ReservationRepository) *IntervalStore {
	return &IntervalStore{
		buffer:   buffer,
		repo:     repo,
		vehicles: make(map[string]*vehicleIntervals),
		byID:     make(map[string]*models.Reservation),
	}
}

// WarmUp loads active reservations from the repository so overlap checks
// reflect persisted state after a restart.
func (s *IntervalStore) WarmUp(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		return err
	}
	for i := range active {
		r := active[i]
		vi := s.forVehicle(r.VehicleID)
		vi.mu.Lock()
		vi.spans = append(vi.spans, &r)
		vi.mu.Unlock()
		s.mu.Lock()
		s.byID[r.ID] = &r
		s.mu.Unlock()
	}
	return nil
}

func (s *IntervalStore) forVehicle(vehicleID string) *vehicleIntervals {
	s.mu.RLock()
	vi, ok := s.vehicles[vehicleID]
	s.mu.RUnlock()
	if ok {
		return vi
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if vi, ok = s.vehicles[vehicleID]; ok {
		return vi
	}
	vi = &vehicleIntervals{}
	s.vehicles[vehicleID] = vi
	return vi
}

// conflicts treats intervals as half-open and leaves one turnaround buffer
// between any two bookings: a request starting exactly at an existing
// reservation's buffered end is allowed, one second earlier is not.
func (s *IntervalStore) conflicts(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd.Add(s.buffer)) && bStart.Before(aEnd.Add(s.buffer))
}

// Overlaps reports whether any held/confirmed reservation conflicts with the
// candidate range, returning the first conflicting reservation id. Read-only
// and safe to call repeatedly while quoting.
func (s *IntervalStore) Overlaps(vehicleID string, start, end time.Time) (string, bool) {
	vi := s.forVehicle(vehicleID)
	vi.mu.Lock()
	defer vi.mu.Unlock()
	return s.findConflictLocked(vi, start, end)
}

func (s *IntervalStore) findConflictLocked(vi *vehicleIntervals, start, end time.Time) (string, bool) {
	for _, r := range vi.spans {
		if s.conflicts(start, end, r.Start, r.End) {
			return r.ID, true
		}
	}
	return "", false
}

// Reserve atomically re-checks for overlap and inserts a held reservation.
// Returns a conflict error (an expected outcome, not a failure state) when
// the range is already taken. The reservation carries the quote's price
// snapshot so later rule changes never reprice it.
func (s *IntervalStore) Reserve(ctx context.Context, res *models.Reservation) error {
	vi := s.forVehicle(res.VehicleID)
	vi.mu.Lock()
	defer vi.mu.Unlock()

	if conflictID, ok := s.findConflictLocked(vi, res.Start, res.End); ok {
		return NewConflictError(conflictID)
	}

	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	now := time.Now()
	res.Status = models.ReservationStatusHeld
	res.CreatedAt = now
	res.UpdatedAt = now

	if s.repo != nil {
		if err := s.repo.Insert(ctx, res); err != nil {
			return err
		}
	}

	vi.spans = append(vi.spans, res)
	s.mu.Lock()
	s.byID[res.ID] = res
	s.mu.Unlock()
	return nil
}

// Confirm flips a held reservation to confirmed.
func (s *IntervalStore) Confirm(ctx context.Context, reservationID string) error {
	s.mu.RLock()
	res, ok := s.byID[reservationID]
	s.mu.RUnlock()
	if !ok {
		return NewConflictError(reservationID)
	}

	vi := s.forVehicle(res.VehicleID)
	vi.mu.Lock()
	defer vi.mu.Unlock()

	res.Status = models.ReservationStatusConfirmed
	res.UpdatedAt = time.Now()
	if s.repo != nil {
		return s.repo.UpdateStatus(ctx, reservationID, models.ReservationStatusConfirmed)
	}
	return nil
}

// Release cancels a reservation and frees its interval. Releasing an unknown
// id is a no-op so retried cancellations stay idempotent.
func (s *IntervalStore) Release(ctx context.Context, reservationID string) error {
	s.mu.Lock()
	res, ok := s.byID[reservationID]
	if ok {
		delete(s.byID, reservationID)
	}
	s.mu.Unlock()
	if !ok {
		return nil
	}

	vi := s.forVehicle(res.VehicleID)
	vi.mu.Lock()
	for i, r := range vi.spans {
		if r.ID == reservationID {
			vi.spans = append(vi.spans[:i], vi.spans[i+1:]...)
			break
		}
	}
	vi.mu.Unlock()

	now := time.Now()
	res.Status = models.ReservationStatusCancelled
	res.CancelledAt = &now
	res.UpdatedAt = now
	if s.repo != nil {
		return s.repo.UpdateStatus(ctx, reservationID, models.ReservationStatusCancelled)
	}
	return nil
}

// Get returns the tracked reservation, if any.
func (s *IntervalStore) Get(reservationID string) (*models.Reservation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.byID[reservationID]
	return res, ok
}
