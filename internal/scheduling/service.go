package scheduling

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"hospital-visit-server/internal/models"
)

// Service implements the visit-scheduling core: slot booking with conflict
// avoidance, the per-(doctor,date) ordered queue and the appointment
// lifecycle. Every mutation of one partition runs under that partition's
// lock, so bookings, position allocation and reorders cannot interleave.
type Service struct {
	store     AppointmentStore
	doctors   DoctorDirectory
	hospitals HospitalDirectory
	locks     *partitionLocks
	log       zerolog.Logger
	now       func() time.Time
}

// NewService creates a scheduling service over the given collaborators.
func NewService(store AppointmentStore, doctors DoctorDirectory, hospitals HospitalDirectory, log zerolog.Logger) *Service {
	return &Service{
		store:     store,
		doctors:   doctors,
		hospitals: hospitals,
		locks:     newPartitionLocks(),
		log:       log,
		now:       time.Now,
	}
}

// BookingInput is a request to reserve a slot with a doctor.
type BookingInput struct {
	PatientID       string
	DoctorID        string
	HospitalID      string
	Date            time.Time
	Time            string
	Type            string
	DurationMinutes int
}

// ReorderItem assigns one appointment a new queue position.
type ReorderItem struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
	Position      int    `json:"position" binding:"required"`
}

// Book validates a booking request against the doctor's availability and the
// conflict guard, allocates the next queue position and persists the
// appointment, all under the partition lock. The position is computed before
// the single insert, so an appointment can never land without one.
func (s *Service) Book(ctx context.Context, actor Actor, in BookingInput) (*models.Appointment, error) {
	if !Allowed(actor, OpBook) {
		return nil, ErrForbidden("role %s may not book appointments", actor.Role)
	}
	if actor.Role == models.RolePatient && actor.UserID != in.PatientID {
		return nil, ErrForbidden("patients may only book appointments for themselves")
	}
	if !ValidClock(in.Time) {
		return nil, ErrValidation("invalid appointment time %q, expected HH:MM", in.Time)
	}

	date := DateOnly(in.Date)
	if date.Before(DateOnly(s.now())) {
		return nil, ErrValidation("appointment date must not be in the past")
	}

	doctor, err := s.doctors.GetDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.IsActive || !doctor.IsApproved {
		return nil, ErrConflict("doctor is not active or not approved")
	}

	hospital, err := s.hospitals.GetHospital(ctx, in.HospitalID)
	if err != nil {
		return nil, err
	}
	if !hospital.IsActive || !hospital.IsApproved {
		return nil, ErrConflict("hospital is not active or not approved")
	}
	if doctor.HospitalID != hospital.ID {
		return nil, ErrConflict("doctor does not belong to the requested hospital")
	}

	window, ok := ResolveDay(doctor.Availability, date)
	if !ok {
		return nil, ErrConflict("doctor is not available on %s", date.Weekday())
	}
	requested, err := parseClock(in.Time)
	if err != nil {
		return nil, ErrValidation("%v", err)
	}
	start, errStart := parseClock(window.Start)
	end, errEnd := parseClock(window.End)
	if errStart != nil || errEnd != nil || requested < start || requested >= end {
		return nil, ErrConflict("requested time %s is outside the doctor's hours", in.Time)
	}

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = SlotDurationMinutes
	}

	unlock := s.locks.lock(partitionKey(doctor.ID, date))
	defer unlock()

	taken, err := s.store.HoldsSlot(ctx, doctor.ID, date, in.Time)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrConflict("slot %s on %s is already booked", in.Time, date.Format("2006-01-02"))
	}

	active, err := s.store.ActiveForDay(ctx, doctor.ID, date)
	if err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		PatientID:       in.PatientID,
		DoctorID:        doctor.ID,
		HospitalID:      hospital.ID,
		Date:            date,
		Time:            in.Time,
		DurationMinutes: duration,
		Status:          models.StatusScheduled,
		SessionPhase:    models.PhaseWaiting,
		QueuePosition:   NextPosition(active),
		Type:            in.Type,
		ConsultationFee: doctor.ConsultationFee,
		PaymentStatus:   models.PaymentPending,
	}
	if err := s.store.Create(ctx, appt); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("appointmentId", appt.ID).
		Str("doctorId", appt.DoctorID).
		Str("date", date.Format("2006-01-02")).
		Str("time", appt.Time).
		Int("queuePosition", appt.QueuePosition).
		Msg("appointment booked")
	return appt, nil
}

// Get returns one appointment, visible to the involved patient, the assigned
// doctor, the hospital's organization admin and admins.
func (s *Service) Get(ctx context.Context, actor Actor, id string) (*models.Appointment, error) {
	appt, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.appointmentScope(ctx, actor, appt); err != nil {
		return nil, err
	}
	return appt, nil
}

// SetStatus applies one transition of the appointment status machine.
// Patients may only cancel their own appointment; the assigned doctor, the
// hospital's organization admin and admins may apply any permitted
// transition. Cancellation records the cancelling role and optional reason.
func (s *Service) SetStatus(ctx context.Context, actor Actor, id string, status models.AppointmentStatus, reason string) (*models.Appointment, error) {
	if !models.IsValidStatus(status) {
		return nil, ErrValidation("unknown appointment status %q", status)
	}

	appt, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.Role == models.RolePatient {
		if appt.PatientID != actor.UserID {
			return nil, ErrForbidden("patients may only act on their own appointments")
		}
		if status != models.StatusCancelled {
			return nil, ErrForbidden("patients may only cancel appointments")
		}
	} else {
		if !Allowed(actor, OpChangeStatus) {
			return nil, ErrForbidden("role %s may not change appointment status", actor.Role)
		}
		if err := s.appointmentScope(ctx, actor, appt); err != nil {
			return nil, err
		}
	}

	if !CanTransition(appt.Status, status) {
		return nil, ErrValidation("cannot transition appointment from %s to %s", appt.Status, status)
	}

	unlock := s.locks.lock(partitionKey(appt.DoctorID, appt.Date))
	defer unlock()

	appt.Status = status
	if status == models.StatusCancelled {
		appt.CancellationReason = reason
		appt.CancelledBy = string(actor.Role)
	}
	if err := s.store.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("appointmentId", appt.ID).
		Str("status", string(status)).
		Str("actorRole", string(actor.Role)).
		Msg("appointment status changed")
	return appt, nil
}

// SetPhase sets the session phase directly to any known value. Phases are not
// restricted to the next workflow step and are independent of the booking
// status; only the assigned doctor (or an admin) may set them.
func (s *Service) SetPhase(ctx context.Context, actor Actor, id string, phase models.SessionPhase) (*models.Appointment, error) {
	if !models.IsValidSessionPhase(phase) {
		return nil, ErrValidation("unknown session phase %q", phase)
	}
	if !Allowed(actor, OpSetPhase) {
		return nil, ErrForbidden("role %s may not change the session phase", actor.Role)
	}

	appt, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.appointmentScope(ctx, actor, appt); err != nil {
		return nil, err
	}

	appt.SessionPhase = phase
	if err := s.store.Update(ctx, appt); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("appointmentId", appt.ID).
		Str("sessionPhase", string(phase)).
		Msg("session phase changed")
	return appt, nil
}

// MoveUp swaps the appointment with its predecessor in the queue. A no-op
// when the appointment already leads its partition.
func (s *Service) MoveUp(ctx context.Context, actor Actor, id string) (*models.Appointment, error) {
	return s.move(ctx, actor, id, neighborBelow)
}

// MoveDown swaps the appointment with its successor in the queue. A no-op
// when the appointment is already last.
func (s *Service) MoveDown(ctx context.Context, actor Actor, id string) (*models.Appointment, error) {
	return s.move(ctx, actor, id, neighborAbove)
}

func (s *Service) move(ctx context.Context, actor Actor, id string, pick func([]models.Appointment, *models.Appointment) *models.Appointment) (*models.Appointment, error) {
	if !Allowed(actor, OpMoveQueue) {
		return nil, ErrForbidden("role %s may not reorder the queue", actor.Role)
	}

	appt, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.appointmentScope(ctx, actor, appt); err != nil {
		return nil, err
	}
	if !appt.Status.IsActive() {
		return nil, ErrValidation("appointment is not in the active queue")
	}

	unlock := s.locks.lock(partitionKey(appt.DoctorID, appt.Date))
	defer unlock()

	active, err := s.store.ActiveForDay(ctx, appt.DoctorID, appt.Date)
	if err != nil {
		return nil, err
	}
	var current *models.Appointment
	for i := range active {
		if active[i].ID == appt.ID {
			current = &active[i]
			break
		}
	}
	if current == nil {
		return nil, ErrNotFound("appointment is no longer in the active queue")
	}

	other := pick(active, current)
	if other == nil {
		return current, nil
	}

	positions := map[string]int{
		current.ID: other.QueuePosition,
		other.ID:   current.QueuePosition,
	}
	if err := s.store.UpdatePositions(ctx, positions); err != nil {
		return nil, err
	}
	current.QueuePosition, other.QueuePosition = other.QueuePosition, current.QueuePosition

	s.log.Info().
		Str("appointmentId", current.ID).
		Str("swappedWith", other.ID).
		Int("queuePosition", current.QueuePosition).
		Msg("queue positions swapped")
	return current, nil
}

// BulkReorder overwrites queue positions from an explicit list. The whole
// list is validated against the partition's active appointments before any
// write, then applied atomically in one transaction.
func (s *Service) BulkReorder(ctx context.Context, actor Actor, doctorID string, date time.Time, items []ReorderItem) error {
	if !Allowed(actor, OpBulkReorder) {
		return ErrForbidden("role %s may not reorder the queue", actor.Role)
	}
	if err := s.partitionScope(ctx, actor, doctorID); err != nil {
		return err
	}
	if len(items) == 0 {
		return ErrValidation("reorder list is empty")
	}

	date = DateOnly(date)
	unlock := s.locks.lock(partitionKey(doctorID, date))
	defer unlock()

	active, err := s.store.ActiveForDay(ctx, doctorID, date)
	if err != nil {
		return err
	}
	inPartition := make(map[string]bool, len(active))
	for _, a := range active {
		inPartition[a.ID] = true
	}

	positions := make(map[string]int, len(items))
	seen := make(map[int]string, len(items))
	for _, item := range items {
		if item.Position < 1 {
			return ErrValidation("queue positions must be positive, got %d", item.Position)
		}
		if !inPartition[item.AppointmentID] {
			return ErrNotFound("appointment %s is not active in this queue", item.AppointmentID)
		}
		if _, dup := positions[item.AppointmentID]; dup {
			return ErrValidation("appointment %s listed twice", item.AppointmentID)
		}
		if prev, dup := seen[item.Position]; dup {
			return ErrValidation("position %d assigned to both %s and %s", item.Position, prev, item.AppointmentID)
		}
		positions[item.AppointmentID] = item.Position
		seen[item.Position] = item.AppointmentID
	}

	if err := s.store.UpdatePositions(ctx, positions); err != nil {
		return err
	}

	s.log.Info().
		Str("doctorId", doctorID).
		Str("date", date.Format("2006-01-02")).
		Int("updated", len(positions)).
		Msg("queue bulk reordered")
	return nil
}

// Reconcile renumbers the partition's active appointments into a gap-free
// 1..n sequence ordered by (current position, creation time). Idempotent;
// used to heal gaps after cancellations.
func (s *Service) Reconcile(ctx context.Context, actor Actor, doctorID string, date time.Time) ([]models.Appointment, error) {
	if !Allowed(actor, OpReconcile) {
		return nil, ErrForbidden("role %s may not reconcile the queue", actor.Role)
	}
	if err := s.partitionScope(ctx, actor, doctorID); err != nil {
		return nil, err
	}

	date = DateOnly(date)
	unlock := s.locks.lock(partitionKey(doctorID, date))
	defer unlock()

	active, err := s.store.ActiveForDay(ctx, doctorID, date)
	if err != nil {
		return nil, err
	}

	changed := ReconcilePositions(active)
	if len(changed) > 0 {
		if err := s.store.UpdatePositions(ctx, changed); err != nil {
			return nil, err
		}
		for i := range active {
			if pos, ok := changed[active[i].ID]; ok {
				active[i].QueuePosition = pos
			}
		}
		s.log.Info().
			Str("doctorId", doctorID).
			Str("date", date.Format("2006-01-02")).
			Int("renumbered", len(changed)).
			Msg("queue reconciled")
	}

	sortByPosition(active)
	return active, nil
}

// Queue returns the ordered active appointments of one partition.
func (s *Service) Queue(ctx context.Context, actor Actor, doctorID string, date time.Time) ([]models.Appointment, error) {
	if !Allowed(actor, OpViewQueue) {
		return nil, ErrForbidden("role %s may not view the queue", actor.Role)
	}
	if err := s.partitionScope(ctx, actor, doctorID); err != nil {
		return nil, err
	}
	return s.store.ActiveForDay(ctx, doctorID, DateOnly(date))
}

// DayAvailability is the enumerated slot grid for one doctor and date.
type DayAvailability struct {
	Available bool   `json:"available"`
	Window    Window `json:"window,omitempty"`
	Slots     []Slot `json:"slots"`
}

// DaySlots enumerates the doctor's candidate slots for a date, marking each
// slot taken by an active appointment. Lock-free: a stale read here is
// re-checked by the booking guard.
func (s *Service) DaySlots(ctx context.Context, doctorID string, date time.Time) (*DayAvailability, error) {
	doctor, err := s.doctors.GetDoctor(ctx, doctorID)
	if err != nil {
		return nil, err
	}

	date = DateOnly(date)
	window, ok := ResolveDay(doctor.Availability, date)
	if !ok {
		return &DayAvailability{Available: false, Slots: []Slot{}}, nil
	}

	active, err := s.store.ActiveForDay(ctx, doctor.ID, date)
	if err != nil {
		return nil, err
	}
	booked := make(map[string]bool, len(active))
	for _, a := range active {
		booked[a.Time] = true
	}

	slots, err := EnumerateSlots(window, booked)
	if err != nil {
		return nil, err
	}
	return &DayAvailability{Available: true, Window: window, Slots: slots}, nil
}

// appointmentScope enforces ownership against one appointment: the involved
// patient, the assigned doctor, the hospital's organization admin, or admin.
func (s *Service) appointmentScope(ctx context.Context, actor Actor, appt *models.Appointment) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleOrgAdmin:
		if appt.HospitalID != actor.HospitalID {
			return ErrForbidden("appointment belongs to another hospital")
		}
		return nil
	case models.RoleDoctor:
		doctor, err := s.doctors.GetDoctor(ctx, appt.DoctorID)
		if err != nil {
			return err
		}
		if doctor.UserID != actor.UserID {
			return ErrForbidden("doctors may only act on their own appointments")
		}
		return nil
	case models.RolePatient:
		if appt.PatientID != actor.UserID {
			return ErrForbidden("patients may only act on their own appointments")
		}
		return nil
	}
	return ErrForbidden("unknown role %q", actor.Role)
}

// partitionScope enforces ownership against a whole (doctor, date) queue.
func (s *Service) partitionScope(ctx context.Context, actor Actor, doctorID string) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	doctor, err := s.doctors.GetDoctor(ctx, doctorID)
	if err != nil {
		return err
	}
	switch actor.Role {
	case models.RoleOrgAdmin:
		if doctor.HospitalID != actor.HospitalID {
			return ErrForbidden("queue belongs to another hospital")
		}
		return nil
	case models.RoleDoctor:
		if doctor.UserID != actor.UserID {
			return ErrForbidden("doctors may only manage their own queue")
		}
		return nil
	}
	return ErrForbidden("role %s may not manage this queue", actor.Role)
}
