package scheduling

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-visit-server/internal/models"
)

// memStore is an in-memory AppointmentStore for tests.
type memStore struct {
	mu    sync.Mutex
	appts map[string]*models.Appointment
	seq   int
	base  time.Time
}

func newMemStore() *memStore {
	return &memStore{
		appts: make(map[string]*models.Appointment),
		base:  time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) Create(_ context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	if appt.ID == "" {
		appt.ID = fmt.Sprintf("appt-%d", m.seq)
	}
	appt.CreatedAt = m.base.Add(time.Duration(m.seq) * time.Second)
	cp := *appt
	m.appts[appt.ID] = &cp
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.appts[id]
	if !ok {
		return nil, ErrNotFound("appointment %s not found", id)
	}
	cp := *a
	return &cp, nil
}

func (m *memStore) Update(_ context.Context, appt *models.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appts[appt.ID]; !ok {
		return ErrNotFound("appointment %s not found", appt.ID)
	}
	cp := *appt
	m.appts[appt.ID] = &cp
	return nil
}

func (m *memStore) ActiveForDay(_ context.Context, doctorID string, date time.Time) ([]models.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Appointment
	for _, a := range m.appts {
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.Status.IsActive() {
			out = append(out, *a)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			prev, cur := out[j-1], out[j]
			if cur.QueuePosition < prev.QueuePosition ||
				(cur.QueuePosition == prev.QueuePosition && cur.CreatedAt.Before(prev.CreatedAt)) {
				out[j-1], out[j] = cur, prev
			}
		}
	}
	return out, nil
}

func (m *memStore) HoldsSlot(_ context.Context, doctorID string, date time.Time, clock string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.appts {
		if a.DoctorID == doctorID && a.Date.Equal(date) && a.Time == clock &&
			(a.Status == models.StatusScheduled || a.Status == models.StatusConfirmed) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) UpdatePositions(_ context.Context, positions map[string]int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id := range positions {
		if _, ok := m.appts[id]; !ok {
			return ErrNotFound("appointment %s not found", id)
		}
	}
	for id, pos := range positions {
		m.appts[id].QueuePosition = pos
	}
	return nil
}

// memDirectory serves doctors and hospitals from maps.
type memDirectory struct {
	doctors   map[string]*models.Doctor
	hospitals map[string]*models.Hospital
}

func (d *memDirectory) GetDoctor(_ context.Context, id string) (*models.Doctor, error) {
	doc, ok := d.doctors[id]
	if !ok {
		return nil, ErrNotFound("doctor %s not found", id)
	}
	cp := *doc
	return &cp, nil
}

func (d *memDirectory) GetHospital(_ context.Context, id string) (*models.Hospital, error) {
	h, ok := d.hospitals[id]
	if !ok {
		return nil, ErrNotFound("hospital %s not found", id)
	}
	cp := *h
	return &cp, nil
}

type fixture struct {
	svc   *Service
	store *memStore
	dir   *memDirectory

	admin    Actor
	orgAdmin Actor
	docActor Actor
	patient  Actor

	// Monday within the doctor's weekly availability.
	monday time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hospital := &models.Hospital{Name: "General", IsActive: true, IsApproved: true}
	hospital.ID = "hosp-1"

	doctor := &models.Doctor{
		UserID:          "doc-user-1",
		HospitalID:      "hosp-1",
		Specialty:       "cardiology",
		ConsultationFee: 150,
		IsActive:        true,
		IsApproved:      true,
		Availability: []models.DoctorAvailability{
			{DoctorID: "doc-1", DayOfWeek: "Monday", StartTime: "09:00", EndTime: "17:00", IsAvailable: true},
			{DoctorID: "doc-1", DayOfWeek: "Tuesday", StartTime: "09:00", EndTime: "17:00", IsAvailable: false},
		},
	}
	doctor.ID = "doc-1"

	dir := &memDirectory{
		doctors:   map[string]*models.Doctor{"doc-1": doctor},
		hospitals: map[string]*models.Hospital{"hosp-1": hospital},
	}
	store := newMemStore()

	svc := NewService(store, dir, dir, zerolog.Nop())
	svc.now = func() time.Time {
		return time.Date(2026, 2, 23, 8, 0, 0, 0, time.UTC)
	}

	return &fixture{
		svc:      svc,
		store:    store,
		dir:      dir,
		admin:    Actor{UserID: "admin-1", Role: models.RoleAdmin},
		orgAdmin: Actor{UserID: "org-1", Role: models.RoleOrgAdmin, HospitalID: "hosp-1"},
		docActor: Actor{UserID: "doc-user-1", Role: models.RoleDoctor},
		patient:  Actor{UserID: "pat-1", Role: models.RolePatient},
		monday:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
	}
}

func (f *fixture) book(t *testing.T, patientID, clock string) *models.Appointment {
	t.Helper()
	appt, err := f.svc.Book(context.Background(), Actor{UserID: patientID, Role: models.RolePatient}, BookingInput{
		PatientID:  patientID,
		DoctorID:   "doc-1",
		HospitalID: "hosp-1",
		Date:       f.monday,
		Time:       clock,
	})
	require.NoError(t, err)
	return appt
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	got, ok := KindOf(err)
	require.True(t, ok, "expected a scheduling error, got %v", err)
	require.Equal(t, kind, got, "wrong error kind: %v", err)
}

func TestBookAssignsSequentialPositions(t *testing.T) {
	f := newFixture(t)

	a1 := f.book(t, "pat-1", "09:00")
	a2 := f.book(t, "pat-2", "09:30")
	a3 := f.book(t, "pat-3", "10:00")

	assert.Equal(t, 1, a1.QueuePosition)
	assert.Equal(t, 2, a2.QueuePosition)
	assert.Equal(t, 3, a3.QueuePosition)

	assert.Equal(t, models.StatusScheduled, a1.Status)
	assert.Equal(t, models.PhaseWaiting, a1.SessionPhase)
	assert.Equal(t, models.PaymentPending, a1.PaymentStatus)
	assert.Equal(t, 150.0, a1.ConsultationFee)
	assert.Equal(t, SlotDurationMinutes, a1.DurationMinutes)
}

func TestBookRejectsDoubleBooking(t *testing.T) {
	f := newFixture(t)
	f.book(t, "pat-1", "10:00")

	_, err := f.svc.Book(context.Background(), f.patient, BookingInput{
		PatientID:  "pat-1",
		DoctorID:   "doc-1",
		HospitalID: "hosp-1",
		Date:       f.monday,
		Time:       "10:00",
	})
	requireKind(t, err, KindConflict)
}

func TestBookSlotFreedByCancellation(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, "pat-1", "10:00")

	_, err := f.svc.SetStatus(context.Background(), f.patient, a.ID, models.StatusCancelled, "can't make it")
	require.NoError(t, err)

	// The slot no longer conflicts once the holder is cancelled.
	f.book(t, "pat-2", "10:00")
}

func TestBookValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	base := BookingInput{PatientID: "pat-1", DoctorID: "doc-1", HospitalID: "hosp-1", Date: f.monday, Time: "10:00"}

	in := base
	in.Time = "10am"
	_, err := f.svc.Book(ctx, f.patient, in)
	requireKind(t, err, KindValidation)

	in = base
	in.Date = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.Book(ctx, f.patient, in)
	requireKind(t, err, KindValidation)

	in = base
	in.DoctorID = "doc-unknown"
	_, err = f.svc.Book(ctx, f.patient, in)
	requireKind(t, err, KindNotFound)

	// Tuesday is marked unavailable in the weekly schedule.
	in = base
	in.Date = time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.Book(ctx, f.patient, in)
	requireKind(t, err, KindConflict)

	// Sunday has no entry at all.
	in = base
	in.Date = time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)
	_, err = f.svc.Book(ctx, f.patient, in)
	requireKind(t, err, KindConflict)

	// Before opening and at/after closing time.
	in = base
	in.Time = "08:30"
	_, err = f.svc.Book(ctx, f.patient, in)
	requireKind(t, err, KindConflict)

	in = base
	in.Time = "17:00"
	_, err = f.svc.Book(ctx, f.patient, in)
	requireKind(t, err, KindConflict)
}

func TestBookRejectsCorruptScheduleEntry(t *testing.T) {
	f := newFixture(t)

	// A malformed stored opening time must not be read as midnight and
	// widen the bookable window.
	f.dir.doctors["doc-1"].Availability[0].StartTime = "9am"
	_, err := f.svc.Book(context.Background(), f.patient, BookingInput{
		PatientID:  "pat-1",
		DoctorID:   "doc-1",
		HospitalID: "hosp-1",
		Date:       f.monday,
		Time:       "00:00",
	})
	requireKind(t, err, KindConflict)
}

func TestBookRejectsUnapprovedParties(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := BookingInput{PatientID: "pat-1", DoctorID: "doc-1", HospitalID: "hosp-1", Date: f.monday, Time: "10:00"}

	f.dir.doctors["doc-1"].IsApproved = false
	_, err := f.svc.Book(ctx, f.patient, base)
	requireKind(t, err, KindConflict)
	f.dir.doctors["doc-1"].IsApproved = true

	f.dir.hospitals["hosp-1"].IsActive = false
	_, err = f.svc.Book(ctx, f.patient, base)
	requireKind(t, err, KindConflict)
	f.dir.hospitals["hosp-1"].IsActive = true

	// Doctor attached to a different hospital than the one requested.
	other := &models.Hospital{Name: "Other", IsActive: true, IsApproved: true}
	other.ID = "hosp-2"
	f.dir.hospitals["hosp-2"] = other
	in := base
	in.HospitalID = "hosp-2"
	_, err = f.svc.Book(ctx, f.patient, in)
	requireKind(t, err, KindConflict)
}

func TestBookPatientsBookForThemselvesOnly(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Book(context.Background(), f.patient, BookingInput{
		PatientID:  "pat-2",
		DoctorID:   "doc-1",
		HospitalID: "hosp-1",
		Date:       f.monday,
		Time:       "10:00",
	})
	requireKind(t, err, KindForbidden)

	// Doctors are not in the booking capability set.
	_, err = f.svc.Book(context.Background(), f.docActor, BookingInput{
		PatientID:  "pat-2",
		DoctorID:   "doc-1",
		HospitalID: "hosp-1",
		Date:       f.monday,
		Time:       "10:00",
	})
	requireKind(t, err, KindForbidden)
}

func TestConcurrentBookingSingleWinner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Book(ctx, Actor{UserID: fmt.Sprintf("pat-%d", i), Role: models.RolePatient}, BookingInput{
				PatientID:  fmt.Sprintf("pat-%d", i),
				DoctorID:   "doc-1",
				HospitalID: "hosp-1",
				Date:       f.monday,
				Time:       "11:00",
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			requireKind(t, err, KindConflict)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestDaySlots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	day, err := f.svc.DaySlots(ctx, "doc-1", f.monday)
	require.NoError(t, err)
	require.True(t, day.Available)
	require.Len(t, day.Slots, 16)

	f.book(t, "pat-1", "09:00")

	day, err = f.svc.DaySlots(ctx, "doc-1", f.monday)
	require.NoError(t, err)
	available := 0
	for _, s := range day.Slots {
		if s.Time == "09:00" {
			assert.False(t, s.Available)
		}
		if s.Available {
			available++
		}
	}
	assert.Equal(t, 15, available)

	// Tuesday is off: no slots at all.
	day, err = f.svc.DaySlots(ctx, "doc-1", time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, day.Available)
	assert.Empty(t, day.Slots)
}

func TestSetStatusHappyPath(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "pat-1", "09:00")

	for _, status := range []models.AppointmentStatus{models.StatusConfirmed, models.StatusInProgress, models.StatusCompleted} {
		updated, err := f.svc.SetStatus(ctx, f.docActor, a.ID, status, "")
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestSetStatusRejectsInvalidTransitions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "pat-1", "09:00")

	_, err := f.svc.SetStatus(ctx, f.docActor, a.ID, models.StatusCompleted, "")
	requireKind(t, err, KindValidation)

	_, err = f.svc.SetStatus(ctx, f.docActor, a.ID, "archived", "")
	requireKind(t, err, KindValidation)

	_, err = f.svc.SetStatus(ctx, f.docActor, "missing", models.StatusConfirmed, "")
	requireKind(t, err, KindNotFound)
}

func TestSetStatusAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "pat-1", "09:00")

	// Patients may cancel their own appointment, and nothing else.
	_, err := f.svc.SetStatus(ctx, f.patient, a.ID, models.StatusConfirmed, "")
	requireKind(t, err, KindForbidden)

	_, err = f.svc.SetStatus(ctx, Actor{UserID: "pat-2", Role: models.RolePatient}, a.ID, models.StatusCancelled, "")
	requireKind(t, err, KindForbidden)

	// A doctor who does not own the appointment is rejected.
	stranger := &models.Doctor{UserID: "doc-user-2", HospitalID: "hosp-1", IsActive: true, IsApproved: true}
	stranger.ID = "doc-2"
	f.dir.doctors["doc-2"] = stranger
	_, err = f.svc.SetStatus(ctx, Actor{UserID: "doc-user-2", Role: models.RoleDoctor}, a.ID, models.StatusConfirmed, "")
	requireKind(t, err, KindForbidden)

	// An organization admin of another hospital is rejected.
	_, err = f.svc.SetStatus(ctx, Actor{UserID: "org-2", Role: models.RoleOrgAdmin, HospitalID: "hosp-2"}, a.ID, models.StatusConfirmed, "")
	requireKind(t, err, KindForbidden)

	// The hospital's own organization admin is allowed.
	updated, err := f.svc.SetStatus(ctx, f.orgAdmin, a.ID, models.StatusConfirmed, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, updated.Status)
}

func TestCancellationRecordsActor(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, "pat-1", "09:00")

	updated, err := f.svc.SetStatus(context.Background(), f.patient, a.ID, models.StatusCancelled, "feeling better")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
	assert.Equal(t, "feeling better", updated.CancellationReason)
	assert.Equal(t, "patient", updated.CancelledBy)
}

func TestSetPhase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "pat-1", "09:00")

	// Phases may be set to any value in any order, independent of status.
	for _, phase := range []models.SessionPhase{models.PhaseExamination, models.PhaseWaiting, models.PhaseDischarge} {
		updated, err := f.svc.SetPhase(ctx, f.docActor, a.ID, phase)
		require.NoError(t, err)
		assert.Equal(t, phase, updated.SessionPhase)
	}

	_, err := f.svc.SetPhase(ctx, f.docActor, a.ID, "triage")
	requireKind(t, err, KindValidation)

	_, err = f.svc.SetPhase(ctx, f.patient, a.ID, models.PhaseExamination)
	requireKind(t, err, KindForbidden)

	stranger := &models.Doctor{UserID: "doc-user-2", HospitalID: "hosp-1", IsActive: true, IsApproved: true}
	stranger.ID = "doc-2"
	f.dir.doctors["doc-2"] = stranger
	_, err = f.svc.SetPhase(ctx, Actor{UserID: "doc-user-2", Role: models.RoleDoctor}, a.ID, models.PhaseExamination)
	requireKind(t, err, KindForbidden)
}

func queuePositions(t *testing.T, f *fixture) map[string]int {
	t.Helper()
	queue, err := f.svc.Queue(context.Background(), f.admin, "doc-1", f.monday)
	require.NoError(t, err)
	out := make(map[string]int, len(queue))
	for _, a := range queue {
		out[a.ID] = a.QueuePosition
	}
	return out
}

func TestMoveUpAtFirstIsNoOp(t *testing.T) {
	f := newFixture(t)
	a1 := f.book(t, "pat-1", "09:00")
	a2 := f.book(t, "pat-2", "09:30")

	moved, err := f.svc.MoveUp(context.Background(), f.docActor, a1.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.QueuePosition)
	assert.Equal(t, map[string]int{a1.ID: 1, a2.ID: 2}, queuePositions(t, f))
}

func TestMoveDownAtLastIsNoOp(t *testing.T) {
	f := newFixture(t)
	f.book(t, "pat-1", "09:00")
	a2 := f.book(t, "pat-2", "09:30")

	moved, err := f.svc.MoveDown(context.Background(), f.docActor, a2.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.QueuePosition)
}

func TestMoveDownSwapsFirstTwo(t *testing.T) {
	f := newFixture(t)
	a1 := f.book(t, "pat-1", "09:00")
	a2 := f.book(t, "pat-2", "09:30")
	a3 := f.book(t, "pat-3", "10:00")

	moved, err := f.svc.MoveDown(context.Background(), f.docActor, a1.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.QueuePosition)
	assert.Equal(t, map[string]int{a1.ID: 2, a2.ID: 1, a3.ID: 3}, queuePositions(t, f))
}

func TestMoveUpSwapsAcrossGap(t *testing.T) {
	f := newFixture(t)
	a1 := f.book(t, "pat-1", "09:00")
	a2 := f.book(t, "pat-2", "09:30")
	a3 := f.book(t, "pat-3", "10:00")

	// Cancelling the middle appointment leaves a gap; move-up still finds
	// the closest predecessor.
	_, err := f.svc.SetStatus(context.Background(), f.admin, a2.ID, models.StatusCancelled, "")
	require.NoError(t, err)

	moved, err := f.svc.MoveUp(context.Background(), f.docActor, a3.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.QueuePosition)
	assert.Equal(t, map[string]int{a1.ID: 3, a3.ID: 1}, queuePositions(t, f))
}

func TestMoveRejectsInactiveAppointment(t *testing.T) {
	f := newFixture(t)
	a := f.book(t, "pat-1", "09:00")
	_, err := f.svc.SetStatus(context.Background(), f.admin, a.ID, models.StatusCancelled, "")
	require.NoError(t, err)

	_, err = f.svc.MoveUp(context.Background(), f.docActor, a.ID)
	requireKind(t, err, KindValidation)
}

func TestCancellationLeavesGapUntilReconcile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a1 := f.book(t, "pat-1", "09:00")
	a2 := f.book(t, "pat-2", "09:30")
	a3 := f.book(t, "pat-3", "10:00")

	_, err := f.svc.SetStatus(ctx, f.admin, a2.ID, models.StatusCancelled, "")
	require.NoError(t, err)

	// Positions keep the gap: [1, _, 3].
	assert.Equal(t, map[string]int{a1.ID: 1, a3.ID: 3}, queuePositions(t, f))

	queue, err := f.svc.Reconcile(ctx, f.docActor, "doc-1", f.monday)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, a1.ID, queue[0].ID)
	assert.Equal(t, 1, queue[0].QueuePosition)
	assert.Equal(t, a3.ID, queue[1].ID)
	assert.Equal(t, 2, queue[1].QueuePosition)
}

func TestReconcileIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "pat-1", "09:00")
	f.book(t, "pat-2", "09:30")

	first, err := f.svc.Reconcile(ctx, f.admin, "doc-1", f.monday)
	require.NoError(t, err)
	second, err := f.svc.Reconcile(ctx, f.admin, "doc-1", f.monday)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBulkReorderAppliesPermutation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a1 := f.book(t, "pat-1", "09:00")
	a2 := f.book(t, "pat-2", "09:30")
	a3 := f.book(t, "pat-3", "10:00")

	err := f.svc.BulkReorder(ctx, f.docActor, "doc-1", f.monday, []ReorderItem{
		{AppointmentID: a1.ID, Position: 3},
		{AppointmentID: a2.ID, Position: 1},
		{AppointmentID: a3.ID, Position: 2},
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{a1.ID: 3, a2.ID: 1, a3.ID: 2}, queuePositions(t, f))
}

func TestBulkReorderValidatesBeforeWriting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a1 := f.book(t, "pat-1", "09:00")
	a2 := f.book(t, "pat-2", "09:30")

	before := queuePositions(t, f)

	// Unknown appointment: nothing is written.
	err := f.svc.BulkReorder(ctx, f.docActor, "doc-1", f.monday, []ReorderItem{
		{AppointmentID: a1.ID, Position: 2},
		{AppointmentID: "ghost", Position: 1},
	})
	requireKind(t, err, KindNotFound)
	assert.Equal(t, before, queuePositions(t, f))

	// Duplicate target positions.
	err = f.svc.BulkReorder(ctx, f.docActor, "doc-1", f.monday, []ReorderItem{
		{AppointmentID: a1.ID, Position: 1},
		{AppointmentID: a2.ID, Position: 1},
	})
	requireKind(t, err, KindValidation)

	// Non-positive position.
	err = f.svc.BulkReorder(ctx, f.docActor, "doc-1", f.monday, []ReorderItem{
		{AppointmentID: a1.ID, Position: 0},
	})
	requireKind(t, err, KindValidation)

	// Empty list.
	err = f.svc.BulkReorder(ctx, f.docActor, "doc-1", f.monday, nil)
	requireKind(t, err, KindValidation)

	assert.Equal(t, before, queuePositions(t, f))
}

func TestQueueAuthorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.book(t, "pat-1", "09:00")

	_, err := f.svc.Queue(ctx, f.patient, "doc-1", f.monday)
	requireKind(t, err, KindForbidden)

	stranger := &models.Doctor{UserID: "doc-user-2", HospitalID: "hosp-2", IsActive: true, IsApproved: true}
	stranger.ID = "doc-2"
	f.dir.doctors["doc-2"] = stranger
	_, err = f.svc.Queue(ctx, Actor{UserID: "doc-user-2", Role: models.RoleDoctor}, "doc-1", f.monday)
	requireKind(t, err, KindForbidden)

	_, err = f.svc.Queue(ctx, Actor{UserID: "org-2", Role: models.RoleOrgAdmin, HospitalID: "hosp-2"}, "doc-1", f.monday)
	requireKind(t, err, KindForbidden)

	queue, err := f.svc.Queue(ctx, f.orgAdmin, "doc-1", f.monday)
	require.NoError(t, err)
	assert.Len(t, queue, 1)
}

func TestGetVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	a := f.book(t, "pat-1", "09:00")

	for _, actor := range []Actor{f.patient, f.docActor, f.orgAdmin, f.admin} {
		got, err := f.svc.Get(ctx, actor, a.ID)
		require.NoError(t, err, "actor %s", actor.Role)
		assert.Equal(t, a.ID, got.ID)
	}

	_, err := f.svc.Get(ctx, Actor{UserID: "pat-2", Role: models.RolePatient}, a.ID)
	requireKind(t, err, KindForbidden)
}
