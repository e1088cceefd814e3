package records

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"careplus/cmd/internal/domain/entity"
	"careplus/cmd/internal/utils"
)

// Snapshot slot names in the durable key-value store.
const (
	SlotUsers        = "users"
	SlotAppointments = "appointments"
	SlotSession      = "session"
)

type SnapshotRepository interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	Delete(name string) error
}

// Store owns the three collections: users, appointments and the single
// active session. Every mutation rewrites the touched collection wholesale
// into its snapshot slot, so a restart restores exactly the last state.
type Store struct {
	mu        sync.RWMutex
	snapshots SnapshotRepository

	users        map[string]entity.User
	appointments map[string]entity.Appointment
	session      *entity.User
}

func NewStore(snapshots SnapshotRepository) *Store {
	return &Store{
		snapshots:    snapshots,
		users:        make(map[string]entity.User),
		appointments: make(map[string]entity.Appointment),
	}
}

// Load restores each collection from its snapshot slot. Collections without
// a snapshot are seeded from the fixed initial dataset; a missing session
// slot simply means nobody is logged in. A restored session is taken
// verbatim and not re-validated against the user collection.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, found, err := readSlot[[]entity.User](s.snapshots, SlotUsers)
	if err != nil {
		return err
	}
	if !found {
		users = seedUsers()
	}
	s.users = make(map[string]entity.User, len(users))
	for _, u := range users {
		s.users[u.ID] = u
	}

	appts, found, err := readSlot[[]entity.Appointment](s.snapshots, SlotAppointments)
	if err != nil {
		return err
	}
	if !found {
		appts = seedAppointments()
	}
	s.appointments = make(map[string]entity.Appointment, len(appts))
	for _, a := range appts {
		s.appointments[a.ID] = a
	}

	session, found, err := readSlot[entity.User](s.snapshots, SlotSession)
	if err != nil {
		return err
	}
	s.session = nil
	if found {
		s.session = &session
	}

	if err := s.persistUsers(); err != nil {
		return err
	}
	return s.persistAppointments()
}

// CreateUser stores a new user with a fresh identifier. The role defaults
// to patient when unset. Fails with ErrDuplicateEmail when any existing
// user already has the candidate's email.
func (s *Store) CreateUser(candidate entity.User) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == candidate.Email {
			return nil, ErrDuplicateEmail
		}
	}

	candidate.ID = utils.NewID()
	if candidate.Role == "" {
		candidate.Role = entity.RolePatient
	}
	s.users[candidate.ID] = candidate

	if err := s.persistUsers(); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// DeleteUser removes the user and cascades: every appointment referencing
// the user as patient or doctor is removed with it.
func (s *Store) DeleteUser(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return ErrNotFound
	}
	delete(s.users, id)
	for apptID, a := range s.appointments {
		if a.References(id) {
			delete(s.appointments, apptID)
		}
	}

	if err := s.persistUsers(); err != nil {
		return err
	}
	return s.persistAppointments()
}

// CreateAppointment stores a new appointment with a fresh identifier,
// status forced to pending and the creation time stamped. The target
// (doctor, date, time) tuple must not already be claimed by a non-cancelled
// appointment; a claimed tuple fails with ErrSlotUnavailable. This is the
// only occupancy enforcement in the system: it happens at booking time and
// is not re-checked on later status changes.
func (s *Store) CreateAppointment(candidate entity.Appointment) (*entity.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.appointments {
		if a.Occupies(candidate.DoctorID, candidate.Date, candidate.Time) {
			return nil, ErrSlotUnavailable
		}
	}

	candidate.ID = utils.NewID()
	candidate.Status = entity.StatusPending
	candidate.CreatedAt = utils.NowUTC()
	s.appointments[candidate.ID] = candidate

	if err := s.persistAppointments(); err != nil {
		return nil, err
	}
	return &candidate, nil
}

// SetAppointmentStatus moves the appointment to the given status. Illegal
// transitions (anything out of completed or cancelled, or skipping ahead
// from pending to completed) fail with ErrInvalidTransition.
func (s *Store) SetAppointmentStatus(id string, status entity.Status) (*entity.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !a.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, status)
	}
	a.Status = status
	s.appointments[id] = a

	if err := s.persistAppointments(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Users returns a copy of the user collection ordered by name.
func (s *Store) Users() []entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *Store) UserByID(id string) *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return &u
}

// Authenticate scans the user collection for an exact, case-sensitive
// match on both email and password. A miss on either field is
// ErrInvalidCredentials; the caller learns nothing about which one.
func (s *Store) Authenticate(email, password string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email && u.Password == password {
			return &u, nil
		}
	}
	return nil, ErrInvalidCredentials
}

// Appointments returns a copy of the appointment collection ordered by
// creation time.
func (s *Store) Appointments() []entity.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt < out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// SetSession records the user as the single active session.
func (s *Store) SetSession(u entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = &u
	return writeSlot(s.snapshots, SlotSession, u)
}

// Session returns the active session user, or nil when nobody is logged in.
func (s *Store) Session() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	u := *s.session
	return &u
}

// ClearSession ends the active session. Clearing an absent session is fine.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	return s.snapshots.Delete(SlotSession)
}

// Callers must hold s.mu.
func (s *Store) persistUsers() error {
	users := make([]entity.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return writeSlot(s.snapshots, SlotUsers, users)
}

// Callers must hold s.mu.
func (s *Store) persistAppointments() error {
	appts := make([]entity.Appointment, 0, len(s.appointments))
	for _, a := range s.appointments {
		appts = append(appts, a)
	}
	sort.Slice(appts, func(i, j int) bool { return appts[i].ID < appts[j].ID })
	return writeSlot(s.snapshots, SlotAppointments, appts)
}

func readSlot[T any](snapshots SnapshotRepository, name string) (T, bool, error) {
	var value T
	data, err := snapshots.Read(name)
	if err != nil {
		return value, false, fmt.Errorf("read snapshot %q: %w", name, err)
	}
	if data == nil {
		return value, false, nil
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("decode snapshot %q: %w", name, err)
	}
	return value, true, nil
}

func writeSlot(snapshots SnapshotRepository, name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", name, err)
	}
	if err := snapshots.Write(name, data); err != nil {
		return fmt.Errorf("write snapshot %q: %w", name, err)
	}
	return nil
}
