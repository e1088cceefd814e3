package service

import (
	"net/http"
	"testing"

	"careplus/cmd/internal/records"
	"careplus/cmd/internal/utils"
	"careplus/cmd/internal/utils/apierror"
)

func newUserService(t *testing.T) (*DefaultUserService, *records.Store) {
	t.Helper()
	store := seededStore(t)
	return NewUserService(store, newValidate(t)), store
}

func TestRegister_DuplicateEmailLeavesRosterUnchanged(t *testing.T) {
	svc, store := newUserService(t)
	before := len(store.Users())

	first, apierr := svc.Register(&RegisterRequest{Name: "One", Email: "x@y.com", Password: "pw"})
	if apierr != nil {
		t.Fatalf("first register error: %v", apierr)
	}

	_, apierr = svc.Register(&RegisterRequest{Name: "Two", Email: "x@y.com", Password: "pw"})
	if apierr != apierror.DuplicateEmailError {
		t.Fatalf("error = %v, want DuplicateEmailError", apierr)
	}

	if got := len(store.Users()); got != before+1 {
		t.Fatalf("roster size = %d, want %d", got, before+1)
	}
	if store.UserByID(first.User.ID) == nil {
		t.Fatalf("first registration should survive the failed duplicate")
	}
}

func TestRegister_DefaultsToPatientAndSignsIn(t *testing.T) {
	svc, store := newUserService(t)

	resp, apierr := svc.Register(&RegisterRequest{Name: "New User", Email: "n@y.com", Password: "pw"})
	if apierr != nil {
		t.Fatalf("register error: %v", apierr)
	}
	if resp.User.Role != "patient" {
		t.Fatalf("role = %q, want patient", resp.User.Role)
	}
	if resp.Token == "" {
		t.Fatalf("expected a session token")
	}

	session := store.Session()
	if session == nil || session.ID != resp.User.ID {
		t.Fatalf("registration should establish the session, got %+v", session)
	}
}

func TestRegister_DoctorWithProfile(t *testing.T) {
	svc, _ := newUserService(t)

	resp, apierr := svc.Register(&RegisterRequest{
		Name: "Dr. Amaka Obi", Email: "amaka@hc.com", Password: "pw",
		Role: "doctor", Specialization: "Neurologist", Bio: "Movement disorders.",
	})
	if apierr != nil {
		t.Fatalf("register error: %v", apierr)
	}
	if resp.User.Role != "doctor" || resp.User.Specialization != "Neurologist" {
		t.Fatalf("doctor profile not stored: %+v", resp.User)
	}
}

func TestRegister_RejectsAdminRole(t *testing.T) {
	svc, _ := newUserService(t)

	_, apierr := svc.Register(&RegisterRequest{Name: "Sneaky", Email: "s@y.com", Password: "pw", Role: "admin"})
	if apierr == nil || apierr.Code() != http.StatusBadRequest {
		t.Fatalf("error = %v, want 400", apierr)
	}
}

func TestGetDoctors_FiltersByNameOrSpecialization(t *testing.T) {
	svc, _ := newUserService(t)

	all, apierr := svc.GetDoctors("")
	if apierr != nil {
		t.Fatalf("GetDoctors error: %v", apierr)
	}
	if len(all) != 2 {
		t.Fatalf("doctors = %d, want the 2 seeded", len(all))
	}

	cardio, apierr := svc.GetDoctors("cardio")
	if apierr != nil {
		t.Fatalf("GetDoctors error: %v", apierr)
	}
	if len(cardio) != 1 || cardio[0].Name != "Dr. Sarah Smith" {
		t.Fatalf("search=cardio got %+v", cardio)
	}

	byName, apierr := svc.GetDoctors("JOHN")
	if apierr != nil {
		t.Fatalf("GetDoctors error: %v", apierr)
	}
	if len(byName) != 1 || byName[0].Name != "Dr. John Doe" {
		t.Fatalf("search=JOHN got %+v", byName)
	}

	none, apierr := svc.GetDoctors("podiatry")
	if apierr != nil {
		t.Fatalf("GetDoctors error: %v", apierr)
	}
	if len(none) != 0 {
		t.Fatalf("search=podiatry got %+v", none)
	}
}

func TestGetUsers_AdminOnly(t *testing.T) {
	svc, store := newUserService(t)

	if _, apierr := svc.GetUsers(&utils.TokenData{Sub: "u4", Role: "patient"}); apierr != apierror.ForbiddenError {
		t.Fatalf("error = %v, want ForbiddenError", apierr)
	}

	roster, apierr := svc.GetUsers(&utils.TokenData{Sub: "u1", Role: "admin"})
	if apierr != nil {
		t.Fatalf("GetUsers error: %v", apierr)
	}
	if len(roster) != len(store.Users()) {
		t.Fatalf("roster = %d, want %d", len(roster), len(store.Users()))
	}
}

func TestDeleteUser_AdminRulesAndCascade(t *testing.T) {
	svc, store := newUserService(t)
	admin := &utils.TokenData{Sub: "u1", Role: "admin"}

	if apierr := svc.DeleteUser("u4", &utils.TokenData{Sub: "u4", Role: "patient"}); apierr != apierror.ForbiddenError {
		t.Fatalf("non-admin delete error = %v, want ForbiddenError", apierr)
	}
	if apierr := svc.DeleteUser("u1", admin); apierr != apierror.ForbiddenError {
		t.Fatalf("deleting an admin error = %v, want ForbiddenError", apierr)
	}
	if apierr := svc.DeleteUser("ghost", admin); apierr != apierror.NotFoundError {
		t.Fatalf("unknown id error = %v, want NotFoundError", apierr)
	}

	// u4 is the patient on the seeded appointment; deleting them takes the
	// appointment with them.
	if apierr := svc.DeleteUser("u4", admin); apierr != nil {
		t.Fatalf("delete error: %v", apierr)
	}
	if store.UserByID("u4") != nil {
		t.Fatalf("u4 should be gone")
	}
	if got := len(store.Appointments()); got != 0 {
		t.Fatalf("appointments = %d, want 0 after cascade", got)
	}
}
