package service

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"careplus/cmd/internal/records"
	"careplus/cmd/internal/utils"
	"careplus/cmd/internal/utils/validators"
)

// Shared fixtures for the service tests: a record store backed by in-memory
// snapshot slots, loaded with the seed dataset.

type memorySnapshots struct {
	slots map[string][]byte
}

func newMemorySnapshots() *memorySnapshots {
	return &memorySnapshots{slots: make(map[string][]byte)}
}

func (m *memorySnapshots) Read(name string) ([]byte, error) {
	return m.slots[name], nil
}

func (m *memorySnapshots) Write(name string, data []byte) error {
	m.slots[name] = data
	return nil
}

func (m *memorySnapshots) Delete(name string) error {
	delete(m.slots, name)
	return nil
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := v.RegisterValidation("isodate", validators.IsIsoDate); err != nil {
		t.Fatalf("register isodate: %v", err)
	}
	if err := v.RegisterValidation("timeslot", validators.IsTimeSlot); err != nil {
		t.Fatalf("register timeslot: %v", err)
	}
	return v
}

func seededStore(t *testing.T) *records.Store {
	t.Helper()
	utils.InitJWT("test-secret", time.Hour)
	s := records.NewStore(newMemorySnapshots())
	if err := s.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}
	return s
}
