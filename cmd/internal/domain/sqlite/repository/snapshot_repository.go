package repository

import (
	"careplus/cmd/internal/domain/entity"
	"careplus/cmd/internal/utils"
	"errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultSnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) *DefaultSnapshotRepository {
	return &DefaultSnapshotRepository{db: db}
}

// Read returns the payload of the named snapshot slot, or nil when the slot
// has never been written.
func (s *DefaultSnapshotRepository) Read(name string) ([]byte, error) {
	var snap entity.Snapshot
	err := s.db.First(&snap, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return snap.Data, nil
}

// Write replaces the named slot wholesale with the given payload.
func (s *DefaultSnapshotRepository) Write(name string, data []byte) error {
	snap := entity.Snapshot{
		Name:      name,
		Data:      data,
		UpdatedAt: utils.NowUTC(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		UpdateAll: true,
	}).Create(&snap).Error
}

// Delete removes the named slot. Deleting an absent slot is not an error.
func (s *DefaultSnapshotRepository) Delete(name string) error {
	return s.db.Delete(&entity.Snapshot{}, "name = ?", name).Error
}
