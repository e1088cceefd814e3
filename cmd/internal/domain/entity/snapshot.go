package entity

// Snapshot is one named slot in the local durable key-value store. Each
// collection is serialized wholesale into its slot on every mutation.
type Snapshot struct {
	Name      string `gorm:"primaryKey"`
	Data      []byte `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null"`
}
