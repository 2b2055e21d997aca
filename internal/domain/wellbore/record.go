package wellbore

import "gorm.io/datatypes"

const (
	TableName = "WellBoreArchitectureTable"
	// DateLayout is how dates are written to the date columns.
	DateLayout = "2006-01-02 15:04:05"
)

// Record is the storage row: the listing fields denormalized next to the
// whole aggregate serialized as JSON. Column names are part of the on-disk
// format and must not change.
type Record struct {
	ID                   string         `gorm:"column:ID;type:text;primaryKey;uniqueIndex:WellBoreArchitectureTableIndex"`
	MetaInfo             datatypes.JSON `gorm:"column:MetaInfo;type:text"`
	Name                 *string        `gorm:"column:Name;type:text"`
	Description          *string        `gorm:"column:Description;type:text"`
	CreationDate         *string        `gorm:"column:CreationDate;type:text"`
	LastModificationDate *string        `gorm:"column:LastModificationDate;type:text"`
	WellBoreArchitecture datatypes.JSON `gorm:"column:WellBoreArchitecture;type:text"`
}

func (Record) TableName() string { return TableName }
