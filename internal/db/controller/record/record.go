// Package record provides CRUD, approval and partition queries for
// federation records.
package record

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/swimfed-admin/swimfed-admin/internal/db/models"
)

var (
	// ErrRecordNotFound is returned when a record is not found.
	ErrRecordNotFound = errors.New("record not found")
	// ErrEventEmpty is returned when the event label is empty.
	ErrEventEmpty = errors.New("record event cannot be empty")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// Fields carries the editable attributes of a record.
type Fields struct {
	Category   int
	Poolsize   int
	Sex        int
	Event      string
	HolderName string
	Time       string
	MeetName   string
	RecordDate time.Time
	Valid      bool
}

// Partition identifies one public record table: the (category, poolsize,
// sex) triple all three integer-coded.
type Partition struct {
	Category int
	Poolsize int
	Sex      int
}

// PartitionOf returns the partition a record currently belongs to.
func PartitionOf(r *models.Record) Partition {
	return Partition{Category: r.Category, Poolsize: r.Poolsize, Sex: r.Sex}
}

// GetAll retrieves all records grouped by partition then event.
func GetAll(db *gorm.DB) ([]models.Record, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var records []models.Record
	result := db.Order("category ASC, poolsize ASC, sex ASC, event ASC").Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// GetByID retrieves a record by its ID.
func GetByID(db *gorm.DB, id uint64) (*models.Record, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var r models.Record
	result := db.First(&r, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}

	return &r, nil
}

// PublicList retrieves the public view of one partition: approved and valid
// records ordered by event.
func PublicList(db *gorm.DB, p Partition) ([]models.Record, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var records []models.Record
	result := db.Where("category = ? AND poolsize = ? AND sex = ?", p.Category, p.Poolsize, p.Sex).
		Where("approved = ? AND valid = ?", true, true).
		Order("event ASC, record_date ASC").
		Find(&records)
	if result.Error != nil {
		return nil, result.Error
	}

	return records, nil
}

// Create creates a record authored by the given user. New records start
// unapproved and must pass approval before appearing publicly.
func Create(db *gorm.DB, userID uint64, f Fields) (*models.Record, error) {
	if db == nil {
		return nil, ErrDBNil
	}
	if f.Event == "" {
		return nil, ErrEventEmpty
	}

	r := &models.Record{
		Category:   f.Category,
		Poolsize:   f.Poolsize,
		Sex:        f.Sex,
		Event:      f.Event,
		HolderName: f.HolderName,
		Time:       f.Time,
		MeetName:   f.MeetName,
		RecordDate: f.RecordDate,
		Valid:      f.Valid,
		Editorial: models.Editorial{
			CreatedUserID: userID,
		},
	}

	result := db.Create(r)
	if result.Error != nil {
		return nil, result.Error
	}

	return r, nil
}

// Update revises a record and returns both the partition it occupied before
// the edit and the updated row, so callers can republish every partition the
// record may have moved out of or into. Approval is withdrawn.
func Update(db *gorm.DB, userID, id uint64, f Fields) (*models.Record, Partition, error) {
	if db == nil {
		return nil, Partition{}, ErrDBNil
	}
	if f.Event == "" {
		return nil, Partition{}, ErrEventEmpty
	}

	var r models.Record
	result := db.First(&r, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, Partition{}, ErrRecordNotFound
		}
		return nil, Partition{}, result.Error
	}

	before := PartitionOf(&r)

	r.Category = f.Category
	r.Poolsize = f.Poolsize
	r.Sex = f.Sex
	r.Event = f.Event
	r.HolderName = f.HolderName
	r.Time = f.Time
	r.MeetName = f.MeetName
	r.RecordDate = f.RecordDate
	r.Valid = f.Valid
	r.MarkRevised(userID, time.Now())

	if err := db.Select("*").Save(&r).Error; err != nil {
		return nil, Partition{}, err
	}

	return &r, before, nil
}

// Approve marks a record as approved by the given user.
func Approve(db *gorm.DB, userID, id uint64) (*models.Record, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var r models.Record
	result := db.First(&r, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, result.Error
	}

	r.MarkApproved(userID, time.Now())

	if err := db.Select("*").Save(&r).Error; err != nil {
		return nil, err
	}

	return &r, nil
}

// Delete deletes a record by ID and returns the partition it occupied so
// the caller can republish it.
func Delete(db *gorm.DB, id uint64) (Partition, error) {
	if db == nil {
		return Partition{}, ErrDBNil
	}

	var r models.Record
	result := db.First(&r, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Partition{}, ErrRecordNotFound
		}
		return Partition{}, result.Error
	}

	p := PartitionOf(&r)

	if err := db.Delete(&models.Record{}, id).Error; err != nil {
		return Partition{}, err
	}

	return p, nil
}
