package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"datacenter-inventory-backend/internal/model"
)

// EquipmentFilter holds the optional search terms for equipment listings.
// Both are case-insensitive substring matches.
type EquipmentFilter struct {
	ServiceTag  string
	LicenseType string
}

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)

	ListDatacenters(ctx context.Context) ([]model.Datacenter, error)
	GetDatacenter(ctx context.Context, id int64) (*model.Datacenter, error)
	CreateDatacenter(ctx context.Context, dc *model.Datacenter) error
	DeleteDatacenter(ctx context.Context, id int64) error

	ListEquipment(ctx context.Context, datacenterID int64, filter EquipmentFilter) ([]model.Equipment, error)
	GetEquipment(ctx context.Context, datacenterID, equipmentID int64) (*model.Equipment, error)
	CreateEquipment(ctx context.Context, eq *model.Equipment) error
	UpdateEquipment(ctx context.Context, eq *model.Equipment) error
	DeleteEquipment(ctx context.Context, datacenterID, equipmentID int64) error
	FindEquipmentBySerial(ctx context.Context, serial string) (*model.Equipment, error)
	DistinctLicenseTypes(ctx context.Context, datacenterID int64) ([]string, error)
	DistinctServiceTags(ctx context.Context, datacenterID int64) ([]string, error)
	ListEquipmentExpiringOn(ctx context.Context, date time.Time) ([]model.Equipment, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) CreateUser(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *gormStore) ListDatacenters(ctx context.Context) ([]model.Datacenter, error) {
	var dcs []model.Datacenter
	if err := s.db.WithContext(ctx).Order("id").Find(&dcs).Error; err != nil {
		return nil, err
	}
	return dcs, nil
}

func (s *gormStore) GetDatacenter(ctx context.Context, id int64) (*model.Datacenter, error) {
	var dc model.Datacenter
	if err := s.db.WithContext(ctx).First(&dc, id).Error; err != nil {
		return nil, err
	}
	return &dc, nil
}

func (s *gormStore) CreateDatacenter(ctx context.Context, dc *model.Datacenter) error {
	return s.db.WithContext(ctx).Create(dc).Error
}

// DeleteDatacenter removes the datacenter and every piece of equipment it
// owns. The delete is explicit rather than relying on database-level
// cascades so the behavior is identical across postgres and sqlite.
func (s *gormStore) DeleteDatacenter(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("datacenter_id = ?", id).Delete(&model.Equipment{}).Error; err != nil {
			return fmt.Errorf("failed to delete equipment for datacenter %d: %w", id, err)
		}
		res := tx.Delete(&model.Datacenter{}, id)
		if res.Error != nil {
			return fmt.Errorf("failed to delete datacenter %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *gormStore) ListEquipment(ctx context.Context, datacenterID int64, filter EquipmentFilter) ([]model.Equipment, error) {
	q := s.db.WithContext(ctx).Where("datacenter_id = ?", datacenterID)
	if filter.ServiceTag != "" {
		q = q.Where("LOWER(service_tag) LIKE ?", "%"+strings.ToLower(filter.ServiceTag)+"%")
	}
	if filter.LicenseType != "" {
		q = q.Where("LOWER(license_type) LIKE ?", "%"+strings.ToLower(filter.LicenseType)+"%")
	}

	var eqs []model.Equipment
	if err := q.Order("id").Find(&eqs).Error; err != nil {
		return nil, err
	}
	return eqs, nil
}

func (s *gormStore) GetEquipment(ctx context.Context, datacenterID, equipmentID int64) (*model.Equipment, error) {
	var eq model.Equipment
	err := s.db.WithContext(ctx).
		Where("id = ? AND datacenter_id = ?", equipmentID, datacenterID).
		First(&eq).Error
	if err != nil {
		return nil, err
	}
	return &eq, nil
}

func (s *gormStore) CreateEquipment(ctx context.Context, eq *model.Equipment) error {
	return s.db.WithContext(ctx).Create(eq).Error
}

func (s *gormStore) UpdateEquipment(ctx context.Context, eq *model.Equipment) error {
	return s.db.WithContext(ctx).Save(eq).Error
}

func (s *gormStore) DeleteEquipment(ctx context.Context, datacenterID, equipmentID int64) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND datacenter_id = ?", equipmentID, datacenterID).
		Delete(&model.Equipment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindEquipmentBySerial looks up equipment by serial number across all
// datacenters. Serial numbers are globally unique.
func (s *gormStore) FindEquipmentBySerial(ctx context.Context, serial string) (*model.Equipment, error) {
	var eq model.Equipment
	if err := s.db.WithContext(ctx).Where("serial_number = ?", serial).First(&eq).Error; err != nil {
		return nil, err
	}
	return &eq, nil
}

func (s *gormStore) DistinctLicenseTypes(ctx context.Context, datacenterID int64) ([]string, error) {
	return s.distinctColumn(ctx, datacenterID, "license_type")
}

func (s *gormStore) DistinctServiceTags(ctx context.Context, datacenterID int64) ([]string, error) {
	return s.distinctColumn(ctx, datacenterID, "service_tag")
}

func (s *gormStore) distinctColumn(ctx context.Context, datacenterID int64, column string) ([]string, error) {
	var values []string
	err := s.db.WithContext(ctx).
		Model(&model.Equipment{}).
		Where("datacenter_id = ?", datacenterID).
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

// ListEquipmentExpiringOn returns equipment whose license expires exactly on
// the given calendar date, across all datacenters.
func (s *gormStore) ListEquipmentExpiringOn(ctx context.Context, date time.Time) ([]model.Equipment, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	var eqs []model.Equipment
	err := s.db.WithContext(ctx).
		Where("license_expired_date >= ? AND license_expired_date < ?", day, day.AddDate(0, 0, 1)).
		Order("id").
		Find(&eqs).Error
	if err != nil {
		return nil, err
	}
	return eqs, nil
}
