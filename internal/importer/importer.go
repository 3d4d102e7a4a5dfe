package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"datacenter-inventory-backend/internal/model"
)

// EquipmentStore is the slice of the record store the engine needs.
// FindEquipmentBySerial returns gorm.ErrRecordNotFound when no equipment
// carries the serial.
type EquipmentStore interface {
	FindEquipmentBySerial(ctx context.Context, serial string) (*model.Equipment, error)
	CreateEquipment(ctx context.Context, eq *model.Equipment) error
	UpdateEquipment(ctx context.Context, eq *model.Equipment) error
}

// Summary is the aggregated outcome of one import batch.
type Summary struct {
	Created int
	Updated int
	Errors  []string
}

// Success reports whether at least one row made it into the store.
func (s Summary) Success() bool {
	return s.Created+s.Updated > 0
}

// rowOutcome tags the result of reconciling a single row.
type rowOutcome int

const (
	outcomeCreated rowOutcome = iota
	outcomeUpdated
	outcomeRejected
)

type rowResult struct {
	outcome rowOutcome
	reason  string
}

func rejectedf(format string, args ...any) rowResult {
	return rowResult{outcome: outcomeRejected, reason: fmt.Sprintf(format, args...)}
}

// Importer reconciles parsed sheet rows against the equipment store.
type Importer struct {
	store EquipmentStore
	now   func() time.Time
}

// New creates an importer backed by the given store.
func New(store EquipmentStore) *Importer {
	return &Importer{store: store, now: time.Now}
}

// Import runs the whole batch against the target datacenter. sheet[0] is the
// header row; the remaining rows are data. A *HeaderError means nothing was
// processed. Row-level failures never abort the batch; they accumulate into
// the summary's error list tagged with their sheet row number.
func (imp *Importer) Import(ctx context.Context, datacenterID int64, sheet [][]string) (Summary, error) {
	if len(sheet) == 0 {
		return Summary{}, &HeaderError{Missing: requiredFieldNames()}
	}

	cols, headerErr := ResolveHeader(sheet[0])
	if headerErr != nil {
		return Summary{}, headerErr
	}

	var sum Summary
	for i, cells := range sheet[1:] {
		rec := normalizeRow(cols, i+2, cells)
		if rec.blank {
			continue
		}
		switch res := imp.reconcile(ctx, datacenterID, rec); res.outcome {
		case outcomeCreated:
			sum.Created++
		case outcomeUpdated:
			sum.Updated++
		case outcomeRejected:
			sum.Errors = append(sum.Errors, res.reason)
		}
	}
	return sum, nil
}

// reconcile validates one normalized row and upserts it, keyed on the
// globally unique serial number.
func (imp *Importer) reconcile(ctx context.Context, datacenterID int64, rec record) rowResult {
	var missing []string
	for _, spec := range fieldSpecs {
		if spec.required && rec.values[spec.field] == "" {
			missing = append(missing, string(spec.field))
		}
	}
	if len(missing) > 0 {
		return rejectedf("row %d: missing required fields: %s", rec.row, strings.Join(missing, ", "))
	}

	serial := rec.values[FieldSerialNumber]
	if serial == "" {
		return rejectedf("row %d: serial number is empty", rec.row)
	}

	expiry := rec.expiry
	if !rec.hasExpiry {
		// Expiry is soft-required: an absent or unparsable date defaults to a
		// year out instead of rejecting the row.
		now := imp.now()
		expiry = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 365)
	}

	existing, err := imp.store.FindEquipmentBySerial(ctx, serial)
	switch {
	case err == nil:
		existing.EquipmentType = rec.values[FieldEquipmentType]
		existing.ServiceTag = rec.values[FieldServiceTag]
		existing.LicenseType = rec.values[FieldLicenseType]
		existing.LicenseExpiredDate = expiry
		// Re-importing a serial under another datacenter moves the equipment
		// there. Bulk re-homing via spreadsheet depends on this.
		existing.DatacenterID = datacenterID
		if err := imp.store.UpdateEquipment(ctx, existing); err != nil {
			return rejectedf("row %d: %v", rec.row, err)
		}
		return rowResult{outcome: outcomeUpdated}

	case errors.Is(err, gorm.ErrRecordNotFound):
		eq := &model.Equipment{
			EquipmentType:      rec.values[FieldEquipmentType],
			ServiceTag:         rec.values[FieldServiceTag],
			LicenseType:        rec.values[FieldLicenseType],
			SerialNumber:       serial,
			LicenseExpiredDate: expiry,
			DatacenterID:       datacenterID,
		}
		if err := imp.store.CreateEquipment(ctx, eq); err != nil {
			return rejectedf("row %d: %v", rec.row, err)
		}
		return rowResult{outcome: outcomeCreated}

	default:
		return rejectedf("row %d: %v", rec.row, err)
	}
}
