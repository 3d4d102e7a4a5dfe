package importer

import (
	"fmt"
	"strings"
)

// Field names a canonical equipment attribute targeted by import. The
// string value doubles as the display name used in error messages.
type Field string

const (
	FieldEquipmentType Field = "equipment type"
	FieldServiceTag    Field = "service tag"
	FieldLicenseType   Field = "license type"
	FieldSerialNumber  Field = "serial number"
	FieldExpiryDate    Field = "license expiry date"
)

type fieldSpec struct {
	field    Field
	required bool
	aliases  []string
}

// fieldSpecs is the static alias table. Resolution walks this slice in
// declaration order and the first alias match wins, so column order in the
// uploaded sheet never matters.
var fieldSpecs = []fieldSpec{
	{FieldEquipmentType, true, []string{"equipment_type", "equipment type", "type"}},
	{FieldServiceTag, true, []string{"service_tag", "service tag", "tag"}},
	{FieldLicenseType, true, []string{"license_type", "license type", "license"}},
	{FieldSerialNumber, true, []string{"serial_number", "serial number", "serial", "sn"}},
	{FieldExpiryDate, false, []string{"license_expired_date", "license expiry date", "license expired date", "expiry date", "expiry"}},
}

// HeaderError reports a structurally invalid header row. No data rows are
// processed when it occurs.
type HeaderError struct {
	Missing  []string // display names of unmatched required fields
	Received []string // the header cells actually present
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("missing required columns: %s (received headers: %s)",
		strings.Join(e.Missing, ", "), strings.Join(e.Received, ", "))
}

// ResolveHeader maps the literal first row of a sheet to column indices per
// canonical field. Header cells are trimmed and lower-cased before matching.
func ResolveHeader(header []string) (map[Field]int, *HeaderError) {
	normalized := make([]string, len(header))
	for i, cell := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	cols := make(map[Field]int, len(fieldSpecs))
	var missing []string
	for _, spec := range fieldSpecs {
		idx := -1
	aliasLoop:
		for _, alias := range spec.aliases {
			for i, cell := range normalized {
				if cell == alias {
					idx = i
					break aliasLoop
				}
			}
		}
		if idx >= 0 {
			cols[spec.field] = idx
		} else if spec.required {
			missing = append(missing, string(spec.field))
		}
	}

	if len(missing) > 0 {
		received := make([]string, len(header))
		for i, cell := range header {
			received[i] = strings.TrimSpace(cell)
		}
		return nil, &HeaderError{Missing: missing, Received: received}
	}
	return cols, nil
}

func requiredFieldNames() []string {
	var names []string
	for _, spec := range fieldSpecs {
		if spec.required {
			names = append(names, string(spec.field))
		}
	}
	return names
}
