package importer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected time.Time
		ok       bool
	}{
		{"ISO", "2025-04-25", time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC), true},
		{"day first slashes", "25/04/2025", time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC), true},
		{"month first slashes", "04/25/2025", time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC), true},
		{"year first slashes", "2025/04/25", time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC), true},
		{"day first dashes", "25-04-2025", time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC), true},
		{"month first dashes", "04-25-2025", time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC), true},
		{"datetime keeps date component", "2025-04-25 13:45:00", time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC), true},
		{"surrounding whitespace", "  2025-04-25  ", time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC), true},
		{"garbage", "next tuesday", time.Time{}, false},
		{"empty", "", time.Time{}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := parseDate(tc.input)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, got)
			}
		})
	}
}

func TestParseDateAmbiguousPrefersDayFirst(t *testing.T) {
	// 03/04/2025 is valid under both slash layouts; the earlier layout
	// (DD/MM/YYYY) wins.
	got, ok := parseDate("03/04/2025")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC), got)
}

func TestNormalizeRow(t *testing.T) {
	cols, err := ResolveHeader([]string{"equipment_type", "service_tag", "license_type", "serial_number", "license_expired_date"})
	require.Nil(t, err)

	t.Run("blank row", func(t *testing.T) {
		rec := normalizeRow(cols, 5, []string{"", "  ", "", "", ""})
		assert.True(t, rec.blank)
		assert.Equal(t, 5, rec.row)
	})

	t.Run("trims string fields", func(t *testing.T) {
		rec := normalizeRow(cols, 2, []string{" Server ", " ST001", "Standard ", "SN001", "2025-04-25"})
		assert.False(t, rec.blank)
		assert.Equal(t, "Server", rec.values[FieldEquipmentType])
		assert.Equal(t, "ST001", rec.values[FieldServiceTag])
		assert.Equal(t, "Standard", rec.values[FieldLicenseType])
		assert.Equal(t, "SN001", rec.values[FieldSerialNumber])
		assert.True(t, rec.hasExpiry)
		assert.Equal(t, time.Date(2025, 4, 25, 0, 0, 0, 0, time.UTC), rec.expiry)
	})

	t.Run("whitespace-only value becomes empty string, not blank row", func(t *testing.T) {
		rec := normalizeRow(cols, 3, []string{"Server", "   ", "Standard", "SN002", "2025-04-25"})
		assert.False(t, rec.blank)
		assert.Equal(t, "", rec.values[FieldServiceTag])
	})

	t.Run("short row leaves trailing fields empty", func(t *testing.T) {
		rec := normalizeRow(cols, 4, []string{"Server", "ST003"})
		assert.False(t, rec.blank)
		assert.Equal(t, "", rec.values[FieldSerialNumber])
		assert.False(t, rec.hasExpiry)
	})

	t.Run("unparsable date leaves expiry absent", func(t *testing.T) {
		rec := normalizeRow(cols, 6, []string{"Server", "ST004", "Standard", "SN004", "soon"})
		assert.False(t, rec.blank)
		assert.False(t, rec.hasExpiry)
	})
}
