package notify

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datacenter-inventory-backend/config"
	"datacenter-inventory-backend/internal/model"
)

// mockSender records outbound messages and can simulate failures.
type mockSender struct {
	sent    []Message
	sendErr error
}

func (m *mockSender) Send(_ context.Context, msg Message) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, msg)
	return nil
}

// fakeExpiryStore serves equipment keyed by expiry date.
type fakeExpiryStore struct {
	byDate map[string][]model.Equipment
	errFor map[string]error
}

func (f *fakeExpiryStore) ListEquipmentExpiringOn(_ context.Context, date time.Time) ([]model.Equipment, error) {
	key := date.Format("2006-01-02")
	if err := f.errFor[key]; err != nil {
		return nil, err
	}
	return f.byDate[key], nil
}

func testConfig() *config.NotifierConfig {
	return &config.NotifierConfig{
		Enabled:    true,
		DayOffsets: []int{30, 3},
		Recipients: []string{"ops@example.com"},
	}
}

func TestCheckOnceSendsOneEmailPerBucket(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	store := &fakeExpiryStore{byDate: map[string][]model.Equipment{
		"2026-10-01": {
			{EquipmentType: "Server", ServiceTag: "ST001", LicenseType: "Standard", SerialNumber: "SN001",
				LicenseExpiredDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
			{EquipmentType: "Switch", ServiceTag: "ST002", LicenseType: "Advanced", SerialNumber: "SN002",
				LicenseExpiredDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)},
		},
		"2026-09-04": {
			{EquipmentType: "Router", ServiceTag: "ST003", LicenseType: "Premium", SerialNumber: "SN003",
				LicenseExpiredDate: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)},
		},
	}}
	sender := &mockSender{}

	svc := NewService(testConfig(), store, sender)
	svc.CheckOnce(context.Background(), now)

	require.Len(t, sender.sent, 2)

	thirty := sender.sent[0]
	assert.Equal(t, []string{"ops@example.com"}, thirty.To)
	assert.Equal(t, "[ACTION REQUIRED] 2 Device License(s) Expiring in 30 Day(s)", thirty.Subject)
	assert.Contains(t, thirty.Body, "expire in 30 day(s)")
	assert.Contains(t, thirty.Body, "SN001")
	assert.Contains(t, thirty.Body, "SN002")
	assert.Contains(t, thirty.Body, "2026-10-01")

	three := sender.sent[1]
	assert.Equal(t, "[ACTION REQUIRED] 1 Device License(s) Expiring in 3 Day(s)", three.Subject)
	assert.Contains(t, three.Body, "SN003")
}

func TestCheckOnceSkipsEmptyBuckets(t *testing.T) {
	store := &fakeExpiryStore{byDate: map[string][]model.Equipment{}}
	sender := &mockSender{}

	svc := NewService(testConfig(), store, sender)
	svc.CheckOnce(context.Background(), time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC))

	assert.Empty(t, sender.sent, "no email when nothing expires")
}

func TestCheckOnceBucketsAreIndependent(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	store := &fakeExpiryStore{
		byDate: map[string][]model.Equipment{
			"2026-09-04": {
				{EquipmentType: "Router", ServiceTag: "ST003", LicenseType: "Premium", SerialNumber: "SN003",
					LicenseExpiredDate: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)},
			},
		},
		// The 30-day bucket fails at the store; the 3-day bucket still runs.
		errFor: map[string]error{"2026-10-01": fmt.Errorf("db down")},
	}
	sender := &mockSender{}

	svc := NewService(testConfig(), store, sender)
	svc.CheckOnce(context.Background(), now)

	require.Len(t, sender.sent, 1)
	assert.Contains(t, sender.sent[0].Subject, "3 Day(s)")
}

func TestCheckOnceSendFailureIsLoggedNotFatal(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	store := &fakeExpiryStore{byDate: map[string][]model.Equipment{
		"2026-10-01": {{SerialNumber: "SN001", LicenseExpiredDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}},
	}}
	sender := &mockSender{sendErr: fmt.Errorf("smtp unreachable")}

	svc := NewService(testConfig(), store, sender)
	// Must not panic or abort; the failure is logged and the cycle ends for
	// that bucket.
	svc.CheckOnce(context.Background(), now)
	assert.Empty(t, sender.sent)
}

func TestComposeExpiryBodyTable(t *testing.T) {
	body := composeExpiryBody(3, []model.Equipment{
		{EquipmentType: "Server", ServiceTag: "ST001", LicenseType: "Standard", SerialNumber: "SN001",
			LicenseExpiredDate: time.Date(2026, 9, 4, 0, 0, 0, 0, time.UTC)},
	})
	assert.Contains(t, body, "| Server")
	assert.Contains(t, body, "| ST001")
	assert.Contains(t, body, "| 2026-09-04 |")
	assert.Contains(t, body, "renew these licenses")
}
