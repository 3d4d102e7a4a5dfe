package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"datacenter-inventory-backend/config"
	"datacenter-inventory-backend/internal/model"
)

// ExpiryStore is the slice of the record store the notifier needs.
type ExpiryStore interface {
	ListEquipmentExpiringOn(ctx context.Context, date time.Time) ([]model.Equipment, error)
}

// Service runs the scheduled license expiry check.
type Service struct {
	cfg    *config.NotifierConfig
	store  ExpiryStore
	sender Sender
}

// NewService creates the expiry notifier.
func NewService(cfg *config.NotifierConfig, store ExpiryStore, sender Sender) *Service {
	return &Service{cfg: cfg, store: store, sender: sender}
}

// Run schedules the daily check and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Expiry notifier is disabled. Not starting.")
		return
	}

	c := cron.New()
	_, err := c.AddFunc(s.cfg.Schedule, func() {
		s.CheckOnce(ctx, time.Now())
	})
	if err != nil {
		log.Printf("Invalid notifier schedule %q: %v. Notifier will not run.", s.cfg.Schedule, err)
		return
	}

	log.Printf("Starting expiry notifier with schedule %q", s.cfg.Schedule)
	c.Start()

	<-ctx.Done()
	log.Println("Expiry notifier shutting down.")
	<-c.Stop().Done()
}

// CheckOnce performs one expiry sweep for the given day. Each configured
// offset bucket is processed independently; a failure in one bucket does not
// prevent the others.
func (s *Service) CheckOnce(ctx context.Context, now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	for _, offset := range s.cfg.DayOffsets {
		targetDate := today.AddDate(0, 0, offset)
		eqs, err := s.store.ListEquipmentExpiringOn(ctx, targetDate)
		if err != nil {
			log.Printf("Expiry check failed for %d-day bucket: %v", offset, err)
			continue
		}
		if len(eqs) == 0 {
			continue
		}

		msg := Message{
			To:      s.cfg.Recipients,
			Subject: fmt.Sprintf("[ACTION REQUIRED] %d Device License(s) Expiring in %d Day(s)", len(eqs), offset),
			Body:    composeExpiryBody(offset, eqs),
		}
		if err := s.sender.Send(ctx, msg); err != nil {
			log.Printf("Failed to send expiry notification for %d-day bucket: %v", offset, err)
			continue
		}
		log.Printf("License expiry notification sent for %d device(s) [%d days].", len(eqs), offset)
	}
}

// composeExpiryBody renders the plain-text notification listing every
// matching device in a fixed-width table.
func composeExpiryBody(offset int, eqs []model.Equipment) string {
	var b strings.Builder
	fmt.Fprintf(&b, `Dear Team,

This is an automated notification regarding equipment license expirations in your datacenter.

The following device license(s) will expire in %d day(s):

`, offset)
	b.WriteString("| Type            | Service Tag    | License       | Serial Number  | Expiry Date |\n")
	b.WriteString("|-----------------|----------------|---------------|----------------|-------------|\n")
	for _, eq := range eqs {
		fmt.Fprintf(&b, "| %-15s | %-14s | %-13s | %-14s | %s |\n",
			eq.EquipmentType, eq.ServiceTag, eq.LicenseType, eq.SerialNumber,
			eq.LicenseExpiredDate.Format("2006-01-02"))
	}
	b.WriteString(`
Please take the necessary steps to renew these licenses to avoid any service interruptions.

Best regards,
Datacenter Inventory System
`)
	return b.String()
}
