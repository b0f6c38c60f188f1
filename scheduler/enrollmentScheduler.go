// Package scheduler wires the periodic maintenance jobs: enrollment expiry
// and the paid-order reconcile sweep.
package scheduler

import (
	"log"
	"time"

	"madrasa/database"
	"madrasa/services"

	"github.com/robfig/cron/v3"
)

// InitializeEnrollmentScheduler starts the cron jobs. Call once at boot,
// after the database is connected.
func InitializeEnrollmentScheduler() *cron.Cron {
	log.Println("[ENROLLMENT-SCHEDULER] Initializing enrollment scheduler...")

	c := cron.New()

	// Daily at midnight: expire lapsed enrollments
	c.AddFunc("0 0 * * *", func() {
		expired, err := services.ExpireEnrollments(database.Database.Db, time.Now())
		if err != nil {
			log.Printf("[ENROLLMENT-SCHEDULER] expiry sweep failed: %v", err)
			return
		}
		if expired > 0 {
			log.Printf("[ENROLLMENT-SCHEDULER] expired %d lapsed enrollments", expired)
		}
	})

	// Hourly: repair activations that failed after payment
	c.AddFunc("@hourly", func() {
		created, err := services.ReconcilePaidOrders(database.Database.Db)
		if err != nil {
			log.Printf("[ENROLLMENT-SCHEDULER] reconcile sweep failed: %v", err)
			return
		}
		if created > 0 {
			log.Printf("[ENROLLMENT-SCHEDULER] reconcile created %d missing enrollments", created)
		}
	})

	c.Start()
	log.Println("[ENROLLMENT-SCHEDULER] Enrollment scheduler started - expiry daily, reconcile hourly")
	return c
}
