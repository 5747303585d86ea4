package jobs

import (
	"log"
	"time"

	"github.com/njeri254/tutor_marketplace/database"
	"github.com/njeri254/tutor_marketplace/models"
)

// StartDueSessions flips scheduled sessions to started once their
// scheduled time has arrived.
func StartDueSessions() {
	log.Println("Running job: StartDueSessions...")

	result := database.DB.Model(&models.Session{}).
		Where("status = ? AND scheduled_at <= ?", models.SessionScheduled, time.Now()).
		Update("status", models.SessionStarted)
	if result.Error != nil {
		log.Printf("Error starting due sessions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Started %d due session(s).", result.RowsAffected)
	}
}
