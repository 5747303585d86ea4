package jobs

import (
	"log"
	"time"

	"github.com/njeri254/tutor_marketplace/database"
	"github.com/njeri254/tutor_marketplace/models"
	"github.com/njeri254/tutor_marketplace/services"
)

// SweepLapsedTrials applies the trial-expiry rule to every enrollment
// whose deadline has passed. The same rule runs lazily on reads, so this
// sweep only bounds how long a lapsed trial can sit unresolved.
func SweepLapsedTrials() {
	log.Println("Running job: SweepLapsedTrials...")

	var due []models.Enrollment
	err := database.DB.
		Where("status = ? AND trial_ends_at < ?", models.EnrollmentTrial, time.Now()).
		Find(&due).Error
	if err != nil {
		log.Printf("Error finding lapsed trials: %v", err)
		return
	}

	if len(due) == 0 {
		log.Println("No lapsed trials found.")
		return
	}

	resolved := 0
	for _, enrollment := range due {
		if _, err := services.ApplyTrialExpiry(database.DB, enrollment.ID); err != nil {
			log.Printf("Error resolving trial for enrollment %s: %v", enrollment.ID, err)
			continue
		}
		resolved++
	}

	log.Printf("Resolved %d lapsed trial(s).", resolved)
}
