package jobs

import (
	"context"
	"time"

	"bloodlink-backend/internal/logger"
)

// eligibilityIntervalDays is the minimum gap between whole-blood donations.
const eligibilityIntervalDays = 90

// SendEligibilityReminders emails donors whose last donation is far enough
// in the past that they can donate again.
func (jr *JobRunner) SendEligibilityReminders() {
	jr.runWithRecovery("SendEligibilityReminders", func() {
		ctx := context.Background()

		cutoff := time.Now().UTC().AddDate(0, 0, -eligibilityIntervalDays).Format(dateLayout)
		donors, err := jr.store.ListEligibleDonors(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to list eligible donors", "error", err)
			return
		}

		sent := 0
		for _, donor := range donors {
			if err := jr.email.SendEligibilityReminder(ctx, donor.Email, donor.Name); err != nil {
				logger.Error("Failed to send eligibility reminder",
					"donor", donor.Email, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent eligibility reminders", "eligible", len(donors), "sent", sent)
	})
}
