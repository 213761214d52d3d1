package jobs

import (
	"context"
	"time"

	"bloodlink-backend/internal/domain"
	"bloodlink-backend/internal/logger"
)

const dateLayout = "2006-01-02"

// ExpireStaleRequests cancels pending requests whose donation date passed
// more than the configured number of days ago without a donor claiming them.
func (jr *JobRunner) ExpireStaleRequests() {
	jr.runWithRecovery("ExpireStaleRequests", func() {
		ctx := context.Background()

		staleAfter := jr.config.Scheduler.StaleAfterDays
		cutoff := time.Now().UTC().AddDate(0, 0, -staleAfter).Format(dateLayout)

		count, err := jr.store.CancelStalePending(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to expire stale requests", "error", err)
			return
		}
		logger.Info("Expired stale pending requests", "count", count, "cutoff", cutoff)
	})
}

// SendDonationReminders emails donors whose claimed donation is tomorrow.
func (jr *JobRunner) SendDonationReminders() {
	jr.runWithRecovery("SendDonationReminders", func() {
		ctx := context.Background()

		tomorrow := time.Now().UTC().AddDate(0, 0, 1).Format(dateLayout)
		requests, err := jr.store.ListDueOn(ctx, tomorrow, domain.RequestStatusInProgress)
		if err != nil {
			logger.Error("Failed to list requests due tomorrow", "error", err)
			return
		}

		sent := 0
		for _, req := range requests {
			if req.DonorEmail == nil || req.DonorName == nil {
				continue
			}
			err := jr.email.SendDonationReminder(ctx,
				*req.DonorEmail, *req.DonorName, req.HospitalName, req.DonationDate, req.DonationTime)
			if err != nil {
				logger.Error("Failed to send donation reminder",
					"request_id", req.ID, "donor", *req.DonorEmail, "error", err)
				continue
			}
			sent++
		}
		logger.Info("Sent donation reminders", "due", len(requests), "sent", sent)
	})
}
