package utils

import (
	"log"

	"github.com/jinzhu/now"
	"github.com/robfig/cron/v3"

	"lms/config"
	"lms/database"
	paymentModels "lms/models/payment"
)

// InitializeTransactionScheduler sets up the pending-transaction expiry job
func InitializeTransactionScheduler() {
	log.Println("[TXN-SCHEDULER] Initializing transaction scheduler...")

	c := cron.New()

	// Run daily at 2 AM to fail stale pending transactions
	c.AddFunc("0 2 * * *", func() {
		log.Println("[TXN-SCHEDULER] Running daily pending-transaction check...")
		ExpirePendingTransactions()
	})

	c.Start()
	log.Println("[TXN-SCHEDULER] Transaction scheduler started - runs daily at 2 AM")
}

// ExpirePendingTransactions marks pending transactions older than the
// configured TTL as failed so abandoned carts do not linger forever.
func ExpirePendingTransactions() {
	db := database.Database.Db
	cutoff := now.BeginningOfDay().AddDate(0, 0, -config.AppConfig.PendingTransactionTTL)

	result := db.Model(&paymentModels.Transaction{}).
		Where("status = ? AND created_at < ?", paymentModels.TransactionPending, cutoff).
		Update("status", paymentModels.TransactionFailed)
	if result.Error != nil {
		log.Printf("[TXN-SCHEDULER] Error expiring pending transactions: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("[TXN-SCHEDULER] Expired %d stale pending transactions", result.RowsAffected)
	}
}
