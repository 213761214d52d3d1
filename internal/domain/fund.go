package domain

// MinimumFundCents is the smallest accepted contribution (1.00 in minor units).
const MinimumFundCents int64 = 100

// FundRecord is one confirmed payment. Records are append-only: they are
// written once after the gateway reports the charge captured and never
// mutated afterwards.
type FundRecord struct {
	ID            int32  `json:"id"`
	DonorID       int32  `json:"donor_id"`
	DonorName     string `json:"donor_name"`
	DonorEmail    string `json:"donor_email"`
	AmountCents   int64  `json:"amount_cents"`
	TransactionID string `json:"transaction_id"` // gateway payment reference, unique
	FundedOn      string `json:"funded_on"`
}
