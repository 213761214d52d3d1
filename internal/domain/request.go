package domain

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "inprogress"
	RequestStatusDone       RequestStatus = "done"
	RequestStatusCanceled   RequestStatus = "canceled"
)

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusPending, RequestStatusInProgress, RequestStatusDone, RequestStatusCanceled:
		return true
	}
	return false
}

// Terminal reports whether no further status transition is possible.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusDone || s == RequestStatusCanceled
}

type DonationRequest struct {
	ID                int32         `json:"id"`
	RequesterID       int32         `json:"requester_id"`
	RequesterName     string        `json:"requester_name"`
	RequesterEmail    string        `json:"requester_email"`
	RecipientName     string        `json:"recipient_name"`
	RecipientEmail    string        `json:"recipient_email"`
	BloodGroup        BloodGroup    `json:"blood_group"`
	RecipientDistrict string        `json:"recipient_district"`
	RecipientUpazila  string        `json:"recipient_upazila"`
	HospitalName      string        `json:"hospital_name"`
	Address           string        `json:"address"`
	DonationDate      string        `json:"donation_date"` // YYYY-MM-DD
	DonationTime      string        `json:"donation_time"` // HH:MM
	RequestMessage    string        `json:"request_message,omitempty"`
	Status            RequestStatus `json:"status"`
	DonorName         *string       `json:"donor_name,omitempty"`  // null while pending
	DonorEmail        *string       `json:"donor_email,omitempty"` // null while pending
	CreatedOn         string        `json:"created_on"`
	UpdatedOn         string        `json:"updated_on"`
}

// Claimed reports whether a donor has been assigned.
func (r *DonationRequest) Claimed() bool {
	return r.DonorEmail != nil && *r.DonorEmail != ""
}
