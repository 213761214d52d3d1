package domain

type Role string

const (
	RoleDonor     Role = "donor"
	RoleVolunteer Role = "volunteer"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleDonor, RoleVolunteer, RoleAdmin:
		return true
	}
	return false
}

type UserStatus string

const (
	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

func (s UserStatus) Valid() bool {
	return s == UserStatusActive || s == UserStatusBlocked
}

type BloodGroup string

const (
	BloodGroupAPos  BloodGroup = "A+"
	BloodGroupANeg  BloodGroup = "A-"
	BloodGroupBPos  BloodGroup = "B+"
	BloodGroupBNeg  BloodGroup = "B-"
	BloodGroupABPos BloodGroup = "AB+"
	BloodGroupABNeg BloodGroup = "AB-"
	BloodGroupOPos  BloodGroup = "O+"
	BloodGroupONeg  BloodGroup = "O-"
)

func (b BloodGroup) Valid() bool {
	switch b {
	case BloodGroupAPos, BloodGroupANeg, BloodGroupBPos, BloodGroupBNeg,
		BloodGroupABPos, BloodGroupABNeg, BloodGroupOPos, BloodGroupONeg:
		return true
	}
	return false
}

type User struct {
	ID               int32      `json:"id"`
	Email            string     `json:"email"` // unique, immutable once created
	Name             string     `json:"name"`
	PhoneNumber      string     `json:"phone_number"`
	PasswordHash     string     `json:"-"`
	BloodGroup       BloodGroup `json:"blood_group"`
	District         string     `json:"district"`
	Upazila          string     `json:"upazila"`
	Role             Role       `json:"role"`
	Status           UserStatus `json:"status"`
	LastDonationDate *string    `json:"last_donation_date,omitempty"` // YYYY-MM-DD
	AvatarURL        string     `json:"avatar_url"`
	CreatedOn        string     `json:"created_on"`
	UpdatedOn        string     `json:"updated_on"`
}

// IsActive reports whether the user may perform write operations at all.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}
