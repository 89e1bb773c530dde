package models

// Role is assigned once at account creation and is not self-service
// mutable afterwards. Role changes are an administrative action outside
// this service.
type Role string

const (
	RoleCitizen    Role = "citizen"
	RoleVolunteer  Role = "volunteer"
	RoleNGO        Role = "ngo"
	RoleRestaurant Role = "restaurant"
	RoleSuperAdmin Role = "superadmin"
)

// ValidRole reports whether r is one of the five known roles.
func ValidRole(r Role) bool {
	switch r {
	case RoleCitizen, RoleVolunteer, RoleNGO, RoleRestaurant, RoleSuperAdmin:
		return true
	}
	return false
}

// Collection names used across the stores and the coordinator.
const (
	ColIssues        = "issues"
	ColOpportunities = "opportunities"
	ColDonations     = "food_donations"
	ColRequests      = "food_requests"
	ColProfiles      = "actor_profiles"
	ColPayments      = "payment_events"
)
