package domain

// HouseholdInfo is a row of the manager's household list.
type HouseholdInfo struct {
	RoomNumber  int    `json:"room_number"`
	TenantID    int    `json:"tenant_id"`
	TenantName  string `json:"tenant_name"`
	TenantEmail string `json:"tenant_email"`
	TenantPhone string `json:"tenant_phone"`
}

// PersonalHouseholdInfo is the signed-in tenant's household and its fees.
type PersonalHouseholdInfo struct {
	RoomNumber  int           `json:"room_number"`
	TenantID    int           `json:"tenant_id"`
	TenantName  string        `json:"tenant_name"`
	TenantEmail string        `json:"tenant_email"`
	TenantPhone string        `json:"tenant_phone"`
	Fees        []FeeRoomInfo `json:"fees"`
}

// FamilyMember is a person registered in a tenant's household.
type FamilyMember struct {
	ID       int       `json:"id,omitempty"`
	Name     string    `json:"name"`
	Birthday NaiveTime `json:"birthday"`
}
