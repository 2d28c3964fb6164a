package models

// Member extends a User who posts jobs for a dependent.
type Member struct {
	MemberUserID         int64   `json:"member_user_id"`
	HouseRules           *string `json:"house_rules"`
	DependentDescription *string `json:"dependent_description"`
}

func (m *Member) Validate() error {
	return requireID("member_user_id", m.MemberUserID)
}

// Address belongs to exactly one Member and shares its key.
type Address struct {
	MemberUserID int64   `json:"member_user_id"`
	HouseNumber  *string `json:"house_number"`
	Street       *string `json:"street"`
	Town         *string `json:"town"`
}

func (a *Address) Validate() error {
	return requireID("member_user_id", a.MemberUserID)
}
