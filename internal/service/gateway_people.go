package service

import (
	"context"

	"carematch/internal/apperror"
	"carematch/internal/models"
)

// ListUsers returns all users ordered by user_id
func (g *Gateway) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := g.inTx(ctx, func(r repos) (err error) {
		users, err = r.users.ListUsers(ctx)
		return err
	})
	return users, err
}

// GetUser retrieves a user by ID
func (g *Gateway) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user *models.User
	err := g.inTx(ctx, func(r repos) (err error) {
		user, err = getUser(ctx, r, id)
		return err
	})
	return user, err
}

// CreateUser stores a new user and returns it with its generated ID
func (g *Gateway) CreateUser(ctx context.Context, in *models.User) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	u := *in
	var stored *models.User
	err := g.inTx(ctx, func(r repos) error {
		if err := r.users.CreateUser(ctx, &u); err != nil {
			return err
		}
		var err error
		stored, err = getUser(ctx, r, u.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "created", "user", idString(stored.UserID))
	return stored, nil
}

// UpdateUser replaces every non-key field of user id.
func (g *Gateway) UpdateUser(ctx context.Context, id int64, in *models.User) (*models.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var stored *models.User
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.users.UpdateUser(ctx, id, in)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("user", idString(id))
		}
		stored, err = getUser(ctx, r, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "updated", "user", idString(id))
	return stored, nil
}

// DeleteUser fails with a constraint violation while the user is still a
// caregiver or member.
func (g *Gateway) DeleteUser(ctx context.Context, id int64) error {
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.users.DeleteUser(ctx, id)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("user", idString(id))
		}
		return nil
	})
	if err == nil {
		g.logWrite(ctx, "deleted", "user", idString(id))
	}
	return err
}

func getUser(ctx context.Context, r repos, id int64) (*models.User, error) {
	u, err := r.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperror.NotFound("user", idString(id))
	}
	return u, nil
}

// ListCaregivers returns all caregivers ordered by caregiver_user_id
func (g *Gateway) ListCaregivers(ctx context.Context) ([]models.Caregiver, error) {
	var caregivers []models.Caregiver
	err := g.inTx(ctx, func(r repos) (err error) {
		caregivers, err = r.caregivers.ListCaregivers(ctx)
		return err
	})
	return caregivers, err
}

// GetCaregiver retrieves a caregiver by user ID
func (g *Gateway) GetCaregiver(ctx context.Context, userID int64) (*models.Caregiver, error) {
	var c *models.Caregiver
	err := g.inTx(ctx, func(r repos) (err error) {
		c, err = getCaregiver(ctx, r, userID)
		return err
	})
	return c, err
}

// CreateCaregiver registers an existing user as a caregiver.
func (g *Gateway) CreateCaregiver(ctx context.Context, in *models.Caregiver) (*models.Caregiver, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var stored *models.Caregiver
	err := g.inTx(ctx, func(r repos) error {
		if err := r.caregivers.CreateCaregiver(ctx, in); err != nil {
			return err
		}
		var err error
		stored, err = getCaregiver(ctx, r, in.CaregiverUserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "created", "caregiver", idString(stored.CaregiverUserID))
	return stored, nil
}

// UpdateCaregiver keeps the key; in.CaregiverUserID is ignored.
func (g *Gateway) UpdateCaregiver(ctx context.Context, userID int64, in *models.Caregiver) (*models.Caregiver, error) {
	c := *in
	c.CaregiverUserID = userID
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var stored *models.Caregiver
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.caregivers.UpdateCaregiver(ctx, userID, &c)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("caregiver", idString(userID))
		}
		stored, err = getCaregiver(ctx, r, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "updated", "caregiver", idString(userID))
	return stored, nil
}

// DeleteCaregiver removes a caregiver that has no applications or appointments
func (g *Gateway) DeleteCaregiver(ctx context.Context, userID int64) error {
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.caregivers.DeleteCaregiver(ctx, userID)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("caregiver", idString(userID))
		}
		return nil
	})
	if err == nil {
		g.logWrite(ctx, "deleted", "caregiver", idString(userID))
	}
	return err
}

func getCaregiver(ctx context.Context, r repos, userID int64) (*models.Caregiver, error) {
	c, err := r.caregivers.GetCaregiverByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("caregiver", idString(userID))
	}
	return c, nil
}

// ListMembers returns all members ordered by member_user_id
func (g *Gateway) ListMembers(ctx context.Context) ([]models.Member, error) {
	var members []models.Member
	err := g.inTx(ctx, func(r repos) (err error) {
		members, err = r.members.ListMembers(ctx)
		return err
	})
	return members, err
}

// GetMember retrieves a member by user ID
func (g *Gateway) GetMember(ctx context.Context, userID int64) (*models.Member, error) {
	var m *models.Member
	err := g.inTx(ctx, func(r repos) (err error) {
		m, err = getMember(ctx, r, userID)
		return err
	})
	return m, err
}

// CreateMember registers an existing user as a member
func (g *Gateway) CreateMember(ctx context.Context, in *models.Member) (*models.Member, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var stored *models.Member
	err := g.inTx(ctx, func(r repos) error {
		if err := r.members.CreateMember(ctx, in); err != nil {
			return err
		}
		var err error
		stored, err = getMember(ctx, r, in.MemberUserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "created", "member", idString(stored.MemberUserID))
	return stored, nil
}

// UpdateMember keeps the key; in.MemberUserID is ignored.
func (g *Gateway) UpdateMember(ctx context.Context, userID int64, in *models.Member) (*models.Member, error) {
	m := *in
	m.MemberUserID = userID
	if err := m.Validate(); err != nil {
		return nil, err
	}
	var stored *models.Member
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.members.UpdateMember(ctx, userID, &m)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("member", idString(userID))
		}
		stored, err = getMember(ctx, r, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "updated", "member", idString(userID))
	return stored, nil
}

// DeleteMember removes a member that has no address, jobs or appointments
func (g *Gateway) DeleteMember(ctx context.Context, userID int64) error {
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.members.DeleteMember(ctx, userID)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("member", idString(userID))
		}
		return nil
	})
	if err == nil {
		g.logWrite(ctx, "deleted", "member", idString(userID))
	}
	return err
}

func getMember(ctx context.Context, r repos, userID int64) (*models.Member, error) {
	m, err := r.members.GetMemberByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, apperror.NotFound("member", idString(userID))
	}
	return m, nil
}

// ListAddresses returns all addresses ordered by member_user_id
func (g *Gateway) ListAddresses(ctx context.Context) ([]models.Address, error) {
	var addresses []models.Address
	err := g.inTx(ctx, func(r repos) (err error) {
		addresses, err = r.addresses.ListAddresses(ctx)
		return err
	})
	return addresses, err
}

// GetAddress retrieves a member's address
func (g *Gateway) GetAddress(ctx context.Context, memberID int64) (*models.Address, error) {
	var a *models.Address
	err := g.inTx(ctx, func(r repos) (err error) {
		a, err = getAddress(ctx, r, memberID)
		return err
	})
	return a, err
}

// CreateAddress fails with a unique violation when the member already has one.
func (g *Gateway) CreateAddress(ctx context.Context, in *models.Address) (*models.Address, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	var stored *models.Address
	err := g.inTx(ctx, func(r repos) error {
		if err := r.addresses.CreateAddress(ctx, in); err != nil {
			return err
		}
		var err error
		stored, err = getAddress(ctx, r, in.MemberUserID)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "created", "address", idString(stored.MemberUserID))
	return stored, nil
}

// UpdateAddress keeps the key; in.MemberUserID is ignored.
func (g *Gateway) UpdateAddress(ctx context.Context, memberID int64, in *models.Address) (*models.Address, error) {
	a := *in
	a.MemberUserID = memberID
	if err := a.Validate(); err != nil {
		return nil, err
	}
	var stored *models.Address
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.addresses.UpdateAddress(ctx, memberID, &a)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("address", idString(memberID))
		}
		stored, err = getAddress(ctx, r, memberID)
		return err
	})
	if err != nil {
		return nil, err
	}
	g.logWrite(ctx, "updated", "address", idString(memberID))
	return stored, nil
}

// DeleteAddress removes a member's address
func (g *Gateway) DeleteAddress(ctx context.Context, memberID int64) error {
	err := g.inTx(ctx, func(r repos) error {
		found, err := r.addresses.DeleteAddress(ctx, memberID)
		if err != nil {
			return err
		}
		if !found {
			return apperror.NotFound("address", idString(memberID))
		}
		return nil
	})
	if err == nil {
		g.logWrite(ctx, "deleted", "address", idString(memberID))
	}
	return err
}

func getAddress(ctx context.Context, r repos, memberID int64) (*models.Address, error) {
	a, err := r.addresses.GetAddressByMemberID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperror.NotFound("address", idString(memberID))
	}
	return a, nil
}
