package repository

import (
	"iter"

	"github.com/iliyamo/library-study-space/internal/model"
	"github.com/iliyamo/library-study-space/internal/utils"
)

// holderSeed is one fixed identity loaded at startup: four students
// and two staff members with well-known demo passwords.
type holderSeed struct {
	id       model.HolderID
	name     string
	email    string
	password string
	role     string
	title    string
}

var defaultHolders = []holderSeed{
	{"STU001", "John Smith", "john.smith@university.edu", "student123", model.RoleStudent, ""},
	{"STU002", "Emma Johnson", "emma.johnson@university.edu", "student123", model.RoleStudent, ""},
	{"STU003", "Michael Brown", "michael.brown@university.edu", "student123", model.RoleStudent, ""},
	{"STU004", "Sarah Davis", "sarah.davis@university.edu", "student123", model.RoleStudent, ""},
	{"STAFF001", "Dr. Alice Wilson", "alice.wilson@university.edu", "staff123", model.RoleStaff, "Head Librarian"},
	{"STAFF002", "Bob Thompson", "bob.thompson@university.edu", "staff123", model.RoleStaff, "Assistant Librarian"},
}

// HolderRepo stores the student and staff identities.  The roster
// is fixed at construction; only the informational current-session
// back-reference changes afterwards.
type HolderRepo struct {
	holders map[model.HolderID]*model.Holder
	order   []model.HolderID
}

// NewHolderRepo seeds the fixed roster, hashing each demo password
// with bcrypt at the given cost.
func NewHolderRepo(bcryptCost int) (*HolderRepo, error) {
	r := &HolderRepo{holders: make(map[model.HolderID]*model.Holder)}
	for _, seed := range defaultHolders {
		hash, err := utils.HashPassword(seed.password, bcryptCost)
		if err != nil {
			return nil, err
		}
		r.holders[seed.id] = &model.Holder{
			ID:           seed.id,
			Name:         seed.name,
			Email:        seed.email,
			PasswordHash: hash,
			Role:         seed.role,
			Title:        seed.title,
		}
		r.order = append(r.order, seed.id)
	}
	return r, nil
}

// Get returns the holder with the given ID or ErrHolderNotFound.
func (r *HolderRepo) Get(id model.HolderID) (*model.Holder, error) {
	h, ok := r.holders[id]
	if !ok {
		return nil, ErrHolderNotFound
	}
	return h, nil
}

// Students yields the student holders in roster order.
func (r *HolderRepo) Students() iter.Seq[*model.Holder] {
	return r.byRole(model.RoleStudent)
}

// Staff yields the staff holders in roster order.
func (r *HolderRepo) Staff() iter.Seq[*model.Holder] {
	return r.byRole(model.RoleStaff)
}

func (r *HolderRepo) byRole(role string) iter.Seq[*model.Holder] {
	return func(yield func(*model.Holder) bool) {
		for _, id := range r.order {
			if h := r.holders[id]; h.Role == role {
				if !yield(h) {
					return
				}
			}
		}
	}
}
