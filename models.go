package bearer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// User is the stored credential owner. The core treats it as read-only; it is
// created by seeding or an external registration flow.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Username      string     `bun:"username,notnull,unique" json:"username,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	FirstName     string     `bun:"first_name" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name" json:"last_name,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
	DeletedAt     *time.Time `bun:"deleted_at,soft_delete,nullzero" json:"deleted_at,omitempty"`
}

// FullName returns the display name carried in the given-name claim.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Role is a named role users can be assigned to.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}

// UserRoleAssignment joins users to roles. Assignment order defines the order
// role claims appear in issued tokens.
type UserRoleAssignment struct {
	bun.BaseModel `bun:"table:user_roles,alias:ur"`
	UserID        uuid.UUID  `bun:"user_id,pk,type:uuid" json:"user_id,omitempty"`
	RoleID        uuid.UUID  `bun:"role_id,pk,type:uuid" json:"role_id,omitempty"`
	User          *User      `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Role          *Role      `bun:"rel:belongs-to,join:role_id=id" json:"role,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
}
