package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Account is a registered reviewer or topic owner.
type Account struct {
	ID       uuid.UUID
	FullName string
	Email    string
	Username string
}

// AccountInfo is the render view of an account shared by list results.
type AccountInfo struct {
	ID       uuid.UUID `json:"id"`
	FullName string    `json:"fullName,omitempty"`
	Email    string    `json:"email,omitempty"`
}

// NewAccountInfo builds the render view of a.
func NewAccountInfo(a Account) AccountInfo {
	return AccountInfo{ID: a.ID, FullName: a.FullName, Email: a.Email}
}

// Group is a named set of accounts that visibility rules can refer to.
type Group struct {
	ID           uuid.UUID
	Name         string
	ExternalName string
}

// User is the identity a query or visibility check runs for.
// A zero AccountID with no groups is the anonymous user.
type User struct {
	AccountID uuid.UUID
	Groups    []uuid.UUID
}

// NewAccountUser returns the user acting as the given account.
func NewAccountUser(id uuid.UUID, groups ...uuid.UUID) *User {
	return &User{AccountID: id, Groups: groups}
}

// NewGroupUser returns a user that is only a member of the given groups.
func NewGroupUser(groups ...uuid.UUID) *User {
	return &User{Groups: groups}
}

// Anonymous returns the user with no account and no groups.
func Anonymous() *User {
	return &User{}
}

// IsIdentified reports whether the user acts as a concrete account.
func (u *User) IsIdentified() bool {
	return u != nil && u.AccountID != uuid.Nil
}

// InGroup reports whether the user is a member of id.
func (u *User) InGroup(id uuid.UUID) bool {
	return u != nil && slices.Contains(u.Groups, id)
}
