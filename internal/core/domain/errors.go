package domain

import "errors"

// Credential and token failures are deliberately coarse: callers never
// learn which part of a credential or token was wrong.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("insufficient permissions")
)

var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("user already exists")
	// ErrProtectedUser guards deletion of users holding the admin role.
	ErrProtectedUser = errors.New("cannot delete a user holding the admin role")
)

var (
	ErrRoleNotFound = errors.New("role not found")
	ErrRoleExists   = errors.New("role already exists")
	// ErrReservedRole guards creation of a second role named "admin".
	ErrReservedRole = errors.New("only one admin role may exist")
)

var (
	ErrPermissionNotFound = errors.New("permission not found")
	ErrPermissionExists   = errors.New("permission already exists")
)
