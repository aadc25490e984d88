package service

import "errors"

var (
	ErrMemberNotFound     = errors.New("team member not found")
	ErrEmailExists        = errors.New("team member with this email already exists")
	ErrInvalidPhone       = errors.New("phone number must be in the format (XXX) XXX-XXXX")
	ErrInvalidRole        = errors.New("role does not exist")
	ErrRoleNotFound       = errors.New("role not found")
	ErrRoleExists         = errors.New("role with this name already exists")
	ErrInvalidPermission  = errors.New("permission does not exist")
	ErrPermissionNotFound = errors.New("permission not found")
	ErrPermissionExists   = errors.New("permission with this name already exists")
)
