package employer

import (
	"net/http"

	"github.com/Abraxas-365/hireboard/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("EMPLOYER")

// Error codes
var (
	CodeMemberNotFound          = ErrRegistry.Register("MEMBER_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Team member not found")
	CodeCannotRemoveOwner       = ErrRegistry.Register("CANNOT_REMOVE_OWNER", errx.TypeBusiness, http.StatusForbidden, "The company owner cannot be removed")
	CodeMemberAlreadyInvited    = ErrRegistry.Register("MEMBER_ALREADY_INVITED", errx.TypeConflict, http.StatusConflict, "This email is already on the team")
	CodeNotCompanyMember        = ErrRegistry.Register("NOT_COMPANY_MEMBER", errx.TypeAuthorization, http.StatusForbidden, "You are not a member of this company")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
)

// Helper functions
func ErrMemberNotFound() *errx.Error {
	return ErrRegistry.New(CodeMemberNotFound)
}

func ErrCannotRemoveOwner() *errx.Error {
	return ErrRegistry.New(CodeCannotRemoveOwner)
}

func ErrMemberAlreadyInvited() *errx.Error {
	return ErrRegistry.New(CodeMemberAlreadyInvited)
}

func ErrNotCompanyMember() *errx.Error {
	return ErrRegistry.New(CodeNotCompanyMember)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}
