// file: internals/helpers/auth/locals.go
package helper

// Kunci c.Locals yang dihydrate oleh middleware AuthJWT.
const (
	LocUserID      = "user_id"
	LocUserName    = "user_name"
	LocRolesGlobal = "roles_global"
	LocClubRoles   = "club_roles"
)
