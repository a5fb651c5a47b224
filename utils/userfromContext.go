package utils

import (
	"net/http"

	"agromandi/globals"
)

func GetUserIDFromRequest(r *http.Request) string {
	requestingUserID, ok := r.Context().Value(globals.UserIDKey).(string)
	if !ok || requestingUserID == "" {
		return ""
	}
	return requestingUserID
}

func GetRoleFromRequest(r *http.Request) string {
	role, ok := r.Context().Value(globals.RoleKey).(string)
	if !ok {
		return ""
	}
	return role
}
