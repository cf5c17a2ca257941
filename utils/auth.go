package utils

// contains checks if a slice of strings contains an element.
func contains(slice []string, item string) bool {
	for _, a := range slice {
		if a == item {
			return true
		}
	}
	return false
}

// HasRole reports whether memberRoleIDs includes roleID. An empty roleID never matches.
func HasRole(memberRoleIDs []string, roleID string) bool {
	if roleID == "" {
		return false
	}
	return contains(memberRoleIDs, roleID)
}
