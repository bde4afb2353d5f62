package dto

// UserRoleUpdateRequest payload for role assignment.
type UserRoleUpdateRequest struct {
	Role string `json:"role"`
}
