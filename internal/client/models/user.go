package models

import "time"

// User is a portal account as listed by the admin user directory.
// It shares the role/department shape of Identity.
type User struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Roles      []RoleRef   `json:"roles"`
	Department *Department `json:"department,omitempty"`
}

// NewUser carries the fields for POST /users. Role is a role name,
// resolved server-side.
type NewUser struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Role         string `json:"role"`
	DepartmentID int64  `json:"department_id"`
}

// ProfileUpdate carries the fields for PUT /profile. Password fields are
// omitted when blank (keep current password).
type ProfileUpdate struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

// ActivityLog is one audit trail row from /activity-logs.
type ActivityLog struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
	User      *Identity `json:"user,omitempty"`
	Document  *Document `json:"document,omitempty"`
}

// DashboardStats is the /dashboard summary payload.
type DashboardStats struct {
	Stats struct {
		TotalAccessible int64 `json:"total_accessible"`
		MyUploads       int64 `json:"my_uploads"`
		DepartmentDocs  int64 `json:"department_docs"`
	} `json:"stats"`
	RecentActivity []Document `json:"recent_activity"`
}
