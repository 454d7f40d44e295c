package model

import (
	"encoding/json"
	"time"
)

// Role is the closed set of user roles the backend can assign.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RoleOperator      Role = "operator"
	RoleViewer        Role = "viewer"
	RoleUnknown       Role = ""
)

// ParseRole maps a backend role string onto the closed set. Anything
// unrecognized becomes RoleUnknown, which never satisfies a guard.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdministrator, RoleOperator, RoleViewer:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// UnmarshalJSON keeps roles inside the closed set when decoding API payloads.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

// User represents a dashboard user account
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

// CreateUserRequest represents the create-user payload (admin only)
type CreateUserRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required"`
}

// ChangePasswordRequest represents the change-password payload (admin only)
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// DeviceStatus is the reachability state reported by the backend.
type DeviceStatus string

const (
	StatusOnline   DeviceStatus = "online"
	StatusOffline  DeviceStatus = "offline"
	StatusWarning  DeviceStatus = "warning"
	StatusCritical DeviceStatus = "critical"
	StatusUnknown  DeviceStatus = "unknown"
)

// Device represents a monitored network device as reported by the backend.
// Snapshots are immutable on the client; the device store replaces the whole
// collection on every successful fetch.
type Device struct {
	ID               string       `json:"id"`
	IPAddress        string       `json:"ip_address"`
	Hostname         string       `json:"hostname,omitempty"`
	MACAddress       string       `json:"mac_address,omitempty"`
	DeviceType       string       `json:"device_type,omitempty"`
	Status           DeviceStatus `json:"status"`
	LastResponseTime float64      `json:"last_response_time,omitempty"`
	FirstDiscovered  time.Time    `json:"first_discovered"`
	LastSeen         time.Time    `json:"last_seen"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
	Notes            string       `json:"notes,omitempty"`
	IsMonitored      bool         `json:"is_monitored"`
}

// Health represents the backend health endpoint response
type Health struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Version     string    `json:"version"`
	Environment string    `json:"environment"`
}
