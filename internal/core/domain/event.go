package domain

import "time"

// AuthEventKind names an account lifecycle action recorded in the audit trail.
type AuthEventKind string

const (
	EventRegistered    AuthEventKind = "registered"
	EventLoginSuccess  AuthEventKind = "login_success"
	EventLoginFailure  AuthEventKind = "login_failure"
	EventLogout        AuthEventKind = "logout"
	EventProfileUpdate AuthEventKind = "profile_updated"
	EventRoleChanged   AuthEventKind = "role_changed"
	EventUserDeleted   AuthEventKind = "user_deleted"
)

// AuthEvent is a single audit record. UserID is zero when the actor could not
// be identified (e.g. a failed login for an unknown email).
type AuthEvent struct {
	Kind       AuthEventKind
	UserID     int64
	ActorID    int64 // who performed the action; differs from UserID for admin operations
	Email      string
	Detail     string
	OccurredAt time.Time
}

// ShardKey is the value used to route the event to an audit worker so that
// events for one account are written in order.
func (e AuthEvent) ShardKey() string {
	if e.Email != "" {
		return e.Email
	}
	return string(e.Kind)
}
