package domain

import "time"

// Session records one authenticated login-to-logout interval.
// Invariant: IsActive == (LogoutTime == nil). DurationSeconds is set exactly
// once, at close, as floor(logout - login) in whole seconds.
type Session struct {
	ID              string     `bson:"_id"`
	UID             string     `bson:"uid"`
	DisplayName     string     `bson:"displayName"`
	Email           string     `bson:"email"`
	Provider        string     `bson:"provider"`
	LoginTime       time.Time  `bson:"loginTime"`
	LogoutTime      *time.Time `bson:"logoutTime,omitempty"`
	DurationSeconds *int64     `bson:"duration,omitempty"`
	IsActive        bool       `bson:"isActive"`
}
