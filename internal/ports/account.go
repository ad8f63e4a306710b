package ports

import "context"

// AccountPort defines the interface for updating account profiles.
type AccountPort interface {
	// UpdateProfile updates account profile fields for the given user.
	// An empty username or displayName leaves that field unchanged.
	UpdateProfile(ctx context.Context, userID, username, displayName string) error
}
