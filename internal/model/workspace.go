// internal/model/workspace.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// Workspace is one isolated demo environment. Every business record created
// during seeding carries the workspace ID, and all queries for a session are
// filtered by it.
type Workspace struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// Membership links a demo account to a workspace it owns.
type Membership struct {
	AccountID   uuid.UUID `db:"account_id"`
	WorkspaceID uuid.UUID `db:"workspace_id"`
	Role        string    `db:"role"`
}

const RoleOwner = "owner"
