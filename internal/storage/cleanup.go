// internal/storage/cleanup.go
package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// pluginTables is the registry of workspace-scoped tables owned by external
// plugins. These have no foreign key back to workspaces, so tenant deletion
// does not cascade into them and they must be cleared explicitly before the
// workspace goes away.
var pluginTables = []string{
	"custom_report_summaries",
	"custom_reports",
}

// PurgePluginData deletes all plugin-owned rows for one workspace. Table
// names come from the fixed registry above, never from callers.
func (s *Storage) PurgePluginData(ctx context.Context, workspaceID uuid.UUID) error {
	for _, table := range pluginTables {
		q := fmt.Sprintf(`DELETE FROM %s WHERE workspace_id = $1`, table)
		if _, err := s.DB.ExecContext(ctx, q, workspaceID); err != nil {
			return fmt.Errorf("purge %s for workspace %s: %w", table, workspaceID, err)
		}
	}
	return nil
}

// DeleteAccount removes a demo account together with its workspaces in one
// transaction; business data cascades through the workspace foreign keys.
// Plugin data must already have been purged. The account is never left
// without its workspaces or the other way around.
func (s *Storage) DeleteAccount(ctx context.Context, accountID uuid.UUID, workspaceIDs []uuid.UUID) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete tx: %w", err)
	}
	defer tx.Rollback()

	for _, wsID := range workspaceIDs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM workspaces WHERE id = $1`, wsID); err != nil {
			return fmt.Errorf("delete workspace %s: %w", wsID, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM demo_accounts WHERE id = $1`, accountID); err != nil {
		return fmt.Errorf("delete account %s: %w", accountID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete tx: %w", err)
	}
	return nil
}
