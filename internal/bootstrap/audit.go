package bootstrap

import "context"

// AuditLog is one operator-visible event: server lifecycle, account
// provisioning, ledger deletions.
type AuditLog struct {
	Action  string
	Actor   string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
