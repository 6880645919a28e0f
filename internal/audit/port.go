package audit

// Recorder is the audited-mutation contract consumed by the entity packages.
type Recorder interface {
	PerformMutation(actor string, action ActionKind, table, rowID, ip string, fn MutationFunc) (*MutationResult, error)
	PerformBulkMutation(actor string, action ActionKind, table string, ids []uint, ip string, fn BulkMutationFunc) (int, error)
}

var _ Recorder = (*AuditService)(nil)
