package service

// AuditSink receives one human-readable line per operation outcome. Appends
// are fire-and-forget: the sink never reports failure to its callers.
type AuditSink interface {
	Append(message string)
}

type nopSink struct{}

func (nopSink) Append(string) {}
