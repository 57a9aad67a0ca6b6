package ports

// SkinLatencyLookup resolves a subject's skin latency. The boolean is false when the
// subject is not on record.
type SkinLatencyLookup interface {
	SkinLatency(subjectID string) (float64, bool)
}
