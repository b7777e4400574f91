package recorder

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordQuote(_ *QuoteSnapshot) error  { return nil }
func (n *NoopRecorder) RecordFailure(_ *FetchFailure) error { return nil }
func (n *NoopRecorder) Close() error                        { return nil }
