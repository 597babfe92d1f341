package logging

// Progress logs a line every interval rows while a table or pass is being
// processed.
type Progress struct {
	name     string
	total    int64
	current  int64
	interval int64
}

// NewProgress creates a progress reporter. total may be 0 when the number
// of rows is not known in advance; interval <= 0 disables periodic lines.
func NewProgress(name string, total, interval int64) *Progress {
	return &Progress{
		name:     name,
		total:    total,
		interval: interval,
	}
}

// Add records n more rows and logs if an interval boundary was crossed.
func (p *Progress) Add(n int64) {
	old := p.current
	p.current += n

	if p.interval <= 0 || p.current/p.interval <= old/p.interval {
		return
	}

	event := Info().
		Str("table", p.name).
		Int64("rows", p.current)
	if p.total > 0 {
		event = event.
			Int64("total", p.total).
			Float64("percent", float64(p.current)/float64(p.total)*100)
	}
	event.Msg("Processing")
}

// Count returns the number of rows recorded so far.
func (p *Progress) Count() int64 {
	return p.current
}

// Done logs completion.
func (p *Progress) Done() {
	Info().
		Str("table", p.name).
		Int64("rows", p.current).
		Msg("Table complete")
}
