package domain

import "context"

type ResponseStore interface {
	Load(ctx context.Context, path string) (*ResponseMatrix, error)
}

// Sampler draws from the CCT posterior given a response matrix.
// Sample blocks until every chain has finished.
type Sampler interface {
	Sample(ctx context.Context, data *ResponseMatrix, opts SampleOpts) (*Trace, error)
}

// PlotRenderer writes posterior plots and returns the files it produced.
type PlotRenderer interface {
	Render(report *Report, trace *Trace) ([]string, error)
}
