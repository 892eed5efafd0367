package analysis

import "context"

// Stage represents an analysis stage
type Stage int

const (
	StagePreparing Stage = iota
	StageResearching
	StageParsing
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StagePreparing:
		return "Preparing"
	case StageResearching:
		return "Researching"
	case StageParsing:
		return "Parsing"
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Progress represents analysis progress
type Progress struct {
	Stage       Stage
	StageIndex  int
	TotalStages int
	Message     string
}

type progressKey struct{}

// WithProgress returns a context that delivers the progress of an Analyze
// call made with it to fn. fn runs on the goroutine calling Analyze.
func WithProgress(ctx context.Context, fn func(Progress)) context.Context {
	return context.WithValue(ctx, progressKey{}, fn)
}

func progressFrom(ctx context.Context) func(Progress) {
	fn, _ := ctx.Value(progressKey{}).(func(Progress))
	return fn
}

func progress(ctx context.Context, stage Stage, msg string) {
	if fn := progressFrom(ctx); fn != nil {
		fn(Progress{
			Stage:       stage,
			StageIndex:  int(stage),
			TotalStages: int(StageDone),
			Message:     msg,
		})
	}
}
