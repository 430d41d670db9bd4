package loop

// Overrun decides what happens to ticks that elapse while the callback is
// still running.
type Overrun int

const (
	// Coalesce collapses all missed ticks into one immediate firing. This is
	// how time.Ticker and browser interval timers behave.
	Coalesce Overrun = iota

	// Skip drops missed ticks; the next firing waits for the next interval
	// boundary.
	Skip

	// CatchUp fires missed ticks back to back, up to the catch-up limit.
	CatchUp
)

func (o Overrun) String() string {
	switch o {
	case Coalesce:
		return "coalesce"
	case Skip:
		return "skip"
	case CatchUp:
		return "catch-up"
	default:
		return "unknown"
	}
}

const defaultMaxCatchUp = 4

// Option configures a Task.
type Option func(*options)

type options struct {
	overrun         Overrun
	maxCatchUp      int
	continueOnError bool
	name            string
}

func defaultOptions() options {
	return options{
		overrun:    Coalesce,
		maxCatchUp: defaultMaxCatchUp,
	}
}

// WithOverrun selects the overrun policy. The default is Coalesce.
func WithOverrun(o Overrun) Option {
	return func(opts *options) {
		opts.overrun = o
	}
}

// WithMaxCatchUp bounds how many overdue ticks CatchUp replays. Values
// below 1 are treated as 1.
func WithMaxCatchUp(n int) Option {
	return func(opts *options) {
		if n < 1 {
			n = 1
		}
		opts.maxCatchUp = n
	}
}

// WithContinueOnError keeps the task running after the callback returns an
// error or panics. Faults are logged and counted instead.
func WithContinueOnError() Option {
	return func(opts *options) {
		opts.continueOnError = true
	}
}

// WithName labels the task in log records.
func WithName(name string) Option {
	return func(opts *options) {
		opts.name = name
	}
}
