package doctor

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os"
	"sync"

	"github.com/raphi011/mgit/internal/log"
	"github.com/raphi011/mgit/internal/output"
	"github.com/raphi011/mgit/internal/ui/styles"
)

// Summary counts the lines printed by a run.
type Summary struct {
	OK      int
	Warn    int
	Suggest int
}

// Total returns the number of report lines.
func (s Summary) Total() int { return s.OK + s.Warn + s.Suggest }

// HasWarnings reports whether any warn line was printed.
func (s Summary) HasWarnings() bool { return s.Warn > 0 }

func (s *Summary) add(k Kind) {
	switch k {
	case KindOK:
		s.OK++
	case KindWarn:
		s.Warn++
	case KindSuggest:
		s.Suggest++
	}
}

// Doctor walks a checkup's categories and prints their reports.
type Doctor struct {
	categories iter.Seq[Category]
	out        io.Writer
	warnOut    io.Writer
	symbols    *styles.Symbols
}

// Option configures a Doctor.
type Option func(*Doctor)

// WithOutput sets the writer for labels, ok and suggest lines.
// Defaults to the context's output printer.
func WithOutput(w io.Writer) Option {
	return func(d *Doctor) { d.out = w }
}

// WithWarnOutput sets the writer for warn lines. Defaults to os.Stderr.
func WithWarnOutput(w io.Writer) Option {
	return func(d *Doctor) { d.warnOut = w }
}

// WithSymbols overrides the configured symbol set.
func WithSymbols(s styles.Symbols) Option {
	return func(d *Doctor) { d.symbols = &s }
}

// New creates a Doctor for the given categories. Nothing is evaluated
// until Run.
func New(categories iter.Seq[Category], opts ...Option) *Doctor {
	d := &Doctor{categories: categories}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run walks every category in order, printing its label and then running
// each of its diagnostics to completion before pulling the next.
// Failed tests are printed as warn lines and never stop the walk.
// An error returned by a Diagnose call aborts the run and is returned
// together with the summary so far; so does cancellation of ctx.
func (d *Doctor) Run(ctx context.Context) (Summary, error) {
	l := log.FromContext(ctx)
	p := d.newPrinter(ctx)

	var sum Summary
	if d.categories == nil {
		return sum, nil
	}

	for cat := range d.categories {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		p.label(cat.Label)
		if cat.Diagnostics == nil {
			continue
		}

		n := 0
		for diag := range cat.Diagnostics {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			n++
			l.Debug("diagnose", "category", cat.Label, "index", n)
			if err := d.diagnose(ctx, diag, p, &sum); err != nil {
				return sum, fmt.Errorf("diagnose %q: %w", cat.Label, err)
			}
		}
	}

	return sum, nil
}

// diagnose runs one diagnostic with a reporter that is closed once it returns.
func (d *Doctor) diagnose(ctx context.Context, diag Diagnostic, p *printer, sum *Summary) error {
	if diag == nil {
		return nil
	}
	r := &reporter{
		ctx: ctx,
		emit: func(res Result) {
			res = sanitize(res)
			sum.add(res.Kind())
			p.result(res)
		},
	}
	defer r.close()
	return diag.Diagnose(ctx, r)
}

func (d *Doctor) newPrinter(ctx context.Context) *printer {
	p := &printer{out: d.out, warnOut: d.warnOut}
	if p.out == nil {
		p.out = output.FromContext(ctx).Writer()
	}
	if p.warnOut == nil {
		p.warnOut = os.Stderr
	}
	if d.symbols != nil {
		p.symbols = *d.symbols
	} else {
		p.symbols = styles.CurrentSymbols()
	}
	return p
}

// reporter is the Reporter handed to a single Diagnose call.
type reporter struct {
	ctx    context.Context
	emit   func(Result)
	mu     sync.Mutex
	closed bool
}

func (r *reporter) Report(res Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		log.FromContext(r.ctx).Debug("dropped report after diagnose returned", "report", res.String())
		return
	}
	r.emit(res)
}

// Test evaluates fn without holding the lock, so fn may itself report.
// The result is emitted when fn finishes.
func (r *reporter) Test(fn TestFunc) {
	if r.isClosed() {
		log.FromContext(r.ctx).Debug("dropped test after diagnose returned")
		return
	}
	res := evaluate(r.ctx, fn)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		log.FromContext(r.ctx).Debug("dropped test after diagnose returned", "report", res.String())
		return
	}
	r.emit(res)
}

func (r *reporter) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *reporter) close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}
