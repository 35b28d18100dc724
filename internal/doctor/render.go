package doctor

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"

	"github.com/raphi011/mgit/internal/ui/styles"
)

// printer writes labels and report lines.
type printer struct {
	out     io.Writer
	warnOut io.Writer
	symbols styles.Symbols
}

func (p *printer) label(label string) {
	fmt.Fprintln(p.out, styles.MutedStyle.Render(label))
}

// result prints "  <symbol> <message>"; only the message is colored.
func (p *printer) result(r Result) {
	var (
		w      = p.out
		symbol string
		style  lipgloss.Style
	)
	switch r.Kind() {
	case KindOK:
		symbol, style = p.symbols.OK, styles.SuccessStyle
	case KindSuggest:
		symbol, style = p.symbols.Suggest, styles.WarningStyle
	case KindWarn:
		symbol, style = p.symbols.Warn, styles.ErrorStyle
		w = p.warnOut
	default:
		panic(fmt.Sprintf("doctor: unsanitized result %s", r))
	}
	fmt.Fprintf(w, "  %s %s\n", symbol, style.Render(r.Message()))
}
