// # Naming Conventions
//
// Functions in this package follow consistent naming patterns:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayResults], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatValue], [FormatQuietResult].

package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/agbru/bigcalc/internal/biguint"
	"github.com/agbru/bigcalc/internal/format"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/ui"
)

// FormatValue renders v in decimal or hexadecimal. Unless full is set,
// decimal values longer than TruncationLimit digits are shortened; the
// second result reports whether that happened.
func FormatValue(v *biguint.BigUint, hex, full bool) (string, bool, error) {
	if hex {
		return format.Hex(v), false, nil
	}
	s, err := format.Decimal(v)
	if err != nil {
		return "", false, err
	}
	if full || len(s) <= TruncationLimit {
		return s, false, nil
	}
	return format.Truncate(s, DisplayEdges), true, nil
}

// FormatQuietResult returns the single line printed for a result in quiet
// mode: the value, or "error: ..." for a failure.
func FormatQuietResult(res orchestration.EvaluationResult, hex bool) string {
	if res.Err != nil {
		return fmt.Sprintf("error: %v", res.Err)
	}
	s, _, err := FormatValue(res.Value, hex, true)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return s
}

// DisplayResult prints one result with its size and timing details.
func DisplayResult(res orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Quiet {
		fmt.Fprintln(out, FormatQuietResult(res, opts.Hex))
		return
	}
	st := ui.CurrentStyles()
	t := ui.GetCurrentTheme()

	fmt.Fprintln(out, st.Header.Render(fmt.Sprintf("[%d] %s", res.Index+1, res.Expr)))
	if res.Err != nil {
		fmt.Fprintf(out, "%s%s%v%s\n", st.Label.Render("Error"), t.Error, res.Err, t.Reset)
		return
	}

	s, truncated, err := FormatValue(res.Value, opts.Hex, opts.Verbose)
	if err != nil {
		fmt.Fprintf(out, "%s%s%v%s\n", st.Label.Render("Error"), t.Error, err, t.Reset)
		return
	}
	if !opts.Hex && !truncated {
		s = format.FormatNumberString(s)
	}
	fmt.Fprintf(out, "%s%s%s%s\n", st.Label.Render("Value"), t.Success, s, t.Reset)
	if truncated {
		fmt.Fprintln(out, st.Dim.Render("  (truncated, use --verbose for the full value)"))
	}
	fmt.Fprintf(out, "%s%d bits, %d words\n", st.Label.Render("Size"), res.Value.BitLen(), res.Value.Len())
	fmt.Fprintf(out, "%s%s\n", st.Label.Render("Time"), format.FormatExecutionDuration(res.Duration))
}

// DisplayResults prints every result followed by a summary line.
func DisplayResults(results []orchestration.EvaluationResult, opts orchestration.PresentationOptions, out io.Writer) {
	var failed int
	var total time.Duration
	for i, res := range results {
		if i > 0 && !opts.Quiet {
			fmt.Fprintln(out)
		}
		DisplayResult(res, opts, out)
		if res.Err != nil {
			failed++
		}
		total += res.Duration
	}
	if opts.Quiet || len(results) < 2 {
		return
	}
	t := ui.GetCurrentTheme()
	color := t.Success
	if failed > 0 {
		color = t.Warning
	}
	fmt.Fprintf(out, "\n%s%d/%d programs succeeded%s in %s\n",
		color, len(results)-failed, len(results), t.Reset, format.FormatExecutionDuration(total))
}
