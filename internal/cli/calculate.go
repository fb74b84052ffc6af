package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/bigcalc/internal/allocator"
	"github.com/agbru/bigcalc/internal/config"
	"github.com/agbru/bigcalc/internal/ui"
)

// PrintExecutionConfig displays the resolved run configuration.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	t := ui.GetCurrentTheme()
	st := ui.CurrentStyles()
	fmt.Fprintln(out, st.Header.Render("--- Execution Configuration ---"))
	fmt.Fprintf(out, "Evaluating %s%d%s program(s) with a timeout of %s%s%s.\n",
		t.Info, len(cfg.Exprs), t.Reset, t.Warning, cfg.Timeout, t.Reset)
	fmt.Fprintf(out, "Allocator: %s%s%s", t.Primary, cfg.Alloc, t.Reset)
	switch {
	case cfg.LimitWords > 0:
		fmt.Fprintf(out, ", limit %d words", cfg.LimitWords)
	case cfg.Alloc == allocator.KindArena:
		fmt.Fprintf(out, ", %d words", cfg.ArenaWords)
	}
	fmt.Fprintln(out, ".")
	fmt.Fprintf(out, "Environment: %s%d%s jobs on %d logical processors, Go %s.\n",
		t.Primary, cfg.Jobs, t.Reset, runtime.NumCPU(), runtime.Version())
	fmt.Fprintln(out)
}
