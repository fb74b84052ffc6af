package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
	"github.com/agbru/bigcalc/internal/rpn"
	"github.com/agbru/bigcalc/internal/ui"
)

// REPLConfig holds configuration for an interactive session.
type REPLConfig struct {
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// HexOutput displays results in hexadecimal.
	HexOutput bool
	// Verbose disables truncation of long values.
	Verbose bool
}

// REPL is an interactive RPN session on a single allocator.
type REPL struct {
	config    REPLConfig
	evaluator *rpn.Evaluator
	memory    *metrics.MemoryCollector
	count     int
	in        io.Reader
	out       io.Writer
}

// NewREPL creates a session that evaluates with ev.
func NewREPL(ev *rpn.Evaluator, config REPLConfig) *REPL {
	return &REPL{
		config:    config,
		evaluator: ev,
		memory:    metrics.NewMemoryCollector(ev.Allocator()),
		in:        os.Stdin,
		out:       os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads commands until exit, EOF or ctx is canceled.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	t := ui.GetCurrentTheme()
	scanner := bufio.NewScanner(r.in)
	for {
		fmt.Fprint(r.out, t.Success+"rpn> "+t.Reset)
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
				fmt.Fprintf(r.out, "%sRead error: %v%s\n", t.Error, err, t.Reset)
			}
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintln(r.out, ui.CurrentStyles().Header.Render("bigcalc interactive mode"))
}

func (r *REPL) printHelp() {
	t := ui.GetCurrentTheme()
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", t.Bold, t.Reset)
	fmt.Fprintf(r.out, "  %seval <program>%s - Evaluate an RPN program (the eval keyword is optional)\n", t.Warning, t.Reset)
	fmt.Fprintf(r.out, "  %shex%s            - Toggle hexadecimal display\n", t.Warning, t.Reset)
	fmt.Fprintf(r.out, "  %sstats%s          - Show allocator statistics\n", t.Warning, t.Reset)
	fmt.Fprintf(r.out, "  %shelp%s           - Display this help\n", t.Warning, t.Reset)
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s    - Leave interactive mode\n", t.Warning, t.Reset, t.Warning, t.Reset)
	fmt.Fprintf(r.out, "Operators: %s\n", strings.Join(rpn.Operators(), " "))
}

// processCommand runs one input line. It returns false when the session
// should end.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	cmd, rest, _ := strings.Cut(input, " ")
	switch strings.ToLower(cmd) {
	case "eval", "e":
		if strings.TrimSpace(rest) == "" {
			t := ui.GetCurrentTheme()
			fmt.Fprintf(r.out, "%sUsage: eval <program>%s\n", t.Error, t.Reset)
			return true
		}
		r.evaluate(ctx, rest)
	case "hex":
		r.cmdHex()
	case "stats":
		DisplayMemoryStats(r.memory.Snapshot(), r.out)
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		t := ui.GetCurrentTheme()
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", t.Success, t.Reset)
		return false
	default:
		r.evaluate(ctx, input)
	}
	return true
}

func (r *REPL) evaluate(ctx context.Context, program string) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	start := time.Now()
	v, err := r.evaluator.Evaluate(ctx, program)
	res := orchestration.EvaluationResult{Index: r.count, Expr: program, Value: v, Duration: time.Since(start), Err: err}
	r.count++
	defer v.Destroy()

	DisplayResult(res, orchestration.PresentationOptions{Hex: r.config.HexOutput, Verbose: r.config.Verbose}, r.out)
}

func (r *REPL) cmdHex() {
	r.config.HexOutput = !r.config.HexOutput
	status := "disabled"
	if r.config.HexOutput {
		status = "enabled"
	}
	t := ui.GetCurrentTheme()
	fmt.Fprintf(r.out, "Hexadecimal display: %s%s%s\n", t.Success, status, t.Reset)
}
