package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/tvmlib/cmd/tvm/internal/history"
	"github.com/meenmo/tvmlib/cmd/tvm/internal/irr"
	"github.com/meenmo/tvmlib/cmd/tvm/internal/loancalc"
	"github.com/meenmo/tvmlib/cmd/tvm/internal/mirr"
	"github.com/meenmo/tvmlib/cmd/tvm/internal/npv"
	"github.com/meenmo/tvmlib/cmd/tvm/internal/schedule"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "loan":
		return loancalc.Run(args[1:], stdin, stdout, stderr)
	case "schedule":
		return schedule.Run(args[1:], stdin, stdout, stderr)
	case "npv":
		return npv.Run(args[1:], stdin, stdout, stderr)
	case "irr":
		return irr.Run(args[1:], stdin, stdout, stderr)
	case "mirr":
		return mirr.Run(args[1:], stdin, stdout, stderr)
	case "history":
		return history.Run(args[1:], stdin, stdout, stderr)
	case "-h", "--help", "help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tvm <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  loan      Single annuity figure (pmt, fv, pv, ipmt, ppmt, nper, rate)")
	fmt.Fprintln(w, "  schedule  Full amortization schedule")
	fmt.Fprintln(w, "  npv       Net present value of a cash-flow series")
	fmt.Fprintln(w, "  irr       Internal rate of return of a cash-flow series")
	fmt.Fprintln(w, "  mirr      Modified internal rate of return")
	fmt.Fprintln(w, "  history   Recent calculations from the history store")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run `tvm <command> -h` for command-specific help.")
}
