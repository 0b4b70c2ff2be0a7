package mirr

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/tvmlib/cashflow"
)

// Request is the JSON input schema for the modified internal rate of
// return.
//
// Values are one entry per period, signed (outflows negative); the first
// entry sits at time zero. A one-sided series yields a MIRR of 0.
type Request struct {
	Values       []float64 `json:"values"`
	FinanceRate  float64   `json:"finance_rate"`
	ReinvestRate float64   `json:"reinvest_rate"`
}

type Response struct {
	MIRR  float64 `json:"mirr"`
	Error string  `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("mirr", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "", "JSON input path (optional; if set, ignores stdin)")
	help := fs.Bool("h", false, "Show help")
	fs.BoolVar(help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		usage(stderr)
		return 0
	}

	path := strings.TrimSpace(*inputPath)
	if path == "" {
		if f, ok := stdin.(*os.File); ok {
			if stat, err := f.Stat(); err == nil && (stat.Mode()&os.ModeCharDevice) != 0 {
				usage(stderr)
				return 2
			}
		}
	}

	inputBytes, err := readInput(stdin, path)
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to read input: %v", err))
	}

	var req Request
	if err := json.Unmarshal(inputBytes, &req); err != nil {
		return writeError(stdout, fmt.Sprintf("failed to parse JSON input: %v", err))
	}
	if len(req.Values) == 0 {
		return writeError(stdout, "values is required")
	}

	resp := Response{MIRR: cashflow.MIRR(req.Values, req.FinanceRate, req.ReinvestRate)}
	outputBytes, _ := json.Marshal(resp)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tvm mirr < input.json")
	fmt.Fprintln(w, "  tvm mirr -input /path/to/input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read a cash-flow series with finance and reinvestment rates, output the")
	fmt.Fprintln(w, "modified internal rate of return as JSON.")
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}
	return io.ReadAll(stdin)
}

func writeError(stdout io.Writer, msg string) int {
	output := Response{Error: msg}
	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 1
}
