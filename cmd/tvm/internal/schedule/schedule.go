package schedule

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/meenmo/tvmlib/loan"
)

// Request is the JSON input schema for an amortization schedule.
type Request struct {
	NominalRate float64 `json:"nominal_rate"`
	Duration    float64 `json:"duration"`
	Amount      float64 `json:"amount"`
	FutureValue float64 `json:"future_value"`

	// Timing is "end" (default) or "beginning".
	Timing string `json:"timing"`
}

type Row struct {
	Period    int     `json:"period"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

type Response struct {
	Payment       float64 `json:"payment"`
	TotalPayment  float64 `json:"total_payment"`
	TotalInterest float64 `json:"total_interest"`
	Rows          []Row   `json:"rows,omitempty"`
	Error         string  `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("schedule", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "", "JSON input path (optional; if set, ignores stdin)")
	summaryOnly := fs.Bool("summary", false, "Omit the per-period rows from the output")
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

	resp, err := calculate(req, *summaryOnly)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(resp)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tvm schedule < input.json")
	fmt.Fprintln(w, "  tvm schedule -input /path/to/input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read a loan request, output its amortization schedule as JSON.")
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

func calculate(req Request, summaryOnly bool) (*Response, error) {
	l := loan.New(loan.Parameters{
		NominalAnnualRate: req.NominalRate,
		Duration:          req.Duration,
		Amount:            req.Amount,
		FutureValue:       req.FutureValue,
		Timing:            parseTiming(req.Timing),
	})

	installments, err := l.Schedule()
	if err != nil {
		return nil, err
	}

	resp := &Response{Payment: l.Pmt()}
	for _, in := range installments {
		resp.TotalPayment += in.Payment
		resp.TotalInterest += in.Interest
		if !summaryOnly {
			resp.Rows = append(resp.Rows, Row{
				Period:    in.Period,
				Payment:   in.Payment,
				Interest:  in.Interest,
				Principal: in.Principal,
				Balance:   in.Balance,
			})
		}
	}
	return resp, nil
}

func parseTiming(value string) loan.PaymentTiming {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "beginning", "begin", "due", "1":
		return loan.TimingBeginning
	default:
		return loan.TimingEnd
	}
}
