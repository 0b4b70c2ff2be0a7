package loancalc

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/meenmo/tvmlib/loan"
	"github.com/meenmo/tvmlib/store"
)

// Request is the JSON input schema for a single annuity figure.
//
// Conventions:
// - rates are decimal fractions (0.07 means 7% nominal annual)
// - money is signed: outflows negative, inflows positive
type Request struct {
	// Op selects the figure: pmt, fv, pv, ipmt, ppmt, nper or rate.
	Op string `json:"op"`

	NominalRate float64  `json:"nominal_rate"`
	Duration    float64  `json:"duration"`
	Amount      float64  `json:"amount"`
	FutureValue float64  `json:"future_value"`
	Payment     *float64 `json:"payment,omitempty"`
	Period      *int     `json:"period,omitempty"`

	// Timing is "end" (default) or "beginning".
	Timing string `json:"timing"`
}

type Response struct {
	Op     string  `json:"op"`
	Result float64 `json:"result"`
	Error  string  `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("loan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	inputPath := fs.String("input", "", "JSON input path (optional; if set, ignores stdin)")
	storeDSN := fs.String("store-dsn", "", "Postgres DSN; append the calculation to the history table (optional)")
	cacheAddr := fs.String("cache-addr", "", "Redis address; cache results by input document (optional)")
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

	ctx := context.Background()

	var cache store.Cache
	key := store.Key("loan", inputBytes)
	if strings.TrimSpace(*cacheAddr) != "" {
		cache = store.NewRedis(strings.TrimSpace(*cacheAddr))
		if cached, ok := cache.Get(ctx, key); ok {
			fmt.Fprintln(stdout, cached)
			return 0
		}
	}

	resp, err := calculate(req)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(resp)
	fmt.Fprintln(stdout, string(outputBytes))

	if cache != nil {
		if err := cache.Set(ctx, key, string(outputBytes)); err != nil {
			log.Printf("Warning: failed to cache result: %v", err)
		}
	}
	if strings.TrimSpace(*storeDSN) != "" {
		if err := saveHistory(ctx, strings.TrimSpace(*storeDSN), resp.Op, inputBytes, resp.Result); err != nil {
			log.Printf("Warning: failed to save calculation: %v", err)
		}
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tvm loan < input.json")
	fmt.Fprintln(w, "  tvm loan -input /path/to/input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read a loan request, compute one annuity figure, output JSON to stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Optional persistence:")
	fmt.Fprintln(w, "  -store-dsn   Postgres DSN for the calculation history table")
	fmt.Fprintln(w, "  -cache-addr  Redis address for result caching")
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

func calculate(req Request) (*Response, error) {
	op := strings.ToLower(strings.TrimSpace(req.Op))
	if op == "" {
		return nil, fmt.Errorf("op is required (pmt, fv, pv, ipmt, ppmt, nper or rate)")
	}

	l := loan.New(loan.Parameters{
		NominalAnnualRate: req.NominalRate,
		Duration:          req.Duration,
		Amount:            req.Amount,
		FutureValue:       req.FutureValue,
		Payment:           req.Payment,
		Period:            req.Period,
		Timing:            parseTiming(req.Timing),
	})

	var (
		result float64
		err    error
	)
	switch op {
	case "pmt":
		result = l.Pmt()
	case "fv":
		result, err = l.FV()
	case "pv":
		result = l.PV()
	case "ipmt":
		result, err = l.IPmt()
	case "ppmt":
		result, err = l.PPmt()
	case "nper":
		result, err = l.Nper()
	case "rate":
		result = l.Rate()
	default:
		return nil, fmt.Errorf("unknown op %q (use pmt, fv, pv, ipmt, ppmt, nper or rate)", req.Op)
	}
	if err != nil {
		return nil, err
	}

	return &Response{Op: op, Result: result}, nil
}

func parseTiming(value string) loan.PaymentTiming {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "beginning", "begin", "due", "1":
		return loan.TimingBeginning
	default:
		return loan.TimingEnd
	}
}

func saveHistory(ctx context.Context, dsn, op string, input []byte, result float64) error {
	pg, err := store.OpenPostgres(ctx, dsn)
	if err != nil {
		return err
	}
	defer pg.Close()
	return pg.Save(ctx, store.Record{Tool: "loan/" + op, Input: string(input), Result: result})
}
