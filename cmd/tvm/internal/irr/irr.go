package irr

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/meenmo/tvmlib/cashflow"
	"github.com/meenmo/tvmlib/store"
)

// Request is the JSON input schema for internal rate of return.
//
// Values are one entry per period, signed (outflows negative); the first
// entry sits at time zero. A one-sided series yields an IRR of 0.
type Request struct {
	Values []float64 `json:"values"`
}

type Response struct {
	IRR   float64 `json:"irr"`
	Error string  `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("irr", flag.ContinueOnError)
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
	if len(req.Values) == 0 {
		return writeError(stdout, "values is required")
	}

	ctx := context.Background()

	var cache store.Cache
	key := store.Key("irr", inputBytes)
	if strings.TrimSpace(*cacheAddr) != "" {
		cache = store.NewRedis(strings.TrimSpace(*cacheAddr))
		if cached, ok := cache.Get(ctx, key); ok {
			fmt.Fprintln(stdout, cached)
			return 0
		}
	}

	resp := Response{IRR: cashflow.IRR(req.Values)}
	outputBytes, _ := json.Marshal(resp)
	fmt.Fprintln(stdout, string(outputBytes))

	if cache != nil {
		if err := cache.Set(ctx, key, string(outputBytes)); err != nil {
			log.Printf("Warning: failed to cache result: %v", err)
		}
	}
	if strings.TrimSpace(*storeDSN) != "" {
		if err := saveHistory(ctx, strings.TrimSpace(*storeDSN), inputBytes, resp.IRR); err != nil {
			log.Printf("Warning: failed to save calculation: %v", err)
		}
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tvm irr < input.json")
	fmt.Fprintln(w, "  tvm irr -input /path/to/input.json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Read a cash-flow series, output its internal rate of return as JSON.")
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

func saveHistory(ctx context.Context, dsn string, input []byte, result float64) error {
	pg, err := store.OpenPostgres(ctx, dsn)
	if err != nil {
		return err
	}
	defer pg.Close()
	return pg.Save(ctx, store.Record{Tool: "irr", Input: string(input), Result: result})
}
