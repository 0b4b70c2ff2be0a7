package history

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/meenmo/tvmlib/store"
)

// Row is one stored calculation in the JSON output.
type Row struct {
	Tool      string  `json:"tool"`
	Input     string  `json:"input"`
	Result    float64 `json:"result"`
	CreatedAt string  `json:"created_at"`
}

type Response struct {
	Records []Row  `json:"records"`
	Error   string `json:"error,omitempty"`
}

func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(stderr)
	storeDSN := fs.String("store-dsn", "", "Postgres DSN of the calculation history table")
	limit := fs.Int("limit", 10, "Maximum number of records to list, newest first")
	help := fs.Bool("h", false, "Show help")
	fs.BoolVar(help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *help {
		usage(stderr)
		return 0
	}

	dsn := strings.TrimSpace(*storeDSN)
	if dsn == "" {
		usage(stderr)
		return 2
	}
	if *limit < 1 {
		return writeError(stdout, fmt.Sprintf("limit must be positive, got %d", *limit))
	}

	ctx := context.Background()
	pg, err := store.OpenPostgres(ctx, dsn)
	if err != nil {
		return writeError(stdout, fmt.Sprintf("failed to open history store: %v", err))
	}
	defer pg.Close()

	resp, err := List(ctx, pg, *limit)
	if err != nil {
		return writeError(stdout, err.Error())
	}

	outputBytes, _ := json.Marshal(resp)
	fmt.Fprintln(stdout, string(outputBytes))
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tvm history -store-dsn <dsn> [-limit N]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List recent calculations from the history table, newest first.")
}

func writeError(stdout io.Writer, msg string) int {
	output := Response{Error: msg}
	outputBytes, _ := json.Marshal(output)
	fmt.Fprintln(stdout, string(outputBytes))
	return 1
}

// List reads up to limit records through the Store interface, so any
// implementation can back it.
func List(ctx context.Context, st store.Store, limit int) (*Response, error) {
	recs, err := st.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	resp := &Response{Records: make([]Row, 0, len(recs))}
	for _, rec := range recs {
		resp.Records = append(resp.Records, Row{
			Tool:      rec.Tool,
			Input:     rec.Input,
			Result:    rec.Result,
			CreatedAt: rec.CreatedAt.Format(time.RFC3339),
		})
	}
	return resp, nil
}
