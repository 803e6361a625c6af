// README: Bench cases: environment, migration, HTTP contract and decode throughput.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"google.golang.org/protobuf/encoding/protowire"

	"cabsync/internal/modules/rapido"
)

const (
	StatusPass    = "PASS"
	StatusFail    = "FAIL"
	StatusPending = "PENDING"
	StatusSkip    = "SKIP"
)

type Runner struct {
	cfg   Config
	httpc *http.Client
	db    *pgxpool.Pool
	redis *redis.Client
}

type Result struct {
	Name    string
	Status  string
	Latency time.Duration
	Note    string
}

type TestCase struct {
	Name string
	Run  func(ctx context.Context, r *Runner) Result
}

func NewRunner(cfg Config) *Runner {
	return &Runner{
		cfg:   cfg,
		httpc: &http.Client{Timeout: 20 * time.Second},
	}
}

func (r *Runner) RunAll(ctx context.Context) []Result {
	if r.cfg.DSN != "" {
		if db, err := pgxpool.New(ctx, r.cfg.DSN); err == nil {
			r.db = db
			defer db.Close()
		}
	}
	if r.cfg.RedisAddr != "" {
		r.redis = redis.NewClient(&redis.Options{Addr: r.cfg.RedisAddr})
		defer r.redis.Close()
	}

	tests := r.cases()
	results := make([]Result, 0, len(tests))
	for _, tc := range tests {
		res := tc.Run(ctx, r)
		res.Name = tc.Name
		results = append(results, res)
		fmt.Printf("%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Printf(" (%s)", res.Latency)
		}
		if res.Note != "" {
			fmt.Printf(" - %s", res.Note)
		}
		fmt.Println()
	}
	return results
}

func (r *Runner) cases() []TestCase {
	base := r.cfg.BaseURL
	sample := sampleEnvelope()
	trip := map[string]any{
		"pickup":  map[string]any{"lat": 18.4878505, "lng": 74.0234138, "name": "Loni Kalbhor"},
		"dropoff": map[string]any{"lat": 18.5288974, "lng": 73.8665321, "name": "Pune Railway Station"},
	}

	return []TestCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.db.Ping(ctx); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.redis == nil {
					return Result{Status: StatusSkip, Note: "redis not configured"}
				}
				ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
				defer cancel()
				if err := r.redis.Ping(ctx).Err(); err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.ApplyMigration {
					return Result{Status: StatusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return Result{Status: StatusFail, Note: "db not configured"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
				}
				return Result{Status: StatusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *Runner) Result {
				if r.db == nil {
					return Result{Status: StatusSkip, Note: "db not configured"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return Result{Status: StatusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return Result{Status: StatusFail, Note: err.Error()}
					}
					if !exists {
						return Result{Status: StatusFail, Note: "missing table: " + t}
					}
				}
				return Result{Status: StatusPass}
			},
		},
		httpCase("API: health", http.MethodGet, base+"/health", nil, []int{200}),
		httpCase("API: providers", http.MethodGet, base+"/api/providers", nil, []int{200}),
		httpCase("Decode: sample envelope", http.MethodPost, base+"/api/rapido/decode", sample, []int{200}),
		httpCase("Decode: non-array body -> 400", http.MethodPost, base+"/api/rapido/decode", []byte(`{"error":"x"}`), []int{400}),
		httpCase("Quotes: missing coordinates -> 400", http.MethodPost, base+"/api/rapido/quotes", mustJSON(map[string]any{}), []int{400}),
		httpCase("Quotes: same pickup and dropoff -> 400", http.MethodPost, base+"/api/rapido/quotes",
			mustJSON(map[string]any{"pickup": trip["pickup"], "dropoff": trip["pickup"]}), []int{400}),
		{
			Name: "Quotes: live upstream (optional)",
			Run: func(ctx context.Context, r *Runner) Result {
				if !r.cfg.Live {
					return Result{Status: StatusSkip, Note: "live=false"}
				}
				res := httpCase("", http.MethodPost, base+"/api/rapido/quotes", mustJSON(trip), []int{200}).Run(ctx, r)
				if res.Status == StatusFail && strings.Contains(res.Note, "status=502") {
					res.Status = StatusPending
				}
				return res
			},
		},
		httpCase("Payloads: recent", http.MethodGet, base+"/api/rapido/payloads?limit=5", nil, []int{200, 404}),
		{
			Name: "Perf: decode throughput",
			Run: func(ctx context.Context, r *Runner) Result {
				return perfLoad(ctx, r, base+"/api/rapido/decode", sample)
			},
		},
	}
}

func (r *Runner) newRequest(ctx context.Context, method, url string, body []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.cfg.Token)
	}
	return req, nil
}

func httpCase(name, method, url string, body []byte, okStatuses []int) TestCase {
	return TestCase{
		Name: name,
		Run: func(ctx context.Context, r *Runner) Result {
			req, err := r.newRequest(ctx, method, url, body)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			start := time.Now()
			resp, err := r.httpc.Do(req)
			if err != nil {
				return Result{Status: StatusFail, Note: err.Error()}
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			latency := time.Since(start)

			note := fmt.Sprintf("status=%d", resp.StatusCode)
			if contains(okStatuses, resp.StatusCode) {
				return Result{Status: StatusPass, Latency: latency, Note: note}
			}
			return Result{Status: StatusFail, Latency: latency, Note: note}
		},
	}
}

func perfLoad(ctx context.Context, r *Runner, url string, body []byte) Result {
	end := time.Now().Add(r.cfg.Duration)
	var count, errCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, err := r.newRequest(ctx, http.MethodPost, url, body)
				if err != nil {
					errCount.Add(1)
					return
				}
				resp, err := r.httpc.Do(req)
				if err != nil {
					errCount.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				_ = resp.Body.Close()
				if resp.StatusCode != http.StatusOK {
					errCount.Add(1)
					continue
				}
				count.Add(1)
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return Result{Status: StatusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return Result{Status: StatusPass, Note: fmt.Sprintf("rps=%.1f errors=%d", rps, errCount.Load())}
}

// sampleEnvelope is a fare response with one auto ride, wrapped the way the
// upstream delivers it.
func sampleEnvelope() []byte {
	var entry []byte
	entry = protowire.AppendTag(entry, 1, protowire.BytesType)
	entry = protowire.AppendString(entry, rapido.RideTypeAuto)
	entry = protowire.AppendTag(entry, 3, protowire.Fixed64Type)
	entry = protowire.AppendFixed64(entry, math.Float64bits(145))
	entry = protowire.AppendTag(entry, 4, protowire.Fixed64Type)
	entry = protowire.AppendFixed64(entry, math.Float64bits(150))

	data := protowire.AppendTag(nil, 4, protowire.BytesType)
	data = protowire.AppendBytes(data, entry)
	raw := protowire.AppendTag(nil, 2, protowire.BytesType)
	raw = protowire.AppendBytes(raw, data)

	ints := make([]int, len(raw))
	for i, c := range raw {
		ints[i] = int(c)
	}
	return mustJSON(ints)
}

func mustJSON(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

func contains(list []int, v int) bool {
	for _, i := range list {
		if i == v {
			return true
		}
	}
	return false
}

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)
	matches := re.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
