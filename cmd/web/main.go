package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"asmetrics/internal/history"
	"asmetrics/internal/metrics"
	"asmetrics/internal/report"
)

var templates = template.Must(template.New("base").Parse(`
{{define "base"}}<!DOCTYPE html>
<html>
<head><title>Assembly Metrics</title></head>
<body>
<h1>Assembly Metrics</h1>
<p><a href="/runs">Run history</a> &middot; <a href="/api/metrics">JSON</a></p>
{{template "table" .Rows}}
</body>
</html>{{end}}

{{define "table"}}<table border="1" cellpadding="4">
<tr><th>dataset</th><th>num_contigs</th><th>total_contig_bases</th><th>N50</th></tr>
{{range .}}<tr><td>{{.Dataset}}</td><td>{{.NumContigs}}</td><td>{{.TotalContigBases}}</td><td>{{.N50}}</td></tr>
{{end}}</table>{{end}}

{{define "runs"}}<!DOCTYPE html>
<html>
<head><title>Run History</title></head>
<body>
<h1>Run History</h1>
<p><a href="/">Metrics</a></p>
<table border="1" cellpadding="4">
<tr><th>id</th><th>output</th><th>datasets</th><th>recorded at</th></tr>
{{range .}}<tr><td>{{.ID}}</td><td>{{.OutPath}}</td><td>{{.Datasets}}</td><td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td></tr>
{{end}}</table>
</body>
</html>{{end}}
`))

// MetricsPage carries the rendered table plus query state.
type MetricsPage struct {
	Rows []metrics.DatasetMetrics
	Sort string
}

// statusResponseWriter captures status and bytes written for logging
type statusResponseWriter struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// loggingMiddleware logs each request with method, path, status, size and duration
func loggingMiddleware(logger *log.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w}
		next.ServeHTTP(srw, r)
		if srw.status == 0 {
			srw.status = http.StatusOK
		}
		duration := time.Since(start)
		logger.Printf("%s - %s %s %d %dB %s %q",
			r.RemoteAddr, r.Method, r.URL.RequestURI(), srw.status, srw.written, duration, r.UserAgent())
	})
}

// sortRows orders rows in place according to the sort query parameter.
func sortRows(rows []metrics.DatasetMetrics, mode string) {
	switch mode {
	case "n50":
		sort.Slice(rows, func(i, j int) bool { return rows[i].N50 > rows[j].N50 })
	case "bases":
		sort.Slice(rows, func(i, j int) bool { return rows[i].TotalContigBases > rows[j].TotalContigBases })
	default:
		sort.Slice(rows, func(i, j int) bool {
			return strings.ToLower(rows[i].Dataset) < strings.ToLower(rows[j].Dataset)
		})
	}
}

func indexHandler(metricsPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := report.ReadCSV(metricsPath)
		if err != nil {
			log.Printf("warning: failed to read metrics for index: %v", err)
			rows = []metrics.DatasetMetrics{}
		}
		sortMode := r.URL.Query().Get("sort")
		sortRows(rows, sortMode)
		page := MetricsPage{Rows: rows, Sort: sortMode}
		if err := templates.ExecuteTemplate(w, "base", page); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func apiMetricsHandler(metricsPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rows, err := report.ReadCSV(metricsPath)
		if err != nil {
			http.Error(w, "failed to read metrics", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(rows)
	}
}

func runsHandler(historyPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := loadRuns(historyPath)
		if err != nil {
			http.Error(w, "failed to read run history", http.StatusInternalServerError)
			return
		}
		if err := templates.ExecuteTemplate(w, "runs", runs); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func apiRunsHandler(historyPath string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		runs, err := loadRuns(historyPath)
		if err != nil {
			http.Error(w, "failed to read run history", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_ = json.NewEncoder(w).Encode(runs)
	}
}

func loadRuns(historyPath string) ([]history.Run, error) {
	if historyPath == "" {
		return []history.Run{}, nil
	}
	st, err := history.Open(historyPath)
	if err != nil {
		return nil, err
	}
	defer st.Close()
	runs, err := st.List()
	if err != nil {
		return nil, err
	}
	if runs == nil {
		runs = []history.Run{}
	}
	return runs, nil
}

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	metricsPath := flag.String("metrics", "metrics.csv", "path to the metrics CSV written by asmetrics")
	historyPath := flag.String("history", "", "sqlite run-history database (optional)")
	logFile := flag.String("log", "", "path to write access logs (optional). If empty, logs go to stdout only")
	flag.Parse()

	mux := http.NewServeMux()
	mux.HandleFunc("/", indexHandler(*metricsPath))
	mux.HandleFunc("/runs", runsHandler(*historyPath))
	mux.HandleFunc("/api/metrics", apiMetricsHandler(*metricsPath))
	mux.HandleFunc("/api/runs", apiRunsHandler(*historyPath))

	var out io.Writer = os.Stdout
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		out = io.MultiWriter(os.Stdout, f)
	}
	logger := log.New(out, "asmetrics: ", log.LstdFlags)

	handler := loggingMiddleware(logger, mux)

	srv := &http.Server{Addr: *addr, Handler: handler, ReadTimeout: 5 * time.Second, WriteTimeout: 10 * time.Second}
	fmt.Printf("serving metrics UI at http://%s/ (metrics=%s)\n", *addr, *metricsPath)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
