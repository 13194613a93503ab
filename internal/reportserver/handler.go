package reportserver

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/a-h/templ"
)

// NewHandler builds the HTTP handler for the run index and reports.
func NewHandler(cfg Config) (http.Handler, error) {
	if cfg.OutputDir == "" {
		return nil, errors.New("reportserver: output dir is required")
	}

	runsDir := filepath.Join(cfg.OutputDir, "runs")
	mux := http.NewServeMux()
	mux.HandleFunc("/", serveIndex(runsDir))
	mux.Handle("/runs/", http.StripPrefix("/runs/", http.FileServer(http.Dir(runsDir))))
	return mux, nil
}

// serveIndex lists stored runs with links to their reports.
func serveIndex(runsDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		runIDs, err := listRunIDs(runsDir)
		if err != nil {
			http.Error(w, "failed to list runs", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = io.WriteString(w, indexHTML(runIDs))
	}
}

// listRunIDs returns stored run ids, newest first.
func listRunIDs(runsDir string) ([]string, error) {
	entries, err := os.ReadDir(runsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ids)))
	return ids, nil
}

// indexHTML renders the run index page.
func indexHTML(runIDs []string) string {
	var b strings.Builder
	b.WriteString("<!doctype html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\" />\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\" />\n")
	b.WriteString("<title>Validation Runs</title>\n</head>\n<body>\n")
	b.WriteString("<h1>Validation Runs</h1>\n")
	if len(runIDs) == 0 {
		b.WriteString("<p>No runs recorded yet.</p>\n")
	} else {
		b.WriteString("<ul>\n")
		for _, id := range runIDs {
			escaped := templ.EscapeString(id)
			fmt.Fprintf(&b, "<li><a href=\"/runs/%s/report.html\">%s</a></li>\n", escaped, escaped)
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</body>\n</html>\n")
	return b.String()
}
