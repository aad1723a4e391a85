package recon

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"CatalystPaySaas/api/recon/drive"
	"CatalystPaySaas/api/recon/ledger"
	"CatalystPaySaas/api/recon/timesheet"
	"CatalystPaySaas/internal/config"
	"CatalystPaySaas/internal/graph"
)

const defaultReconPort = "7143"

// toInt tolerates the YAML-decoded config map handing back ints, floats or
// numeric strings.
func toInt(v interface{}) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	}
	return 0
}

func cfgInt(cfg map[string]interface{}, key string, fallback int) int {
	if cfg != nil {
		if v, ok := cfg[key]; ok && v != nil {
			if n := toInt(v); n > 0 {
				return n
			}
		}
	}
	return fallback
}

func cfgString(cfg map[string]interface{}, key, fallback string) string {
	if cfg != nil {
		if v, ok := cfg[key].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

// eventAdapter binds the package-level fetch to the Graph client so the
// pipeline depends on an interface.
type eventAdapter struct {
	client timesheet.CalendarAPI
}

func (a eventAdapter) MonthEvents(ctx context.Context, email string, now time.Time) ([]timesheet.Event, error) {
	return timesheet.MonthEvents(ctx, a.client, email, now)
}

// Dependencies holds the wired collaborators of the submission service.
type Dependencies struct {
	Store    *ledger.Store
	Cache    *ledger.RosterCache
	Pipeline *Pipeline
}

// BuildDependencies wires the Graph client and the pipeline stages from the
// service config map and environment. GRAPH_TOKEN is the supplied opaque
// credential; acquisition is out of scope.
func BuildDependencies(cfg map[string]interface{}) *Dependencies {
	client := graph.NewClient(graph.Config{
		BaseURL: os.Getenv("GRAPH_BASE_URL"),
		DriveID: os.Getenv("DRIVE_ID"),
		Token:   os.Getenv("GRAPH_TOKEN"),
	})

	bounds := ledger.DefaultBounds()
	bounds.CategoryColumn = cfgInt(cfg, "category_column", bounds.CategoryColumn)
	bounds.NameColumn = cfgInt(cfg, "name_column", bounds.NameColumn)
	bounds.MonthHeaderRow = cfgInt(cfg, "month_header_row", bounds.MonthHeaderRow)
	bounds.MonthStartColumn = cfgInt(cfg, "month_start_column", bounds.MonthStartColumn)
	bounds.MonthColumnSpan = cfgInt(cfg, "month_column_span", bounds.MonthColumnSpan)
	bounds.MaxScanRow = cfgInt(cfg, "max_scan_row", bounds.MaxScanRow)
	marker := cfgString(cfg, "category_marker", config.CategoryMarker)

	store := ledger.NewStore(client, bounds, marker)
	cache := &ledger.RosterCache{}
	pipeline := &Pipeline{
		Folders: drive.NewProvisioner(client),
		Files:   drive.NewUploader(client),
		Ledger:  store,
		Events:  eventAdapter{client: client},
	}
	return &Dependencies{Store: store, Cache: cache, Pipeline: pipeline}
}

// StartReconService runs the submission HTTP endpoint.
func StartReconService(deps *Dependencies, cfg map[string]interface{}) {
	port := cfgString(cfg, "port", defaultReconPort)

	router := mux.NewRouter()
	router.HandleFunc("/recon/health", HealthHandler).Methods("GET")
	router.HandleFunc("/recon/roster", RosterHandler(deps.Cache)).Methods("GET")
	router.HandleFunc("/recon/submit", SubmitHandler(deps.Pipeline, deps.Cache)).Methods("POST")

	log.Println("Recon Service started on :" + port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatalf("Recon Service failed: %v", err)
	}
}
