package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/meikuraledutech/daghealth"
	"github.com/meikuraledutech/daghealth/memstore"
)

// Demonstrates the library against three local stand-in services: a healthy
// API, a database reporting 503, and a cache that never answers.
func main() {
	ctx := context.Background()

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer api.Close()

	db := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer db.Close()

	cache := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(5 * time.Second)
	}))
	defer cache.Close()

	nodes := []daghealth.Node{
		{ID: "db", Name: "Database", HealthEndpoint: db.URL},
		{ID: "cache", Name: "Cache", HealthEndpoint: cache.URL, Dependencies: []string{"db"}},
		{ID: "api", Name: "API Gateway", HealthEndpoint: api.URL, Dependencies: []string{"db", "cache"}},
	}

	store := memstore.New()
	checker := daghealth.NewChecker(daghealth.NewProber(2*time.Second), store, nil)

	rec, err := checker.Check(ctx, nodes, nil)
	if err != nil {
		log.Fatalf("check: %v", err)
	}

	fmt.Println("dag_id:         ", rec.DagID)
	fmt.Println("overall_status: ", rec.OverallStatus)
	fmt.Println("traversal_order:", rec.TraversalOrder)
	for _, n := range rec.Nodes {
		fmt.Printf("  %-8s %-12s", n.NodeID, n.Status)
		if n.ResponseTimeMS != nil {
			fmt.Printf(" %.2fms", *n.ResponseTimeMS)
		}
		if n.ErrorMessage != "" {
			fmt.Printf(" (%s)", n.ErrorMessage)
		}
		fmt.Println()
	}

	// ── History round trip ────────────────────────────────────────────
	fetched, err := store.GetByDagID(ctx, rec.DagID)
	if err != nil {
		log.Fatalf("get: %v", err)
	}
	doc, _ := json.MarshalIndent(fetched.GraphData, "", "  ")
	fmt.Println("graph_data:")
	fmt.Println(string(doc))
}
