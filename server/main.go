package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meikuraledutech/daghealth"
	"github.com/meikuraledutech/daghealth/postgres"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	pg := postgres.New(pool)
	var store daghealth.Store = pg

	timeout := daghealth.DefaultProbeTimeout
	if v := os.Getenv("PROBE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Fatalf("PROBE_TIMEOUT: %v", err)
		}
		timeout = d
	}

	checker := daghealth.NewChecker(daghealth.NewProber(timeout), store, logger)

	app := fiber.New()
	api := app.Group("/api")

	api.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "DAG Health Monitoring Service", "version": "1.0.0"})
	})

	// ── Health check ──────────────────────────────────────────────────
	api.Post("/dag/health-check", func(c fiber.Ctx) error {
		var body struct {
			Nodes []daghealth.Node `json:"nodes"`
			Edges []daghealth.Edge `json:"edges"`
		}
		if err := c.Bind().JSON(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}

		rec, err := checker.Check(c.Context(), body.Nodes, body.Edges)
		if isValidationError(err) {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(rec)
	})

	// ── History ───────────────────────────────────────────────────────
	api.Get("/dag/history", func(c fiber.Ctx) error {
		records, err := store.ListRecent(c.Context(), daghealth.RetentionLimit)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if records == nil {
			records = []daghealth.CheckRecord{}
		}
		return c.JSON(records)
	})

	api.Get("/dag/history/:dag_id", func(c fiber.Ctx) error {
		rec, err := store.GetByDagID(c.Context(), c.Params("dag_id"))
		if errors.Is(err, daghealth.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "health check record not found"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(rec)
	})

	// ── Schema ────────────────────────────────────────────────────────
	app.Post("/schema", func(c fiber.Ctx) error {
		if err := pg.CreateSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema created"})
	})

	app.Delete("/schema", func(c fiber.Ctx) error {
		if err := pg.DropSchema(c.Context()); err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"message": "schema dropped"})
	})

	addr := ":8000"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	log.Fatal(app.Listen(addr))
}

// isValidationError reports whether err rejects the request body itself, as
// opposed to a failure while running the check.
func isValidationError(err error) bool {
	return errors.Is(err, daghealth.ErrEmptyGraph) ||
		errors.Is(err, daghealth.ErrUnknownNode) ||
		errors.Is(err, daghealth.ErrInconsistentGraph) ||
		errors.Is(err, daghealth.ErrCycleDetected)
}
