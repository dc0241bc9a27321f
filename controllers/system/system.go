package systemController

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"

	"lms/database"
	"lms/middleware"
)

var startedAt = time.Now()

// Healthz reports process and database health
func Healthz(c *fiber.Ctx) error {
	dbStatus := "ok"

	sqlDB, err := database.Database.Db.DB()
	if err != nil {
		dbStatus = "unavailable"
	} else if err := sqlDB.Ping(); err != nil {
		dbStatus = "unreachable"
	}

	status := fiber.StatusOK
	if dbStatus != "ok" {
		status = fiber.StatusServiceUnavailable
	}

	return middleware.JsonResponse(c, status, dbStatus == "ok", "Health check", fiber.Map{
		"database": dbStatus,
		"uptime":   time.Since(startedAt).String(),
	})
}

// Metrics exposes basic runtime counters for the admin panel
func Metrics(c *fiber.Ctx) error {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	stats := fiber.Map{
		"goroutines":     runtime.NumGoroutine(),
		"heap_alloc":     mem.HeapAlloc,
		"total_alloc":    mem.TotalAlloc,
		"gc_cycles":      mem.NumGC,
		"uptime_seconds": int64(time.Since(startedAt).Seconds()),
	}

	if sqlDB, err := database.Database.Db.DB(); err == nil {
		dbStats := sqlDB.Stats()
		stats["db_open_connections"] = dbStats.OpenConnections
		stats["db_in_use"] = dbStats.InUse
		stats["db_idle"] = dbStats.Idle
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Metrics fetched successfully!", stats)
}
