package bootstrap

import (
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	app "github.com/hostelhub/roster-import/internal/application/roster"
	"github.com/hostelhub/roster-import/internal/config"
	domain "github.com/hostelhub/roster-import/internal/domain/roster"
	"github.com/hostelhub/roster-import/internal/infrastructure/repository"
	httpecho "github.com/hostelhub/roster-import/internal/interfaces/http/echo"
)

// NewHTTPServer wires the Postgres-backed repositories into the HTTP server.
func NewHTTPServer(cfg *config.Config, pool *pgxpool.Pool, db *gorm.DB) *echo.Echo {
	writer := repository.NewRosterRepository(pool, repository.RosterRepositoryOptions{
		RowTransaction: cfg.Ingest.RowTransaction,
	})
	reader := repository.NewStudentQueryRepository(db)
	return NewServer(cfg, writer, reader)
}

func NewServer(cfg *config.Config, writer domain.RosterWriter, reader domain.StudentReader) *echo.Echo {
	server := echo.New()
	server.HideBanner = true
	server.HidePort = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(cfg.Server.BodyLimit))
	server.Use(httpecho.RequestDuration())

	rosterHandler := httpecho.NewRosterHandler(app.NewIngestRoster(writer))
	studentHandler := httpecho.NewStudentHandler(app.NewGetStudent(reader))
	httpecho.RegisterRoutes(server, rosterHandler, studentHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	server.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return server
}
