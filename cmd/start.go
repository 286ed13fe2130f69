package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"table-importer/core/loader"
	"table-importer/core/logger"
	"table-importer/core/middleware/auth"
	"table-importer/core/middleware/rayid"
	"table-importer/feature/importer"
	"table-importer/feature/manifest"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "table-importer/docs/swagger"
)

// @title Table Importer API
// @version 1.0
// @description API for discovering importable spreadsheet tables.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the table discovery server",
	Long:  `Starts the HTTP server exposing table discovery and manifests.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := bootstrap(bootstrapOptions{})
		if err != nil {
			return err
		}
		logg := s.logger
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		mgr := loader.NewManager()
		mgr.Register(importer.NewFeature(s.tables))
		mgr.Register(manifest.NewFeature(s.manifest))

		// RayID must be first to trace everything
		app.Use(rayid.New())

		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: s.cfg.Server.ApiKey}))
		if !s.cfg.Server.AuthEnabled() {
			logg.Warn("SERVER_API_KEY is empty, the API is not protected")
		}

		loaded, err := mgr.LoadAll(app)
		if err != nil {
			return err
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("addr", s.cfg.Server.Addr()), zap.String("data_root", s.tables.DataRoot()))
			errCh <- app.Listen(s.cfg.Server.Addr())
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return err
		case <-quit:
		}

		logg.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
