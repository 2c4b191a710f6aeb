package cmd

import (
	"os"

	"coursectl/pkg/catalog"
	"coursectl/pkg/config"
	"coursectl/pkg/exporter"
	"coursectl/pkg/web"

	"github.com/gofiber/fiber/v2/log"
	"github.com/spf13/cobra"
)

var port string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the course browser web server",
	Long:  `Serve the requirement and catalog browser with a weekly calendar in the browser. Each browser keeps its own selection until the server stops.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Use PORT env var if set, otherwise use flag value
		if envPort := os.Getenv("PORT"); envPort != "" && port == "8080" {
			port = envPort
		}

		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		cat, err := catalog.Load(cfg.DataDir, cfg.Departments, cfg.Majors)
		if cat == nil {
			log.Fatalf("Failed to load course data: %v", err)
		}
		if err != nil {
			log.Warnf("Some course data could not be read: %v", err)
		}

		term, err := exporter.TermFromConfig(cfg)
		if err != nil {
			log.Fatalf("Invalid term settings: %v", err)
		}

		srv, err := web.NewServer(cat, term, cfg.DefaultMajor, []byte(os.Getenv("SESSION_SECRET")))
		if err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}

		log.Infof("Starting server on :%s", port)
		if err := srv.App().Listen(":" + port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to run the server on")
}
