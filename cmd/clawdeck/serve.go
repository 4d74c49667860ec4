package main

import (
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/bhandras/clawdeck/internal/api/handlers"
	"github.com/bhandras/clawdeck/internal/api/middleware"
	"github.com/bhandras/clawdeck/internal/assets"
	"github.com/bhandras/clawdeck/internal/config"
	"github.com/bhandras/clawdeck/internal/version"
	"github.com/bhandras/clawdeck/pkg/logger"
	"github.com/bhandras/clawdeck/pkg/types"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the control panel server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}

	cmd.Flags().String("addr", "", "listen address, host:port (default is :18789)")
	cmd.Flags().String("base-path", "", "URL prefix the panel is mounted under, e.g. /clawdeck")
	cmd.Flags().String("webui-dist", "", "directory holding the built web UI")
	cmd.Flags().String("sessions-dir", "", "directory scanned for session logs")
	cmd.Flags().Bool("qr", false, "print the panel URL as a terminal QR code")
	_ = viper.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("base_path", cmd.Flags().Lookup("base-path"))
	_ = viper.BindPFlag("webui_dist", cmd.Flags().Lookup("webui-dist"))
	_ = viper.BindPFlag("sessions_dir", cmd.Flags().Lookup("sessions-dir"))
	_ = viper.BindPFlag("qr", cmd.Flags().Lookup("qr"))

	return cmd
}

func runServe() error {
	// Load configuration
	cfg, err := config.Load(overridesFromViper())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.Debug {
		logger.SetLevel(logger.LevelDebug)
	}

	// Set Gin mode
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// Resolve the web UI root once at startup. If it is unusable we still
	// start and answer 503 for asset requests; a later build is picked up
	// per request because no resolved root gets pinned.
	root := assets.ResolveRoot(cfg.WebUIDist)
	opts := handlers.MountOptions{}
	switch root.Status {
	case assets.RootResolved:
		logger.Infof("Serving web UI from %s", root.Path)
		opts.Root = &root
	case assets.RootInvalid:
		logger.Warnf("Web UI directory %s is not usable", root.Path)
	case assets.RootMissing:
		logger.Warnf("Web UI build not found - asset requests will get 503 until webui/dist exists")
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.RedirectTrailingSlash = false

	// CORS middleware
	router.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "HEAD"},
		AllowHeaders:  []string{"*"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	// Logging middleware
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.SecurityHeaders(cfg.CSP))

	// Host endpoints outside the panel namespace
	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/api/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, types.VersionInfo{
			Version: version.Version(),
			Commit:  version.CommitHash,
		})
	})

	// Panel routes (avatar endpoint plus the catch-all)
	handlers.Mount(router, cfg, opts)

	// Start HTTP server
	url := panelURL(cfg)
	logger.Infof("Clawdeck %s starting on %s", version.Version(), url)
	logger.Infof("Sessions: %s", cfg.SessionsDir)
	if viper.GetBool("qr") {
		printQRCode(url)
	}

	if err := router.Run(cfg.Addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// overridesFromViper lifts explicitly set flag and environment values into
// config overrides, leaving everything else to the config file and defaults.
func overridesFromViper() config.Overrides {
	var o config.Overrides
	if v := strings.TrimSpace(viper.GetString("config")); v != "" {
		o.ConfigFile = &v
	}
	if v := strings.TrimSpace(viper.GetString("addr")); v != "" {
		o.Addr = &v
	}
	if v := strings.TrimSpace(viper.GetString("base_path")); v != "" {
		o.BasePath = &v
	}
	if v := strings.TrimSpace(viper.GetString("webui_dist")); v != "" {
		o.WebUIDist = &v
	}
	if v := strings.TrimSpace(viper.GetString("sessions_dir")); v != "" {
		o.SessionsDir = &v
	}
	if viper.GetBool("debug") {
		debug := true
		o.Debug = &debug
	}
	return o
}

func panelURL(cfg *config.Config) string {
	return "http://" + displayHost(cfg.Addr) + cfg.BasePath + "/"
}

// displayHost turns a listen address into something a browser can open.
func displayHost(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}

// printQRCode prints the panel URL as a QR code so a phone on the same
// network can open it.
func printQRCode(url string) {
	qr, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		logger.Warnf("Failed to generate QR code: %v", err)
		logger.Infof("Panel URL: %s", url)
		return
	}
	fmt.Println(qr.ToSmallString(false))
}
