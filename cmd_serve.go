package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"coffeehouse/api"
	"coffeehouse/middleware"
	"coffeehouse/services"
	"coffeehouse/validator"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginmiddleware "github.com/oapi-codegen/gin-middleware"
	"github.com/spf13/cobra"
)

const (
	rateLimitRPS   = 10
	rateLimitBurst = 20
	shutdownGrace  = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the companion API for a browser UI",
	Long: `Serve the session and club operations over HTTP on a loopback address.
Requests authenticate with "Authorization: Bearer <id token>" or fall back to
the signed in session. GET /openapi returns the API description.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from COFFEEHOUSE_LISTEN_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	r, err := newRouter(svc)
	if err != nil {
		return err
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = svc.Env.ListenAddr
	}
	s := &http.Server{
		Handler:           r,
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "addr", addr)
		errs <- s.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-cmd.Context().Done():
		slog.Info("Shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return s.Shutdown(ctx)
	}
}

func newRouter(svc *services.Services) (*gin.Engine, error) {
	swagger, err := api.GetSwagger()
	if err != nil {
		return nil, fmt.Errorf("failed to load swagger spec file: %w", err)
	}
	// Clear out the servers array in the swagger spec, that skips validating
	// that server names match. We don't know how this thing will be run.
	swagger.Servers = nil

	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.RateLimit(rateLimitRPS, rateLimitBurst))

	r.GET("/openapi", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/x-yaml", api.Spec())
	})

	r.Use(ginmiddleware.OapiRequestValidatorWithOptions(swagger, &ginmiddleware.Options{
		ErrorHandler: validationError,
		Options: openapi3filter.Options{
			AuthenticationFunc: validator.NewAuthenticator(svc.Session),
		},
	}))
	registerHandlers(r, NewServer(svc))
	return r, nil
}

func registerHandlers(r gin.IRoutes, s Server) {
	r.GET("/ping", s.Ping)
	r.GET("/session", s.GetSession)
	r.POST("/login", s.Login)
	r.POST("/logout", s.Logout)
	r.GET("/profile", s.GetProfile)
	r.PUT("/profile", s.UpdateProfile)
	r.POST("/profile", s.CreateProfile)
	r.GET("/clubs", s.ListClubs)
	r.POST("/clubs", s.CreateClub)
	r.GET("/clubs/:clubId", s.GetClub)
	r.PATCH("/clubs/:clubId", s.UpdateClub)
	r.POST("/clubs/:clubId/join", s.JoinClub)
	r.POST("/clubs/:clubId/leave", s.LeaveClub)
}

// validationError maps request validator failures to statuses. The validator
// reports everything as 400, including missing credentials.
func validationError(c *gin.Context, message string, statusCode int) {
	switch {
	case strings.Contains(message, "SecurityRequirementsError"):
		statusCode = http.StatusUnauthorized
	case strings.Contains(message, "no matching operation was found"):
		statusCode = http.StatusNotFound
	}
	c.AbortWithStatusJSON(statusCode, api.ErrorResponse{Error: message})
}
