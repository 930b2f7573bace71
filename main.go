package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"coffeehouse/envvars"
	"coffeehouse/services"
	"coffeehouse/utils"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var errNotSignedIn = errors.New("not signed in, run `coffeehouse login` first")

var rootCmd = &cobra.Command{
	Use:   "coffeehouse",
	Short: "Book club client",
	Long: `Sign in with Google, manage your reader profile and browse, create and
join book clubs.

Examples:
  coffeehouse login
  coffeehouse clubs list --membership "not member"
  coffeehouse clubs join 6f1c...
  coffeehouse serve`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringP("output", "o", "", "output format (json, yaml, text); defaults to text on a terminal")
	rootCmd.PersistentFlags().Bool("ephemeral", false, "keep the session in memory only")
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	env := envvars.GetEnv()
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if envvars.IsDev(env) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// openServices builds the service context for a command.
func openServices(cmd *cobra.Command) (*services.Services, error) {
	env := envvars.GetEnv()
	if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
		env.SessionStore = envvars.MemorySessionStore
	}
	svc, err := services.New(cmd.Context(), env)
	if err != nil {
		return nil, fmt.Errorf("failed to start: %w", err)
	}
	return svc, nil
}

// sessionToken is the signed in user's token, required by most commands.
func sessionToken(svc *services.Services) (string, error) {
	token, ok := svc.Session.GetUserToken()
	if !ok || !svc.Session.GetUserLoginStatus() {
		return "", errNotSignedIn
	}
	return token, nil
}

func output(cmd *cobra.Command, v any) error {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = utils.DefaultFormat(os.Stdout)
	}
	return utils.Print(cmd.OutOrStdout(), format, v)
}
