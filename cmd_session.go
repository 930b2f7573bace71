package main

import (
	"coffeehouse/api"
	"coffeehouse/utils"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with Google",
	Long: `Open Google's consent page, exchange the resulting code with the backend
and keep the ID token for later commands. A profile is created on first
sign in.`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the cached token",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	loginCmd.Flags().String("scope", "", "space separated OAuth scopes (default from COFFEEHOUSE_SCOPES)")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	scope, _ := cmd.Flags().GetString("scope")
	resp, err := svc.SignIn(cmd.Context(), scope)
	if err != nil {
		return err
	}
	return output(cmd, resp)
}

func runLogout(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	return output(cmd, api.LogoutResponse{SignedOut: svc.Auth.SignOut(cmd.Context())})
}

func runWhoami(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	resp := api.SessionResponse{LoggedIn: svc.Session.GetUserLoginStatus()}
	if resp.LoggedIn {
		claims, err := svc.Auth.GetParsedToken()
		if err != nil {
			return err
		}
		resp.Claims = utils.ToPointer(claims)
	}
	return output(cmd, resp)
}
