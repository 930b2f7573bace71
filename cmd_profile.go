package main

import (
	"coffeehouse/api"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your reader profile",
}

var profileGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileGet,
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change your nickname, email or pronouns",
	Long: `Update the signed in reader's profile. Only the flags given are changed.

Examples:
  coffeehouse profile update --pronouns they/them
  coffeehouse profile update --nickname "Night Reader"`,
	Args: cobra.NoArgs,
	RunE: runProfileUpdate,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileCreate,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your profile (not supported by the backend yet)",
	Args:  cobra.NoArgs,
	RunE:  runProfileDelete,
}

func init() {
	for _, c := range []*cobra.Command{profileUpdateCmd, profileCreateCmd} {
		c.Flags().String("nickname", "", "display name shown to other readers")
		c.Flags().String("email", "", "contact email")
		c.Flags().String("pronouns", "", "pronouns, e.g. she/her")
	}
	_ = profileCreateCmd.MarkFlagRequired("nickname")
	_ = profileCreateCmd.MarkFlagRequired("email")

	profileCmd.AddCommand(profileGetCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileGet(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	token, err := sessionToken(svc)
	if err != nil {
		return err
	}
	person, err := svc.Profile.GetPerson(cmd.Context(), token)
	if err != nil {
		return err
	}
	return output(cmd, person)
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	token, err := sessionToken(svc)
	if err != nil {
		return err
	}
	current, err := svc.Profile.GetPerson(cmd.Context(), token)
	if err != nil {
		return err
	}
	person := applyPersonFlags(cmd, *current)
	updated, err := svc.Profile.UpdatePerson(cmd.Context(), person, token)
	if err != nil {
		return err
	}
	return output(cmd, updated)
}

func runProfileCreate(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	created, err := svc.Profile.CreatePerson(cmd.Context(), applyPersonFlags(cmd, api.Person{}))
	if err != nil {
		return err
	}
	return output(cmd, created)
}

func runProfileDelete(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	claims, err := svc.Auth.GetParsedToken()
	if err != nil {
		return errNotSignedIn
	}
	return svc.Profile.DeletePerson(cmd.Context(), claims.Subject)
}

// applyPersonFlags overwrites the fields whose flags were given.
func applyPersonFlags(cmd *cobra.Command, person api.Person) api.Person {
	flags := cmd.Flags()
	if flags.Changed("nickname") {
		person.Nickname, _ = flags.GetString("nickname")
	}
	if flags.Changed("email") {
		person.Email, _ = flags.GetString("email")
	}
	if flags.Changed("pronouns") {
		person.Pronouns, _ = flags.GetString("pronouns")
	}
	return person
}
