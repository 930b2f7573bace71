package main

import (
	"fmt"

	"coffeehouse/api"
	"coffeehouse/generator"

	"github.com/spf13/cobra"
)

var clubsCmd = &cobra.Command{
	Use:   "clubs",
	Short: "Browse, create and join book clubs",
	Long: `Book club commands.

Examples:
  coffeehouse clubs list
  coffeehouse clubs list --membership "not member"
  coffeehouse clubs create --name "Sci-fi Sundays" --book-title Kindred --book-author "Octavia Butler"
  coffeehouse clubs join 6f1c...
  coffeehouse clubs update 6f1c... --warning violence --warning grief`,
}

var clubsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clubs you are or are not a member of",
	Args:  cobra.NoArgs,
	RunE:  runClubsList,
}

var clubsGetCmd = &cobra.Command{
	Use:   "get <club-id>",
	Short: "Show a club",
	Args:  cobra.ExactArgs(1),
	RunE:  runClubsGet,
}

var clubsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a club you own",
	Args:  cobra.NoArgs,
	RunE:  runClubsCreate,
}

var clubsJoinCmd = &cobra.Command{
	Use:   "join <club-id>",
	Short: "Join a club",
	Args:  cobra.ExactArgs(1),
	RunE:  runClubsJoin,
}

var clubsLeaveCmd = &cobra.Command{
	Use:   "leave <club-id>",
	Short: "Leave a club",
	Args:  cobra.ExactArgs(1),
	RunE:  runClubsLeave,
}

var clubsUpdateCmd = &cobra.Command{
	Use:   "update <club-id>",
	Short: "Change a club's description, content warnings or current book",
	Long: `Update a club you own. Only the flags given are sent; pass --warning ""
to clear all content warnings.`,
	Args: cobra.ExactArgs(1),
	RunE: runClubsUpdate,
}

func init() {
	clubsListCmd.Flags().String("membership", string(api.Member), `"member" or "not member"`)

	clubsCreateCmd.Flags().String("name", "", "club name (a name is suggested when empty)")
	for _, c := range []*cobra.Command{clubsCreateCmd, clubsUpdateCmd} {
		c.Flags().String("description", "", "what the club is about")
		c.Flags().StringArray("warning", nil, "content warning, repeatable")
		c.Flags().String("book-title", "", "current book title")
		c.Flags().String("book-author", "", "current book author")
		c.Flags().String("isbn", "", "current book ISBN")
	}
	clubsUpdateCmd.Flags().String("mask", "", "comma separated fields to update (default: every flag given)")

	clubsCmd.AddCommand(clubsListCmd)
	clubsCmd.AddCommand(clubsGetCmd)
	clubsCmd.AddCommand(clubsCreateCmd)
	clubsCmd.AddCommand(clubsJoinCmd)
	clubsCmd.AddCommand(clubsLeaveCmd)
	clubsCmd.AddCommand(clubsUpdateCmd)
	rootCmd.AddCommand(clubsCmd)
}

func runClubsList(cmd *cobra.Command, _ []string) error {
	raw, _ := cmd.Flags().GetString("membership")
	membership, ok := api.ParseMembershipStatus(raw)
	if !ok {
		return fmt.Errorf("invalid membership %q, want %q or %q", raw, api.Member, api.NotMember)
	}

	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	token, err := sessionToken(svc)
	if err != nil {
		return err
	}
	list, err := svc.Clubs.ListClubs(cmd.Context(), token, membership)
	if err != nil {
		return err
	}
	return output(cmd, list)
}

func runClubsGet(cmd *cobra.Command, args []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	club, err := svc.Clubs.GetClub(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return output(cmd, club)
}

func runClubsCreate(cmd *cobra.Command, _ []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	claims, err := svc.Auth.GetParsedToken()
	if err != nil {
		return errNotSignedIn
	}
	club := applyClubFlags(cmd, api.Club{OwnerID: claims.Subject})
	club.Name, _ = cmd.Flags().GetString("name")
	if club.Name == "" {
		club.Name = generator.ClubName()
	}
	created, err := svc.Clubs.CreateClub(cmd.Context(), club)
	if err != nil {
		return err
	}
	return output(cmd, created)
}

func runClubsJoin(cmd *cobra.Command, args []string) error {
	return runMembership(cmd, args[0], true)
}

func runClubsLeave(cmd *cobra.Command, args []string) error {
	return runMembership(cmd, args[0], false)
}

func runMembership(cmd *cobra.Command, clubID string, join bool) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	token, err := sessionToken(svc)
	if err != nil {
		return err
	}
	change := svc.Clubs.LeaveClub
	if join {
		change = svc.Clubs.JoinClub
	}
	return output(cmd, api.MembershipResponse{
		ClubID:  clubID,
		Success: change(cmd.Context(), clubID, token),
	})
}

func runClubsUpdate(cmd *cobra.Command, args []string) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	token, err := sessionToken(svc)
	if err != nil {
		return err
	}
	mask, _ := cmd.Flags().GetString("mask")
	club := applyClubFlags(cmd, api.Club{ClubID: args[0]})
	updated, err := svc.Clubs.UpdateClub(cmd.Context(), club, token, mask)
	if err != nil {
		return err
	}
	return output(cmd, updated)
}

// applyClubFlags copies the updatable fields whose flags were given.
func applyClubFlags(cmd *cobra.Command, club api.Club) api.Club {
	flags := cmd.Flags()
	if flags.Changed("description") {
		club.Description, _ = flags.GetString("description")
	}
	if flags.Changed("warning") {
		club.ContentWarnings, _ = flags.GetStringArray("warning")
		if club.ContentWarnings == nil {
			club.ContentWarnings = []string{}
		}
	}
	if flags.Changed("book-title") {
		club.CurrentBook.Title, _ = flags.GetString("book-title")
	}
	if flags.Changed("book-author") {
		club.CurrentBook.Author, _ = flags.GetString("book-author")
	}
	if flags.Changed("isbn") {
		club.CurrentBook.ISBN, _ = flags.GetString("isbn")
	}
	return club
}
