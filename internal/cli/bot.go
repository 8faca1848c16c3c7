package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/gochat247/botadmin/internal/model"
	"github.com/gochat247/botadmin/internal/store"
)

func init() {
	botCmd := &cobra.Command{
		Use:   "bot",
		Short: "Manage bot records",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a bot",
		Long:  "Add a bot. Name, person role, role, usage, sector, and prompt are required.",
		Run:   runBotAdd,
	}
	addBotFlags(addCmd)
	addCmd.Flags().String("kb", "", "Comma-separated KnowledgeBase IDs to link")
	addCmd.MarkFlagRequired("name")

	updateCmd := &cobra.Command{
		Use:   "update [name]",
		Short: "Update a bot by its display name",
		Args:  cobra.ExactArgs(1),
		Run:   runBotUpdate,
	}
	addBotFlags(updateCmd)
	updateCmd.Flags().String("kb", "", "Comma-separated KnowledgeBase IDs; replaces the bot's link set")

	rmCmd := &cobra.Command{
		Use:   "rm [name]",
		Short: "Delete a bot and its knowledge links",
		Args:  cobra.ExactArgs(1),
		Run:   runBotRm,
	}

	botCmd.AddCommand(addCmd, updateCmd, rmCmd)
	RootCmd.AddCommand(botCmd)
}

func addBotFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Botperson_Name (unique)")
	cmd.Flags().String("person-role", "", "Botperson_Role")
	cmd.Flags().String("role", "", "Role")
	cmd.Flags().String("usage", "", "Usage description")
	cmd.Flags().String("sector", "", "Sector")
	cmd.Flags().String("prompt", "", "Prompt text")
	cmd.Flags().String("access", "", "Level_of_Access")
	cmd.Flags().String("status", "", "Active_Status")
	cmd.Flags().String("version", "", "Version")
	cmd.Flags().String("owner", "", "Owner_Maintainer")
	cmd.Flags().String("foundation-business", "", "Foundation_Business")
	cmd.Flags().String("foundation-name", "", "Foundation_Name")
	cmd.Flags().String("last-updated", "", "Last_Updated (YYYY-MM-DD)")
}

// applyBotFlags copies every flag the operator set onto b.
func applyBotFlags(cmd *cobra.Command, b *model.Bot) {
	set := func(flag string, dst *string) {
		if cmd.Flags().Changed(flag) {
			*dst, _ = cmd.Flags().GetString(flag)
		}
	}
	set("name", &b.Name)
	set("person-role", &b.PersonRole)
	set("role", &b.Role)
	set("usage", &b.Usage)
	set("sector", &b.Sector)
	set("prompt", &b.Prompt)
	set("access", &b.LevelOfAccess)
	set("status", &b.ActiveStatus)
	set("version", &b.Version)
	set("owner", &b.OwnerMaintainer)
	set("foundation-business", &b.FoundationBusiness)
	set("foundation-name", &b.FoundationName)
	set("last-updated", &b.LastUpdated)
}

func runBotAdd(cmd *cobra.Command, args []string) {
	b := model.DefaultBot(time.Now())
	applyBotFlags(cmd, &b)

	if err := b.Validate(); err != nil {
		exitErr("bot add", err)
	}

	kbFlag, _ := cmd.Flags().GetString("kb")
	kbIDs, err := parseIDList(kbFlag)
	if err != nil {
		exitErr("bot add", err)
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	id, err := s.InsertBot(cmd.Context(), b)
	if err != nil {
		exitErr("bot add", err)
	}

	if len(kbIDs) > 0 {
		if err := s.LinkIfAbsent(cmd.Context(), id, kbIDs); err != nil {
			exitErr("link knowledge", err)
		}
	}

	fmt.Printf(`{"ok":true,"Bot_ID":%d,"linked":%d}`+"\n", id, len(kbIDs))
}

func runBotUpdate(cmd *cobra.Command, args []string) {
	name := args[0]

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	b, err := s.GetBotByName(cmd.Context(), name)
	if err != nil {
		exitErr("bot update", err)
	}
	applyBotFlags(cmd, b)

	values := store.Row{
		"Botperson_Name":          b.Name,
		"Botperson_Role":          b.PersonRole,
		"Role":                    b.Role,
		"Usage":                   b.Usage,
		"Sector":                  b.Sector,
		"Prompt":                  b.Prompt,
		"Total_Interactions":      strconv.FormatInt(b.TotalInteractions, 10),
		"Positive_Feedback_Count": strconv.FormatInt(b.PositiveFeedbackCount, 10),
		"Negative_Feedback_Count": strconv.FormatInt(b.NegativeFeedbackCount, 10),
		"Level_of_Access":         b.LevelOfAccess,
		"Active_Status":           b.ActiveStatus,
		"Version":                 b.Version,
		"Owner_Maintainer":        b.OwnerMaintainer,
		"Foundation_Business":     b.FoundationBusiness,
		"Foundation_Name":         b.FoundationName,
		"Last_Updated":            b.LastUpdated,
	}

	if err := s.UpdateByKey(cmd.Context(), store.TableBots, "Botperson_Name", name, values); err != nil {
		exitErr("bot update", err)
	}

	if cmd.Flags().Changed("kb") {
		kbFlag, _ := cmd.Flags().GetString("kb")
		kbIDs, err := parseIDList(kbFlag)
		if err != nil {
			exitErr("bot update", err)
		}
		if err := s.ReplaceLinks(cmd.Context(), b.ID, kbIDs); err != nil {
			exitErr("replace links", err)
		}
	}

	fmt.Printf(`{"ok":true,"Botperson_Name":%q}`+"\n", b.Name)
}

func runBotRm(cmd *cobra.Command, args []string) {
	name := args[0]

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.DeleteByKey(cmd.Context(), store.TableBots, "Botperson_Name", name); err != nil {
		exitErr("bot rm", err)
	}

	fmt.Printf(`{"ok":true,"Botperson_Name":%q}`+"\n", name)
}
