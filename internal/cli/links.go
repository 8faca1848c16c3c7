package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "links [bot-id]",
		Short: "Show or change a bot's knowledge links",
		Long:  "Show the knowledge entries linked to a bot. --add links new entries without duplicating existing ones; --replace swaps the whole link set.",
		Args:  cobra.ExactArgs(1),
		Run:   runLinks,
	}

	cmd.Flags().String("add", "", "Comma-separated KnowledgeBase IDs to link if absent")
	cmd.Flags().String("replace", "", "Comma-separated KnowledgeBase IDs; replaces the link set")

	RootCmd.AddCommand(cmd)
}

func runLinks(cmd *cobra.Command, args []string) {
	botID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitErr("links", fmt.Errorf("invalid bot id %q", args[0]))
	}

	addFlag, _ := cmd.Flags().GetString("add")
	replaceFlag, _ := cmd.Flags().GetString("replace")
	if addFlag != "" && replaceFlag != "" {
		exitErr("links", fmt.Errorf("--add and --replace are mutually exclusive"))
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if addFlag != "" {
		ids, err := parseIDList(addFlag)
		if err != nil {
			exitErr("links", err)
		}
		if err := s.LinkIfAbsent(cmd.Context(), botID, ids); err != nil {
			exitErr("links", err)
		}
	}

	if cmd.Flags().Changed("replace") {
		ids, err := parseIDList(replaceFlag)
		if err != nil {
			exitErr("links", err)
		}
		if err := s.ReplaceLinks(cmd.Context(), botID, ids); err != nil {
			exitErr("links", err)
		}
	}

	linked, err := s.LinkedKnowledgeIDs(cmd.Context(), botID)
	if err != nil {
		exitErr("links", err)
	}
	if linked == nil {
		linked = []int64{}
	}

	b, _ := json.Marshal(map[string]any{"Bot_ID": botID, "KnowledgeBase_IDs": linked})
	fmt.Println(string(b))
}
