package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gochat247/botadmin/internal/model"
	"github.com/gochat247/botadmin/internal/store"
)

func init() {
	kbCmd := &cobra.Command{
		Use:   "kb",
		Short: "Manage knowledge-base documents",
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a knowledge-base document",
		Run:   runKBAdd,
	}
	addCmd.Flags().String("content", "", "Document content")
	addCmd.Flags().String("metadata", "", "Document metadata")

	updateCmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Update a knowledge-base document by ID",
		Args:  cobra.ExactArgs(1),
		Run:   runKBUpdate,
	}
	updateCmd.Flags().String("content", "", "Document content")
	updateCmd.Flags().String("metadata", "", "Document metadata")

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a knowledge-base document and its bot links",
		Args:  cobra.ExactArgs(1),
		Run:   runKBRm,
	}

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Full-text search over document content and metadata",
		Args:  cobra.MinimumNArgs(1),
		Run:   runKBSearch,
	}
	searchCmd.Flags().IntP("limit", "l", 20, "Max results")

	kbCmd.AddCommand(addCmd, updateCmd, rmCmd, searchCmd)
	RootCmd.AddCommand(kbCmd)
}

func runKBAdd(cmd *cobra.Command, args []string) {
	e := model.DefaultKnowledgeEntry()
	if cmd.Flags().Changed("content") {
		e.Content, _ = cmd.Flags().GetString("content")
	}
	if cmd.Flags().Changed("metadata") {
		e.Metadata, _ = cmd.Flags().GetString("metadata")
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	id, err := s.InsertKnowledge(cmd.Context(), e)
	if err != nil {
		exitErr("kb add", err)
	}

	fmt.Printf(`{"ok":true,"ID":%d}`+"\n", id)
}

func runKBUpdate(cmd *cobra.Command, args []string) {
	id := args[0]

	values := store.Row{}
	if cmd.Flags().Changed("content") {
		values["Content"], _ = cmd.Flags().GetString("content")
	}
	if cmd.Flags().Changed("metadata") {
		values["Metadata"], _ = cmd.Flags().GetString("metadata")
	}

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.UpdateByKey(cmd.Context(), store.TableKnowledge, "ID", id, values); err != nil {
		exitErr("kb update", err)
	}

	fmt.Printf(`{"ok":true,"ID":%s}`+"\n", id)
}

func runKBRm(cmd *cobra.Command, args []string) {
	id := args[0]

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	if err := s.DeleteByKey(cmd.Context(), store.TableKnowledge, "ID", id); err != nil {
		exitErr("kb rm", err)
	}

	fmt.Printf(`{"ok":true,"ID":%s}`+"\n", id)
}

func runKBSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	matches, err := s.SearchKnowledge(cmd.Context(), query, limit)
	if err != nil {
		exitErr("kb search", err)
	}

	if len(matches) == 0 {
		fmt.Println("[]")
		return
	}

	b, _ := json.MarshalIndent(matches, "", "  ")
	fmt.Println(string(b))
}
