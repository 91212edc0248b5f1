package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bassista/go_restate/internal/resource"
)

var (
	flagTitle   string
	flagContent string
	flagStatus  string
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Fetch a single entity by id and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := resource.ID(args[0])

		if _, err := handler.FetchSingle(id)(cmd.Context(), st, st); err != nil {
			return fmt.Errorf("fetch %s: %w", id, err)
		}

		return printJSON(resource.GetSingle(resourceState(), id))
	},
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an entity and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		data := entityFromFlags(cmd)

		id, err := handler.Create(data)(cmd.Context(), st, st)
		if err != nil {
			return fmt.Errorf("create: %w", err)
		}

		fmt.Printf("created %s\n", id)
		return printJSON(resource.GetSingle(resourceState(), id))
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update an entity and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := resource.ID(args[0])
		data := entityFromFlags(cmd)
		data["id"] = string(id)

		if _, err := handler.Update(data)(cmd.Context(), st, st); err != nil {
			return fmt.Errorf("update %s: %w", id, err)
		}

		return printJSON(resource.GetSingle(resourceState(), id))
	},
}

func init() {
	for _, c := range []*cobra.Command{createCmd, updateCmd} {
		c.Flags().StringVar(&flagTitle, "title", "", "post title")
		c.Flags().StringVar(&flagContent, "content", "", "post content")
		c.Flags().StringVar(&flagStatus, "status", "", "post status (publish, draft, pending)")
	}
}

// entityFromFlags builds the request body from whichever flags were set.
func entityFromFlags(cmd *cobra.Command) resource.Entity {
	data := resource.Entity{}
	if cmd.Flags().Changed("title") {
		data["title"] = flagTitle
	}
	if cmd.Flags().Changed("content") {
		data["content"] = flagContent
	}
	if cmd.Flags().Changed("status") {
		data["status"] = flagStatus
	}
	return data
}
