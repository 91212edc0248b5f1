package main

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bassista/go_restate/internal/resource"
)

var flagArchiveParams []string

var archiveCmd = &cobra.Command{
	Use:   "archive <key>",
	Short: "Fetch an archive of entities and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		params, err := parseParams(flagArchiveParams)
		if err != nil {
			return err
		}
		handler.RegisterArchive(key, resource.StaticQuery(params))

		if _, err := handler.FetchArchive(key)(cmd.Context(), st, st); err != nil {
			return fmt.Errorf("fetch archive %q: %w", key, err)
		}

		return printJSON(resource.GetArchive(resourceState(), key))
	},
}

func init() {
	archiveCmd.Flags().StringArrayVar(&flagArchiveParams, "param", nil, "query parameter as key=value (repeatable)")
}

// parseParams turns repeated key=value flags into url.Values.
func parseParams(raw []string) (url.Values, error) {
	params := url.Values{}
	for _, kv := range raw {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid parameter %q, want key=value", kv)
		}
		params.Add(k, v)
	}
	return params, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
