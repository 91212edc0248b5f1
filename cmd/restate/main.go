// Package main provides the restate CLI, a thin front end over the
// resource handler and store for poking at a posts API from the shell.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/bassista/go_restate/internal/config"
	"github.com/bassista/go_restate/internal/logger"
	"github.com/bassista/go_restate/internal/resource"
	"github.com/bassista/go_restate/internal/store"
)

// Global flag values.
var (
	flagBaseURL  string
	flagToken    string
	flagResource string
)

// Set up by initHandler so all subcommands can use them.
var (
	cfg        *config.Config
	handler    *resource.Handler
	httpClient *http.Client
	st         *store.Store
)

const storeKey = "posts"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "restate",
	Short: "restate is a REST resource client with a local state store",
	Long: `restate talks to a posts-style REST API through a resource handler,
folding every response into a local state store. Each subcommand runs one
handler action and prints the relevant slice of the resulting state.`,
	SilenceUsage:      true,
	PersistentPreRunE: initHandler,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagBaseURL, "base-url", "", "API base URL (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagToken, "token", "", "auth token sent as a query parameter")
	rootCmd.PersistentFlags().StringVar(&flagResource, "resource", "", "resource type (default from config)")

	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("restate v0.1.0")
	},
}

// initHandler loads config and builds the handler and store.
func initHandler(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	var err error
	cfg, err = config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseURL := cfg.Client.BaseURL
	if flagBaseURL != "" {
		baseURL = flagBaseURL
	}
	token := cfg.Client.AuthToken
	if flagToken != "" {
		token = flagToken
	}
	res := cfg.Client.Resource
	if flagResource != "" {
		res = flagResource
	}

	// Zero config timeout means no client-side deadline.
	httpClient = &http.Client{Timeout: cfg.Client.RequestTimeout}

	rethrow := cfg.Client.Rethrow
	handler, err = resource.NewHandler(resource.HandlerOptions{
		BaseURL:   baseURL,
		Resource:  res,
		AuthToken: token,
		AuthParam: cfg.Client.AuthParam,
		Client:    httpClient,
		Rethrow:   &rethrow,
	})
	if err != nil {
		return fmt.Errorf("init handler: %w", err)
	}

	st = store.New()
	st.Mount(storeKey, handler.Reducer())

	logger.WithResource("cli", res).Debugf("handler ready for %s", baseURL)
	return nil
}

// resourceState returns the handler's slice of the store state.
func resourceState() resource.State {
	sub, _ := st.Sub(storeKey).(resource.State)
	return sub
}
