package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkhalil/rent-finder/internal/api"
)

func newLoginCmd() *cobra.Command {
	var (
		server   string
		password string
	)

	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and store a session token",
		Long:  "Authenticates against the rental service and stores the issued token in the CLI config.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd, args[0], password, server)
		},
	}

	cmd.Flags().StringVar(&server, "server", "", "server URL (default: from config or http://localhost:5000)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")

	return cmd
}

func runLogin(cmd *cobra.Command, email, password, serverFlag string) error {
	serverURL := serverFlag
	if serverURL == "" {
		serverURL = getServerURL()
	}

	if password == "" {
		fmt.Print("Password: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		password = strings.TrimSpace(line)
	}
	if password == "" {
		return fmt.Errorf("no password provided")
	}

	resp, err := api.New(serverURL, "").Login(cmd.Context(), email, password)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}
	if resp.Token == "" {
		return fmt.Errorf("server did not issue a token: %s", resp.Message)
	}

	// Load existing config to preserve other fields
	cfg, err := loadConfig()
	if err != nil {
		cfg = CLIConfig{}
	}

	cfg.Token = resp.Token
	if serverFlag != "" {
		cfg.ServerURL = serverFlag
	}

	if err := saveConfig(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("✓ Logged in.")
	return nil
}
