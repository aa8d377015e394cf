package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/allthebeans/config"
	"github.com/shashiranjanraj/allthebeans/pkg/auth"
)

var (
	tokenRoleFlag string
	tokenTTLFlag  time.Duration
)

// allthebeans token:issue — mint a token for local testing without going
// through the login flow.
var tokenIssueCmd = &cobra.Command{
	Use:   "token:issue",
	Short: "Issue a signed JWT for local testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Load(); err != nil {
			return err
		}
		if config.IsProduction() {
			return fmt.Errorf("token:issue is disabled in production")
		}

		token, err := auth.GenerateTokenFor(0, tokenRoleFlag, tokenTTLFlag)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	tokenIssueCmd.Flags().StringVarP(&tokenRoleFlag, "role", "r", "admin", "Role claim (customer|admin)")
	tokenIssueCmd.Flags().DurationVarP(&tokenTTLFlag, "ttl", "t", 24*time.Hour, "Token lifetime")
}
