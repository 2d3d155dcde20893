package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"eduPlatformReco/pkg/utils"

	"github.com/spf13/cobra"
)

var (
	flagTokenRole    string
	flagTokenSubject string
	flagTokenTTL     time.Duration
	flagTokenSecret  string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a JWT for the admin API",
	Long: `Signs a token with JWT_SECRET (or --secret). Use it as
"Authorization: Bearer <token>" on POST /api/v1/admin/datasets/reload.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&flagTokenRole, "role", "admin", "Role claim")
	tokenCmd.Flags().StringVar(&flagTokenSubject, "subject", "cli", "Subject (user id) claim")
	tokenCmd.Flags().DurationVar(&flagTokenTTL, "ttl", time.Hour, "Token lifetime")
	tokenCmd.Flags().StringVar(&flagTokenSecret, "secret", "", "Signing secret (defaults to $JWT_SECRET)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	secret := flagTokenSecret
	if secret == "" {
		secret = os.Getenv("JWT_SECRET")
	}
	if secret == "" {
		return errors.New("no signing secret: set JWT_SECRET or pass --secret")
	}
	if flagTokenTTL <= 0 {
		return errors.New("--ttl must be positive")
	}

	token, err := utils.GenerateJWT(flagTokenSubject, strings.ToUpper(flagTokenRole), secret, flagTokenTTL)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
