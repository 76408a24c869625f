package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/douessay/internal/license"
)

// licenseCmd represents the license command
var licenseCmd = &cobra.Command{
	Use:   "license",
	Short: "Manage license keys",
	Long: `Register license keys and inspect their daily usage.

Tiers: free (5/day), student (50/day), teacher (500/day), enterprise (unlimited).
The memory driver only lives as long as the process; use license.driver=sqlite
to persist keys between runs.`,
}

var licenseAddCmd = &cobra.Command{
	Use:   "add <key> <tier>",
	Short: "Register a license key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		tier, err := license.ParseTier(args[1])
		if err != nil {
			return err
		}
		return withRegistry(func(ctx context.Context, r license.Registry) error {
			if err := r.Add(ctx, args[0], tier); err != nil {
				return err
			}
			fmt.Printf("✓ Registered %s (%s)\n", args[0], tier)
			return nil
		})
	},
}

var licenseShowCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show a license key's tier and usage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withRegistry(func(ctx context.Context, r license.Registry) error {
			v := license.Check(ctx, r, args[0])
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		})
	},
}

func init() {
	rootCmd.AddCommand(licenseCmd)
	licenseCmd.AddCommand(licenseAddCmd)
	licenseCmd.AddCommand(licenseShowCmd)
}

func withRegistry(fn func(context.Context, license.Registry) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	r, err := license.Open(ctx, cfg.License)
	if err != nil {
		return fmt.Errorf("open license store: %w", err)
	}
	if c, ok := r.(io.Closer); ok {
		defer c.Close()
	}
	return fn(ctx, r)
}
