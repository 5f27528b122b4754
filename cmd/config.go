package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/auth"
	cfgpkg "github.com/Brandonschool349/Fabrica-Alfa-Automatizacion/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or set fabrica configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No config loaded")
			return nil
		}
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "listen_addr: %s\n", cfg.ListenAddr)
		fmt.Fprintf(w, "export_dir: %s\n", cfg.ExportDir)
		fmt.Fprintf(w, "max_upload_mb: %d\n", cfg.MaxUploadMB)
		fmt.Fprintf(w, "sample_rows: %d\n", cfg.SampleRows)
		fmt.Fprintf(w, "default_alpha: %g\n", cfg.DefaultAlpha)
		fmt.Fprintf(w, "log_level: %s\n", cfg.LogLevel)
		if cfg.LogFile != "" {
			fmt.Fprintf(w, "log_file: %s\n", cfg.LogFile)
		}
		fmt.Fprintf(w, "jwt_secret: %s\n", mask(cfg.JWTSecret))
		fmt.Fprintf(w, "token_ttl_min: %d\n", cfg.TokenTTLMin)
		fmt.Fprintf(w, "session_ttl_min: %d\n", cfg.SessionTTLMin)
		fmt.Fprintf(w, "cors_origins: %v\n", cfg.CORSOrigins)
		fmt.Fprintf(w, "users: %d\n", len(cfg.Users))
		for _, u := range cfg.Users {
			fmt.Fprintf(w, "  - %s (%s)\n", u.Username, u.Role)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a config value and save to disk",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		if err := c.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Saved config")
		return nil
	},
}

var configAddUserCmd = &cobra.Command{
	Use:   "add-user <name> <password> <role>",
	Short: "Add or replace a login (roles: manager, supervisor, operator)",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}
		role, err := auth.ParseRole(args[2])
		if err != nil {
			return err
		}
		hash, err := auth.HashPassword(args[1])
		if err != nil {
			return err
		}
		c.PutUser(cfgpkg.User{Username: args[0], PasswordHash: hash, Role: string(role)})
		if err := cfgpkg.Save(c, cfgFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved user '%s' (%s)\n", args[0], role)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configAddUserCmd)
}

func mask(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 6 {
		return "******"
	}
	return s[:3] + "****" + s[len(s)-3:]
}
