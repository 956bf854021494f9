package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Stats, leaderboard and boost inventory commands",
	}

	cmd.AddCommand(newStatsGetCmd())
	cmd.AddCommand(newStatsTopCmd())
	cmd.AddCommand(newStatsBoostsCmd())
	cmd.AddCommand(newStatsGrantCmd())

	return cmd
}

func newStatsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [player]",
		Short: "Show a player's lifetime stats (defaults to you)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player := cfg.PlayerID
			if len(args) == 1 {
				player = args[0]
			}
			if player == "" {
				return fmt.Errorf("player ID required: pass one or set --player")
			}

			var result PlayerStats
			if err := client.Get(fmt.Sprintf("/api/v1/players/%s/stats", player), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newStatsTopCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Leaderboard
			if err := client.Get(fmt.Sprintf("/api/v1/leaderboard?limit=%d", limit), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Number of entries to show")

	return cmd
}

func newStatsBoostsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "boosts <kind>",
		Short: "Show your remaining uses of a boost (skip, rebound, hint)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			var result Entitlement
			path := fmt.Sprintf("/api/v1/players/%s/entitlements/%s", cfg.PlayerID, args[0])
			if err := client.Get(path, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newStatsGrantCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "grant <player> <kind>",
		Short: "Grant boost uses to a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"kind":  args[1],
				"count": count,
			}

			var result Entitlement
			path := fmt.Sprintf("/api/v1/players/%s/entitlements", args[0])
			if err := client.Post(path, req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "Number of uses to grant")

	return cmd
}
