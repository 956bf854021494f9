package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Turn action commands",
	}

	cmd.AddCommand(newPlayWordCmd())
	cmd.AddCommand(newPlayForfeitCmd())
	cmd.AddCommand(newPlayBoostCmd("skip", "Skip your turn without elimination"))
	cmd.AddCommand(newPlayBoostCmd("rebound", "Bounce the live challenge to the next player"))
	cmd.AddCommand(newPlayHintCmd())

	return cmd
}

func newPlayWordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "word <room> <word>",
		Short: "Submit a word for your turn",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			req := map[string]string{
				"player_id": cfg.PlayerID,
				"word":      args[1],
			}

			var result WordAccepted
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/words", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPlayForfeitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forfeit <room>",
		Short: "Give up your turn and leave the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			req := map[string]string{"player_id": cfg.PlayerID}

			var result Snapshot
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/forfeit", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPlayBoostCmd(kind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   fmt.Sprintf("%s <room>", kind),
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			req := map[string]string{"player_id": cfg.PlayerID}

			var result Turn
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/%s", args[0], kind), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newPlayHintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hint <room>",
		Short: "Spend a hint for candidate words",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			req := map[string]string{"player_id": cfg.PlayerID}

			var result Hint
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/hint", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
