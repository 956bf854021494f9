package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room lifecycle commands",
	}

	cmd.AddCommand(newRoomOpenCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomBeginCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomStopCmd())

	return cmd
}

func requirePlayer() error {
	if cfg.PlayerID == "" {
		return fmt.Errorf("player ID required: set --player or KURIMU_PLAYER")
	}
	return nil
}

func newRoomOpenCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "open <room>",
		Short: "Open a lobby in a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			req := map[string]string{
				"player_id":    cfg.PlayerID,
				"display_name": cfg.DisplayName,
			}
			if mode != "" {
				req["mode"] = mode
			}

			var result Snapshot
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/lobby", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "", "Game mode: progressive, randomized (default: server default)")

	return cmd
}

func newRoomJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <room>",
		Short: "Join an open lobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requirePlayer(); err != nil {
				return err
			}

			req := map[string]string{
				"player_id":    cfg.PlayerID,
				"display_name": cfg.DisplayName,
			}

			var result Snapshot
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomBeginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "begin <room>",
		Short: "Start the game from the open lobby",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Turn
			if err := client.Post(fmt.Sprintf("/api/v1/rooms/%s/begin", args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <room>",
		Short: "Show the room's current state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Snapshot
			if err := client.Get(fmt.Sprintf("/api/v1/rooms/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newRoomStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop <room>",
		Short: "Stop the lobby or running game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/rooms/%s/game", args[0])); err != nil {
				return err
			}

			fmt.Println("Stopped")
			return nil
		},
	}
}
