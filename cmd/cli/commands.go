package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/elliotchance/pie/v2"
	"github.com/mauv0809/court-queue/internal/roster"
	"github.com/spf13/cobra"
)

var (
	joinRank       string
	releaseCount   int
	commitCourtID  int
	historyGames   int
	historyShuttle float64
	historyRank    string
	priceMode      string
	courtFee       float64
	shuttleFee     float64
	combinedFee    float64
)

func init() {
	rootCmd.AddCommand(healthCmd, metricsCmd, stateCmd, ranksCmd)
	rootCmd.AddCommand(joinCmd, removeCmd, resortCmd, selectCmd)
	rootCmd.AddCommand(courtCmd, groupCmd, historyCmd, settingsCmd)

	joinCmd.Flags().StringVar(&joinRank, "rank", "", rankUsage())

	releaseCmd.Flags().IntVar(&releaseCount, "count", 4, "Release 2 checked players or all 4")
	courtCmd.AddCommand(courtAddCmd, courtRemoveCmd, assignCmd, releaseCmd, checkCmd, shuttleCmd, renameCmd, undoCmd)

	groupCommitCmd.Flags().IntVar(&commitCourtID, "court", 0, "Court to commit to (default: the bound court)")
	groupCmd.AddCommand(groupCreateCmd, groupFillCmd, groupBindCmd, groupCommitCmd, groupRemoveCmd)

	historyEditCmd.Flags().IntVar(&historyGames, "games", 0, "Games played")
	historyEditCmd.Flags().Float64Var(&historyShuttle, "shuttlecocks", 0, "Shuttlecock count")
	historyEditCmd.Flags().StringVar(&historyRank, "rank", "", "Rank")
	historyCmd.AddCommand(historyListCmd, historyExportCmd, historyGamesCmd, historyEditCmd, historyRemoveCmd, historyClearCmd, historyPriceCmd)

	settingsSetCmd.Flags().StringVar(&priceMode, "mode", "regular", "Price mode: regular or american")
	settingsSetCmd.Flags().Float64Var(&courtFee, "court-fee", 0, "Regular mode court fee per player")
	settingsSetCmd.Flags().Float64Var(&shuttleFee, "shuttlecock-fee", 0, "Regular mode fee per shuttlecock")
	settingsSetCmd.Flags().Float64Var(&combinedFee, "combined-fee", 0, "American mode total to split")
	settingsCmd.AddCommand(settingsGetCmd, settingsSetCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/health", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/metrics", nil)
	},
}

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Show the queue, courts and staging groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/state", nil)
	},
}

// rankUsage lists the accepted rank labels for flag help.
func rankUsage() string {
	labels := pie.Map(roster.Ranks(), func(r roster.Rank) string { return string(r) })
	return "Player rank, one of " + strings.Join(labels, " ") + " (default " + string(roster.DefaultRank) + ")"
}

var ranksCmd = &cobra.Command{
	Use:   "ranks",
	Short: "List the rank labels players can join with",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/ranks", nil)
	},
}

var joinCmd = &cobra.Command{
	Use:   "join <name>",
	Short: "Add a player to the waiting queue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/queue", map[string]string{"name": args[0], "rank": joinRank})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a waiting player from the session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodDelete, "/queue/"+url.PathEscape(args[0]), nil)
	},
}

var resortCmd = &cobra.Command{
	Use:   "resort",
	Short: "Reapply the fairness order to the queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/queue/resort", nil)
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <name>",
	Short: "Toggle a waiting player's selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/selection/"+url.PathEscape(args[0]), nil)
	},
}

var courtCmd = &cobra.Command{
	Use:   "court",
	Short: "Manage courts",
}

var courtAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an empty court",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/courts", nil)
	},
}

var courtRemoveCmd = &cobra.Command{
	Use:   "remove <court>",
	Short: "Remove an empty court",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := atoi("court", args[0]); err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodDelete, "/courts/"+args[0], nil)
	},
}

var assignCmd = &cobra.Command{
	Use:   "assign <court> [names...]",
	Short: "Send players to a court (default: selection, then front of queue)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := atoi("court", args[0]); err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/courts/"+args[0]+"/assign", map[string][]string{"names": args[1:]})
	},
}

var releaseCmd = &cobra.Command{
	Use:   "release <court>",
	Short: "Finish a game for the checked pair or the whole court",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := atoi("court", args[0]); err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/courts/"+args[0]+"/release", map[string]int{"count": releaseCount})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <court> <slot>",
	Short: "Toggle the checked flag of a court slot",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := atoi("court", args[0]); err != nil {
			return err
		}
		if _, err := atoi("slot", args[1]); err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/courts/"+args[0]+"/checked/"+args[1], nil)
	},
}

var shuttleCmd = &cobra.Command{
	Use:       "shuttle <court> <increment|decrement>",
	Short:     "Adjust shuttlecock usage for everyone on a court",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"increment", "decrement"},
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := atoi("court", args[0]); err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/courts/"+args[0]+"/shuttlecocks", map[string]string{"direction": args[1]})
	},
}

var renameCmd = &cobra.Command{
	Use:   "rename <court> <new-id>",
	Short: "Change a court's number",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := atoi("court", args[0]); err != nil {
			return err
		}
		newID, err := atoi("new-id", args[1])
		if err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/courts/"+args[0]+"/rename", map[string]int{"id": newID})
	},
}

var undoCmd = &cobra.Command{
	Use:   "undo <court> <name>",
	Short: "Send a player on a court back to the front of the queue",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := atoi("court", args[0]); err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/courts/"+args[0]+"/undo/"+url.PathEscape(args[1]), nil)
	},
}

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage staging groups",
}

var groupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add an empty staging group",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/groups", nil)
	},
}

var groupFillCmd = &cobra.Command{
	Use:   "fill <group>",
	Short: "Move the 4 selected players into a group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := atoi("group", args[0]); err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/groups/"+args[0]+"/fill", nil)
	},
}

var groupBindCmd = &cobra.Command{
	Use:   "bind <group> <court>",
	Short: "Choose the court a group will go to",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := atoi("group", args[0]); err != nil {
			return err
		}
		courtID, err := atoi("court", args[1])
		if err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/groups/"+args[0]+"/court", map[string]int{"courtId": courtID})
	},
}

var groupCommitCmd = &cobra.Command{
	Use:   "commit <group>",
	Short: "Send a group to its court",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := atoi("group", args[0]); err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/groups/"+args[0]+"/commit", map[string]int{"courtId": commitCourtID})
	},
}

var groupRemoveCmd = &cobra.Command{
	Use:   "remove <group>",
	Short: "Discard a staging group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := atoi("group", args[0]); err != nil {
			return err
		}
		return performRequest(cmd.OutOrStdout(), http.MethodDelete, "/groups/"+args[0], nil)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect and edit the player history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the player history",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/history", nil)
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the versioned history payload",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/history/export", nil)
	},
}

var historyGamesCmd = &cobra.Command{
	Use:   "games <name>",
	Short: "List the games a player finished",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/history/"+url.PathEscape(args[0])+"/games", nil)
	},
}

var historyEditCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Overwrite a player's history record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]any{
			"gamesPlayed":  historyGames,
			"featherCount": historyShuttle,
			"rank":         historyRank,
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPut, "/history/"+url.PathEscape(args[0]), payload)
	},
}

var historyRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Delete a player's history record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodDelete, "/history/"+url.PathEscape(args[0]), nil)
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodDelete, "/history", nil)
	},
}

var historyPriceCmd = &cobra.Command{
	Use:   "price",
	Short: "Price the history with the saved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodPost, "/history/pricing", nil)
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Read or change the pricing settings",
}

var settingsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show the pricing settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(cmd.OutOrStdout(), http.MethodGet, "/settings", nil)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Save the pricing settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		payload := map[string]any{
			"priceMode": priceMode,
			"regularMode": map[string]float64{
				"courtFee":       courtFee,
				"shuttlecockFee": shuttleFee,
			},
			"americanMode": map[string]float64{
				"combinedFee": combinedFee,
			},
		}
		return performRequest(cmd.OutOrStdout(), http.MethodPut, "/settings", payload)
	},
}
