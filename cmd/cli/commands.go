package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

// counterFlags are the raw match counters accepted by add-match and update-match.
var counterFlags = []string{
	"runs", "wickets", "catches", "missed_catches", "missed_catches_batsman",
	"missed_catches_bowler", "overthrows", "misfields", "balls_faced", "fours",
	"sixes", "balls_bowled", "dot_balls", "runs_conceded",
}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(addMatchCmd)
	rootCmd.AddCommand(updateMatchCmd)
	rootCmd.AddCommand(deleteMatchCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(shareTeamCmd)
	rootCmd.AddCommand(recalculateCmd)
	rootCmd.AddCommand(metricsCmd)

	loginCmd.Flags().String("email", "", "Coach email")
	loginCmd.Flags().String("password", "", "Coach password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")

	addPlayerCmd.Flags().String("role", "AllRounder", "Batsman, Bowler or AllRounder")

	for _, cmd := range []*cobra.Command{addMatchCmd, updateMatchCmd} {
		for _, name := range counterFlags {
			cmd.Flags().Int(name, 0, "")
		}
	}

	shareTeamCmd.Flags().Bool("dry-run", false, "Log the Slack message instead of posting it")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/health", nil)
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and print a session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		return performRequest(http.MethodPost, "/login", map[string]string{"email": email, "password": password})
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the coach's players with their totals",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/players", nil)
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player <name>",
	Short: "Add a player to the squad",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		return performRequest(http.MethodPost, "/api/players", map[string]string{"name": args[0], "role": role})
	},
}

var addMatchCmd = &cobra.Command{
	Use:   "add-match <player> <matchID>",
	Short: "Record a player's statistics for a match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := matchBody(cmd)
		if err != nil {
			return err
		}
		body["player_name"] = args[0]
		body["match_id"] = args[1]
		return performRequest(http.MethodPost, "/api/matches", body)
	},
}

var updateMatchCmd = &cobra.Command{
	Use:   "update-match <player> <matchID>",
	Short: "Replace a player's statistics for a match",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := matchBody(cmd)
		if err != nil {
			return err
		}
		return performRequest(http.MethodPut, matchEndpoint(args[0], args[1]), body)
	},
}

var deleteMatchCmd = &cobra.Command{
	Use:   "delete-match <player> <matchID>",
	Short: "Delete a match and recalculate the player's totals",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodDelete, matchEndpoint(args[0], args[1]), nil)
	},
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Show the best eleven by efficiency",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/api/team-results", nil)
	},
}

var shareTeamCmd = &cobra.Command{
	Use:   "share-team",
	Short: "Post the best eleven to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/api/team-results/share"
		if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
			endpoint += "?dry_run=true"
		}
		return performRequest(http.MethodPost, endpoint, nil)
	},
}

var recalculateCmd = &cobra.Command{
	Use:   "recalculate <player>",
	Short: "Rebuild a player's totals from the stored match history",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodPost, "/api/players/"+url.PathEscape(args[0])+"/recalculate", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performRequest(http.MethodGet, "/metrics", nil)
	},
}

func matchEndpoint(player, matchID string) string {
	return "/api/matches/" + url.PathEscape(player) + "/" + url.PathEscape(matchID)
}

// matchBody collects the counter flags into a request body.
func matchBody(cmd *cobra.Command) (map[string]any, error) {
	body := make(map[string]any, len(counterFlags)+2)
	for _, name := range counterFlags {
		v, err := cmd.Flags().GetInt(name)
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, fmt.Errorf("--%s must not be negative", name)
		}
		body[name] = v
	}
	return body, nil
}

func performRequest(method, endpoint string, body any) error {
	target := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, target)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(respBody))

	return nil
}
