package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(ensureSlotsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List this week's matches with their rosters",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		endpoint := "/api/matches/week"
		if date != "" {
			endpoint += "?date=" + date
		}
		return performGetRequest(endpoint)
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/users")
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the player leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, _ := cmd.Flags().GetString("period")
		endpoint := "/api/leaderboard"
		if period != "" {
			endpoint += "?period=" + period
		}
		return performGetRequest(endpoint)
	},
}

var ensureSlotsCmd = &cobra.Command{
	Use:   "ensure-slots",
	Short: "Generate the weekly match slots",
	RunE: func(cmd *cobra.Command, args []string) error {
		date, _ := cmd.Flags().GetString("date")
		endpoint := "/api/slots/ensure"
		if date != "" {
			endpoint += "?date=" + date
		}
		return performPostRequest(endpoint)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func init() {
	matchesCmd.Flags().String("date", "", "Any date inside the requested week (2006-01-02)")
	leaderboardCmd.Flags().String("period", "", "Leaderboard period: week or month")
	ensureSlotsCmd.Flags().String("date", "", "First day of the window to generate (2006-01-02)")
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func performPostRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Post(url, "application/json", strings.NewReader("{}"))
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
