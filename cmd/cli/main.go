package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	token   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cashflow-cli",
		Short: "Cashflow CLI tool",
		Long:  `A command line interface for interacting with the Cashflow API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the Cashflow API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVar(&token, "token", os.Getenv("CASHFLOW_TOKEN"), "Bearer token (defaults to CASHFLOW_TOKEN)")

	loginCmd := &cobra.Command{
		Use:   "login <username> <password>",
		Short: "Obtain an API token",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			login(args[0], args[1])
		},
	}
	rootCmd.AddCommand(loginCmd)

	entryCmd := &cobra.Command{
		Use:   "entry",
		Short: "Ledger entry operations",
	}

	var (
		entryDate        string
		entryKind        string
		entryAmount      string
		entryDescription string
	)
	entryCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Record a credit or debit entry",
		Run: func(cmd *cobra.Command, args []string) {
			createEntry(entryDate, entryKind, entryAmount, entryDescription)
		},
	}
	entryCreateCmd.Flags().StringVar(&entryDate, "date", time.Now().Format("2006-01-02"), "Entry date (YYYY-MM-DD)")
	entryCreateCmd.Flags().StringVar(&entryKind, "kind", "credit", "Entry kind: credit or debit")
	entryCreateCmd.Flags().StringVar(&entryAmount, "amount", "", "Entry amount")
	entryCreateCmd.Flags().StringVar(&entryDescription, "description", "", "Entry description")
	entryCmd.AddCommand(entryCreateCmd)
	rootCmd.AddCommand(entryCmd)

	consolidationCmd := &cobra.Command{
		Use:   "consolidation",
		Short: "Consolidation queries",
	}

	dailyCmd := &cobra.Command{
		Use:   "daily <date>",
		Short: "Show the consolidation for a single date",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/consolidations/daily/" + args[0])
		},
	}
	consolidationCmd.AddCommand(dailyCmd)

	var start, end string
	rangeCmd := &cobra.Command{
		Use:   "range",
		Short: "Show the dense daily series for a period",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON(fmt.Sprintf("/api/v1/consolidations/range?start=%s&end=%s", start, end))
		},
	}
	rangeCmd.Flags().StringVar(&start, "start", "", "Period start (YYYY-MM-DD)")
	rangeCmd.Flags().StringVar(&end, "end", "", "Period end (YYYY-MM-DD)")
	consolidationCmd.AddCommand(rangeCmd)

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show period statistics",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON(fmt.Sprintf("/api/v1/consolidations/range/statistics?start=%s&end=%s", start, end))
		},
	}
	statsCmd.Flags().StringVar(&start, "start", "", "Period start (YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&end, "end", "", "Period end (YYYY-MM-DD)")
	consolidationCmd.AddCommand(statsCmd)

	rootCmd.AddCommand(consolidationCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func login(username, password string) {
	body, _ := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})

	resp, err := doRequest(http.MethodPost, "/api/v1/auth/login", body)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(result.Token)
}

func createEntry(date, kind, amount, description string) {
	body, _ := json.Marshal(map[string]string{
		"date":        date,
		"kind":        kind,
		"amount":      amount,
		"description": description,
	})

	resp, err := doRequest(http.MethodPost, "/api/v1/entries", body)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}

	printJSON(resp)
}

func getJSON(path string) {
	resp, err := doRequest(http.MethodGet, path, nil)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}

	printJSON(resp)
}

func doRequest(method, path string, body []byte) ([]byte, error) {
	client := &http.Client{Timeout: timeout}

	req, err := http.NewRequest(method, baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("request failed (status %d): %s", resp.StatusCode, string(data))
	}

	return data, nil
}

func printJSON(data []byte) {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		fmt.Println(string(data))
		return
	}
	fmt.Println(out.String())
}
