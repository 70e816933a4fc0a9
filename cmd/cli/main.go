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
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "caixa-cli",
		Short: "Caixa ledger CLI tool",
		Long:  `A command line interface for interacting with the caixa ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the caixa API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Account operations",
	}

	accountsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			listAccounts()
		},
	})

	rootCmd.AddCommand(accountsCmd)

	// Balances
	rootCmd.AddCommand(&cobra.Command{
		Use:   "balances",
		Short: "Show balance summaries for every account",
		Run: func(cmd *cobra.Command, args []string) {
			showBalances()
		},
	})

	// Transfer
	var (
		from   string
		to     string
		amount string
		desc   string
	)

	transferCmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move funds between two accounts",
		Run: func(cmd *cobra.Command, args []string) {
			executeTransfer(from, to, amount, desc)
		},
	}

	transferCmd.Flags().StringVar(&from, "from", "", "Origin account ID")
	transferCmd.Flags().StringVar(&to, "to", "", "Destination account ID")
	transferCmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	transferCmd.Flags().StringVar(&desc, "description", "", "Transfer description")
	transferCmd.MarkFlagRequired("from")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("amount")

	rootCmd.AddCommand(transferCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func listAccounts() {
	body := get("/api/v1/accounts")

	var accounts []map[string]any
	if err := json.Unmarshal(body, &accounts); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, a := range accounts {
		fmt.Printf("%s  %s (initial %s)\n", a["id"], a["name"], a["initial_balance"])
	}
}

func showBalances() {
	body := get("/api/v1/balances")

	var summaries []map[string]any
	if err := json.Unmarshal(body, &summaries); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	for _, s := range summaries {
		fmt.Printf("%s  current=%s settled=%s (initial %s)\n",
			s["name"], s["current_balance"], s["settled_balance"], s["initial_balance"])
	}
}

func executeTransfer(from, to, amount, desc string) {
	payload, _ := json.Marshal(map[string]any{
		"origin_account_id":      from,
		"destination_account_id": to,
		"amount":                 amount,
		"due_date":               time.Now().UTC(),
		"description":            desc,
	})

	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+"/api/v1/transfers", "application/json", bytes.NewReader(payload))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusCreated {
		fmt.Printf("Transfer FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Transfer committed\nID: %s\nState: %s\n", result["transfer_id"], result["state"])
}

func get(path string) []byte {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	return body
}
