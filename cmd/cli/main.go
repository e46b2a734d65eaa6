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
		Use:   "settleup-cli",
		Short: "SettleUp CLI tool",
		Long:  `A command line interface for interacting with the SettleUp API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the SettleUp API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Settlement commands
	settlementCmd := &cobra.Command{
		Use:   "settlement",
		Short: "Settlement operations",
	}

	settlementCmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show a settlement",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/settlements/" + args[0])
		},
	})

	settlementCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List settlements",
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/settlements/")
		},
	})

	settlementCmd.AddCommand(&cobra.Command{
		Use:   "complete <id>",
		Short: "Mark a settlement completed",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/settlements/"+args[0]+"/complete", nil)
		},
	})

	rootCmd.AddCommand(settlementCmd)

	// Calculation commands
	calcCmd := &cobra.Command{
		Use:   "calc",
		Short: "Calculation operations",
	}

	calcCmd.AddCommand(&cobra.Command{
		Use:   "run <settlement-id>",
		Short: "Run a fresh calculation",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			post("/api/v1/settlements/"+args[0]+"/calculate", nil)
		},
	})

	calcCmd.AddCommand(&cobra.Command{
		Use:   "result <settlement-id>",
		Short: "Show the latest calculation result",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/settlements/" + args[0] + "/result")
		},
	})

	calcCmd.AddCommand(&cobra.Command{
		Use:   "overview <settlement-id>",
		Short: "Show the game overview",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			get("/api/v1/settlements/" + args[0] + "/game-overview")
		},
	})

	rootCmd.AddCommand(calcCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func get(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func post(path string, body []byte) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println(formatJSON(body))
}

// formatJSON pretty-prints a JSON payload, falling back to the raw
// bytes when the payload is not valid JSON.
func formatJSON(data []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return string(data)
	}
	return out.String()
}
