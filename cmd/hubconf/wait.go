package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

// waitCmd represents the wait command
var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the hub to be ready",
	Long: `Wait for the hub to be ready by polling its health endpoint.

This command will repeatedly check the endpoint until it responds
successfully or the maximum number of retries is reached.

Example:
  hubconf wait
  hubconf wait --url http://hub:8000/hub/health --retries 60`,
	Run: func(cmd *cobra.Command, args []string) {
		url, _ := cmd.Flags().GetString("url")
		retries, _ := cmd.Flags().GetInt("retries")

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := waitForHub(ctx, os.Stdout, url, retries, time.Second); err != nil {
			fmt.Fprintf(os.Stderr, "Hub did not become ready: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Hub is ready")
	},
}

func init() {
	rootCmd.AddCommand(waitCmd)
	waitCmd.Flags().StringP("url", "u", "http://localhost:8000/hub/health", "Health endpoint to check")
	waitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForHub(ctx context.Context, w io.Writer, url string, retries int, interval time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}

	fmt.Fprintln(w, "Waiting for the hub to be ready...")

	for i := 0; i < retries; i++ {
		if ready(ctx, client, url) {
			fmt.Fprintln(w)
			return nil
		}
		log.WithField("attempt", i+1).Debug("Hub not ready")

		fmt.Fprint(w, ".")
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return ctx.Err()
		case <-time.After(interval):
		}
	}

	fmt.Fprintln(w)
	return fmt.Errorf("hub is not ready after %d attempts", retries)
}

func ready(ctx context.Context, client *http.Client, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
