// healthcheck.go implements the container HEALTHCHECK command that
// verifies the HTTP server is responding without external tools.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// cmdHealthcheck performs a lightweight HTTP health check against the
// local server's /api/info endpoint.
//
// Usage:  pledgebook healthcheck [port]   (default 8080)
// Exit 0 = healthy, Exit 1 = unhealthy.
func cmdHealthcheck(args []string) {
	port := "8080"
	if len(args) > 0 {
		port = args[0]
	}
	if err := probe("http://localhost:" + port + "/api/info"); err != nil {
		fmt.Fprintf(os.Stderr, "healthcheck failed: %v\n", err)
		os.Exit(1)
	}
	os.Exit(0)
}

func probe(url string) error {
	client := &http.Client{Timeout: 3 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return nil
}
