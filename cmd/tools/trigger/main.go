package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// trigger starts a reload job on a running API server and waits for it.
func main() {
	apiURL := strings.TrimRight(strings.TrimSpace(os.Getenv("API_URL")), "/")
	if apiURL == "" {
		apiURL = "http://localhost:8081"
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Post(apiURL+"/api/v1/admin/reload", "application/json", nil)
	if err != nil {
		fmt.Printf("Error sending request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	fmt.Printf("Response Status: %s\n", resp.Status)
	var started struct {
		JobID string `json:"job_id"`
		Poll  string `json:"poll"`
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&started); err != nil {
		fmt.Printf("Error decoding response: %v\n", err)
		os.Exit(1)
	}
	if resp.StatusCode != http.StatusAccepted {
		fmt.Printf("Reload not started: %s (job %s)\n", started.Error, started.JobID)
		os.Exit(1)
	}

	for {
		time.Sleep(time.Second)
		status, err := poll(client, apiURL+started.Poll)
		if err != nil {
			fmt.Printf("Error polling job %s: %v\n", started.JobID, err)
			os.Exit(1)
		}
		switch status["status"] {
		case "running":
			continue
		case "completed":
			fmt.Printf("Job %s completed in %v: %v\n", started.JobID, status["duration"], status["result"])
			return
		default:
			fmt.Printf("Job %s %v: %v\n", started.JobID, status["status"], status["error"])
			os.Exit(1)
		}
	}
}

func poll(client *http.Client, url string) (map[string]any, error) {
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}
