package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/yourusername/download-it/api/handlers"
	"github.com/yourusername/download-it/internal/domain"
)

const (
	serverBinary       = "download-it-server"
	serverStartTimeout = 10 * time.Second
	serverPollInterval = 200 * time.Millisecond
)

// isServerRunning checks if the server is responding to health checks
func isServerRunning() bool {
	client := &http.Client{Timeout: 1 * time.Second}
	resp, err := client.Get(serverURL + "/health")
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// findServerBinary looks next to the CLI binary, then on PATH, then in the usual install dirs
func findServerBinary() (string, error) {
	if execPath, err := os.Executable(); err == nil {
		serverPath := filepath.Join(filepath.Dir(execPath), serverBinary)
		if _, err := os.Stat(serverPath); err == nil {
			return serverPath, nil
		}
	}

	if serverPath, err := exec.LookPath(serverBinary); err == nil {
		return serverPath, nil
	}

	home, _ := os.UserHomeDir()
	for _, p := range []string{
		filepath.Join("/usr/local/bin", serverBinary),
		filepath.Join(home, "go", "bin", serverBinary),
		filepath.Join(home, ".local", "bin", serverBinary),
	} {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%s binary not found", serverBinary)
}

// startServerBackground starts the server detached from this terminal
func startServerBackground() error {
	serverPath, err := findServerBinary()
	if err != nil {
		return err
	}

	args := []string{}
	if configPath != "" {
		args = append(args, "-config", configPath)
	}
	cmd := exec.Command(serverPath, args...)
	detach(cmd)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	go cmd.Wait()
	return nil
}

func waitForServerReady() error {
	deadline := time.Now().Add(serverStartTimeout)
	for time.Now().Before(deadline) {
		if isServerRunning() {
			return nil
		}
		time.Sleep(serverPollInterval)
	}
	return fmt.Errorf("server did not start within %v", serverStartTimeout)
}

// ensureServerRunning starts the server unless it is already up or auto-start is off
func ensureServerRunning() error {
	if isServerRunning() {
		return nil
	}
	if noAutoStart {
		return fmt.Errorf("server not running at %s", serverURL)
	}

	fmt.Fprintln(os.Stderr, "Server not running, starting...")
	if err := startServerBackground(); err != nil {
		return err
	}
	if err := waitForServerReady(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Server started")
	return nil
}

// runRemoteDownload asks the server to run a download with no prompts
func runRemoteDownload(url, output, baseDir string) error {
	if url == "" {
		return fmt.Errorf("--remote requires --url")
	}
	req, err := newRemoteRequest(url, output, baseDir)
	if err != nil {
		return err
	}
	if err := ensureServerRunning(); err != nil {
		return err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return err
	}

	// No timeout: the server answers when the transfer is finished
	resp, err := http.Post(serverURL+"/api/v1/downloads", "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to reach server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		json.NewDecoder(resp.Body).Decode(&apiErr)
		return fmt.Errorf("rejected by server: %s", apiErr.Error)
	}

	var result handlers.DownloadResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode server response: %w", err)
	}

	fmt.Println(formatRemoteResult(&result))
	if result.State == domain.StateFailed {
		return errDownloadFailed
	}
	return nil
}

// newRemoteRequest builds the request body. The server has its own working
// directory, so relative paths are resolved here first.
func newRemoteRequest(url, output, baseDir string) (*handlers.StartDownloadRequest, error) {
	var err error
	if output != "" {
		if output, err = filepath.Abs(output); err != nil {
			return nil, fmt.Errorf("invalid output path: %w", err)
		}
	}
	if baseDir != "" {
		if baseDir, err = filepath.Abs(baseDir); err != nil {
			return nil, fmt.Errorf("invalid directory: %w", err)
		}
	}

	return &handlers.StartDownloadRequest{
		URL:         url,
		Destination: output,
		BaseDir:     baseDir,
		Overwrite:   assumeYes,
		CreateDirs:  assumeYes,
	}, nil
}

func formatRemoteResult(r *handlers.DownloadResponse) string {
	switch r.State {
	case domain.StateDone:
		return fmt.Sprintf("Completed: %s (%d bytes in %dms)", r.DestinationPath, r.BytesWritten, r.ElapsedMillis)
	case domain.StateFailed:
		return fmt.Sprintf("Failed: %s", r.Error)
	default:
		return "Download cancelled"
	}
}

// fetchStatus reads the server's in-flight count
func fetchStatus() (*handlers.StatusResponse, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(serverURL + "/api/v1/status")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var status handlers.StatusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, err
	}
	return &status, nil
}
