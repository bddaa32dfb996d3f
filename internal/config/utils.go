package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
)

func validateHost(host, fieldName string) error {
	if host == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if strings.Contains(host, "://") || strings.ContainsAny(host, "/?#") {
		return fmt.Errorf("%s must be a host name without scheme or path, got %q", fieldName, host)
	}

	if strings.Contains(host, ":") {
		if _, _, err := net.SplitHostPort(host); err != nil {
			return fmt.Errorf("%s is not a valid host[:port]: %w", fieldName, err)
		}
	}

	return nil
}

func validatePort(port int, fieldName string) error {
	if port <= 0 || port > 65535 {
		return fmt.Errorf("%s must be between 1 and 65535, got %d", fieldName, port)
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
