package domain

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// DownloadRequest is the URL and destination collected for one invocation
type DownloadRequest struct {
	URL             string `json:"url" validate:"required,url"`
	DestinationPath string `json:"destination_path" validate:"required"`
}

// Validate checks the request invariants
func (r *DownloadRequest) Validate() error {
	if err := ValidateURL(r.URL); err != nil {
		return err
	}
	if err := ValidateDestination(r.DestinationPath); err != nil {
		return err
	}
	return validate.Struct(r)
}

// ValidateURL checks that raw is an absolute http or https URL with a host
func ValidateURL(raw string) error {
	if err := validate.Var(raw, "required,url"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	if scheme := strings.ToLower(u.Scheme); scheme != "http" && scheme != "https" {
		return fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}
	return nil
}

// ValidateDestination checks that a destination path was entered
func ValidateDestination(dest string) error {
	if dest == "" {
		return ErrEmptyDestination
	}
	return nil
}

// DefaultFilename returns the last path segment of rawURL.
// URLs without a path fall back to the host name.
func DefaultFilename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return path.Base(rawURL)
	}

	name := path.Base(strings.TrimRight(u.Path, "/"))
	if name == "." || name == "/" || name == "" {
		return u.Hostname()
	}
	return name
}

// DefaultDestination joins the default filename of rawURL with baseDir
func DefaultDestination(baseDir, rawURL string) string {
	return filepath.Join(baseDir, DefaultFilename(rawURL))
}
