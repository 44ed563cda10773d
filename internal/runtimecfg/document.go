// Package runtimecfg models the configuration document the frontend fetches
// once at boot. The document is written by an operator at deployment time and
// is never mutated by the running system.
package runtimecfg

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
)

var (
	ErrNotFound = errors.New("configuration document not found")
	ErrInvalid  = errors.New("configuration document invalid")
)

type Link struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

type Document struct {
	APIURL          string `json:"API_URL"`
	FeedbackAPIURL  string `json:"FEEDBACK_API_URL,omitempty"`
	FeedbackChannel string `json:"FEEDBACK_CHANNEL,omitempty"`
	FeedbackEnabled bool   `json:"FEEDBACK_ENABLED"`
	HeaderMessage   string `json:"HEADER_MESSAGE,omitempty"`
	HeaderLinks     []Link `json:"HEADER_LINKS,omitempty"`
	FooterMessage   string `json:"FOOTER_MESSAGE,omitempty"`
	FooterLinks     []Link `json:"FOOTER_LINKS,omitempty"`
	SMSDisabled     bool   `json:"SMS_DISABLED"`
}

// Load reads and validates the document at path. A missing file is reported
// as ErrNotFound so callers can distinguish "not deployed yet" from a
// malformed document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) Validate() error {
	if d.APIURL == "" {
		return fmt.Errorf("%w: API_URL is required", ErrInvalid)
	}
	if err := checkURL(d.APIURL); err != nil {
		return fmt.Errorf("%w: API_URL: %v", ErrInvalid, err)
	}
	if d.FeedbackEnabled && d.FeedbackAPIURL == "" {
		return fmt.Errorf("%w: FEEDBACK_ENABLED is set but FEEDBACK_API_URL is empty", ErrInvalid)
	}
	if d.FeedbackAPIURL != "" {
		if err := checkURL(d.FeedbackAPIURL); err != nil {
			return fmt.Errorf("%w: FEEDBACK_API_URL: %v", ErrInvalid, err)
		}
	}
	bad := lo.Filter(append(append([]Link{}, d.HeaderLinks...), d.FooterLinks...), func(l Link, _ int) bool {
		return l.Label == "" || l.URL == ""
	})
	if len(bad) > 0 {
		return fmt.Errorf("%w: %d link record(s) missing label or url", ErrInvalid, len(bad))
	}
	return nil
}

// Write persists the document for the static host to serve. Parent
// directories are created as needed.
func (d *Document) Write(path string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create configuration directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write configuration: %w", err)
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%q is not an absolute http(s) URL", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%q has no host", raw)
	}
	if strings.ContainsAny(raw, " \t\n") {
		return fmt.Errorf("%q contains whitespace", raw)
	}
	return nil
}
