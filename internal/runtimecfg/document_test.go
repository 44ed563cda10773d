package runtimecfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocument() *Document {
	return &Document{
		APIURL:          "https://queue.example.org/api/v1/",
		FeedbackAPIURL:  "https://feedback.example.org/",
		FeedbackChannel: "service-feedback",
		FeedbackEnabled: true,
		HeaderMessage:   "Welcome",
		HeaderLinks:     []Link{{Label: "Home", URL: "https://example.org/"}},
		FooterLinks:     []Link{{Label: "Privacy", URL: "https://example.org/privacy"}},
		SMSDisabled:     false,
	}
}

func TestWriteThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config", "configuration.json")

	doc := validDocument()
	require.NoError(t, doc.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "configuration.json"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configuration.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Document)
		wantErr string
	}{
		{"valid", func(d *Document) {}, ""},
		{"missing api url", func(d *Document) { d.APIURL = "" }, "API_URL is required"},
		{"relative api url", func(d *Document) { d.APIURL = "/api/v1/" }, "API_URL"},
		{"non-http scheme", func(d *Document) { d.APIURL = "ftp://example.org/" }, "API_URL"},
		{"feedback enabled without url", func(d *Document) {
			d.FeedbackAPIURL = ""
		}, "FEEDBACK_API_URL is empty"},
		{"feedback url optional when disabled", func(d *Document) {
			d.FeedbackEnabled = false
			d.FeedbackAPIURL = ""
		}, ""},
		{"link missing label", func(d *Document) {
			d.FooterLinks = []Link{{URL: "https://example.org/"}}
		}, "link record"},
		{"link missing url", func(d *Document) {
			d.HeaderLinks = []Link{{Label: "Home"}}
		}, "link record"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDocument()
			tc.mutate(doc)
			err := doc.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestWriteRejectsInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configuration.json")
	doc := &Document{}
	require.Error(t, doc.Write(path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
