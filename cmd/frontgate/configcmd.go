package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qsystem/frontgate/internal/config"
	"github.com/qsystem/frontgate/internal/runtimecfg"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the runtime configuration document",
}

var (
	genAPIURL          string
	genFeedbackAPIURL  string
	genFeedbackChannel string
	genFeedbackEnabled bool
	genHeaderMessage   string
	genFooterMessage   string
	genHeaderLinks     []string
	genFooterLinks     []string
	genSMSDisabled     bool
	genOut             string
)

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write the configuration document the frontend fetches at boot",
	RunE: func(cmd *cobra.Command, args []string) error {
		headerLinks, err := parseLinks(genHeaderLinks)
		if err != nil {
			return err
		}
		footerLinks, err := parseLinks(genFooterLinks)
		if err != nil {
			return err
		}

		doc := &runtimecfg.Document{
			APIURL:          genAPIURL,
			FeedbackAPIURL:  genFeedbackAPIURL,
			FeedbackChannel: genFeedbackChannel,
			FeedbackEnabled: genFeedbackEnabled,
			HeaderMessage:   genHeaderMessage,
			HeaderLinks:     headerLinks,
			FooterMessage:   genFooterMessage,
			FooterLinks:     footerLinks,
			SMSDisabled:     genSMSDisabled,
		}

		out := genOut
		if out == "" {
			out = config.Load().ConfigFile
		}
		if err := doc.Write(out); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", out)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an existing configuration document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.Load().ConfigFile
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := runtimecfg.Load(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
		return nil
	},
}

// parseLinks turns repeated "Label|URL" flags into link records.
func parseLinks(raw []string) ([]runtimecfg.Link, error) {
	links := make([]runtimecfg.Link, 0, len(raw))
	for _, item := range raw {
		label, url, ok := strings.Cut(item, "|")
		if !ok {
			return nil, fmt.Errorf("link %q must be in Label|URL form", item)
		}
		links = append(links, runtimecfg.Link{Label: label, URL: url})
	}
	return links, nil
}

func init() {
	configGenerateCmd.Flags().StringVar(&genAPIURL, "api-url", "", "base URL the frontend uses for backend calls (required)")
	configGenerateCmd.Flags().StringVar(&genFeedbackAPIURL, "feedback-api-url", "", "feedback service endpoint")
	configGenerateCmd.Flags().StringVar(&genFeedbackChannel, "feedback-channel", "", "feedback channel name")
	configGenerateCmd.Flags().BoolVar(&genFeedbackEnabled, "feedback-enabled", false, "enable the feedback UI")
	configGenerateCmd.Flags().StringVar(&genHeaderMessage, "header-message", "", "header banner message")
	configGenerateCmd.Flags().StringVar(&genFooterMessage, "footer-message", "", "footer message")
	configGenerateCmd.Flags().StringArrayVar(&genHeaderLinks, "header-link", nil, "header link as Label|URL (repeatable)")
	configGenerateCmd.Flags().StringArrayVar(&genFooterLinks, "footer-link", nil, "footer link as Label|URL (repeatable)")
	configGenerateCmd.Flags().BoolVar(&genSMSDisabled, "sms-disabled", false, "disable the SMS UI feature")
	configGenerateCmd.Flags().StringVar(&genOut, "out", "", "output path (default CONFIG_FILE)")
	_ = configGenerateCmd.MarkFlagRequired("api-url")

	configCmd.AddCommand(configGenerateCmd)
	configCmd.AddCommand(configValidateCmd)
}
