package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qsystem/frontgate/internal/config"
	"github.com/qsystem/frontgate/internal/doctor"
)

var (
	doctorBackend  string
	doctorFrontend string
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verify a deployment end to end",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		backend := doctorBackend
		if backend == "" {
			backend = cfg.BackendOrigin
		}
		frontend := doctorFrontend
		if frontend == "" {
			frontend = "http://localhost:" + cfg.Port
		}

		d := doctor.New(backend, frontend, cfg.ConfigPath, "/api/v1")

		failed := 0
		for _, check := range d.Run(cmd.Context()) {
			if check.OK() {
				fmt.Fprintf(cmd.OutOrStdout(), "ok   %s\n", check.Name)
			} else {
				failed++
				fmt.Fprintf(cmd.OutOrStdout(), "FAIL %s: %v\n", check.Name, check.Err)
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d check(s) failed", failed)
		}
		return nil
	},
}

func init() {
	doctorCmd.Flags().StringVar(&doctorBackend, "backend", "", "backend origin (default BACKEND_ORIGIN)")
	doctorCmd.Flags().StringVar(&doctorFrontend, "frontend", "", "gateway origin (default http://localhost:PORT)")
}
