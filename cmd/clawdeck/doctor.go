package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bhandras/clawdeck/internal/assets"
	"github.com/bhandras/clawdeck/internal/config"
	"github.com/bhandras/clawdeck/internal/history"
	"github.com/bhandras/clawdeck/internal/identity"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the panel's on-disk inputs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(overridesFromViper())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			root := assets.ResolveRoot(cfg.WebUIDist)
			switch root.Status {
			case assets.RootResolved:
				fmt.Fprintf(out, "web ui:    ok (%s)\n", root.Path)
			case assets.RootInvalid:
				fmt.Fprintf(out, "web ui:    INVALID - %s is not a directory\n", root.Path)
			case assets.RootMissing:
				fmt.Fprintf(out, "web ui:    MISSING - run `cd webui && npm install && npm run build` or set webui.dist\n")
			}

			files, err := history.ListSessionFiles(cfg.SessionsDir)
			switch {
			case err != nil:
				fmt.Fprintf(out, "sessions:  ERROR - %v\n", err)
			case len(files) == 0:
				fmt.Fprintf(out, "sessions:  none yet (%s)\n", cfg.SessionsDir)
			default:
				fmt.Fprintf(out, "sessions:  %d logs, newest %s\n", len(files), files[0].Name)
			}

			assistant := identity.NewResolver(cfg).Assistant()
			fmt.Fprintf(out, "assistant: %s (agent id %s)\n", assistant.Name, assistant.AgentID)
			fmt.Fprintf(out, "panel:     %s\n", panelURL(cfg))
			return nil
		},
	}
}
