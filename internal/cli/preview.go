package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mithrel/notion2md/internal/present"
)

func newPreviewCmd() *cobra.Command {
	var meta metaFlags
	var style string
	var width int
	cmd := &cobra.Command{
		Use:   "preview <input.json>",
		Short: "Render a Notion export for the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			outs, _, err := convertInputs(cmd, app, args, meta)
			if err != nil {
				return err
			}
			if style == "" {
				style = app.Cfg.GetString("pretty.style")
			}
			if width <= 0 {
				width = app.Cfg.GetInt("pretty.width")
			}
			opts := present.Options{Mode: present.ModePretty, Style: style, Width: width}
			return pagerFromConfig(app.Cfg).run(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), func(w io.Writer) error {
				if err := present.RenderDocument(w, outs[0], opts); err != nil {
					return fmt.Errorf("preview: %w", err)
				}
				return nil
			})
		},
	}
	addMetaFlags(cmd, &meta)
	cmd.Flags().StringVar(&style, "style", "", "glamour style, e.g. dark, light, dracula, notty (default from pretty.style)")
	cmd.Flags().IntVar(&width, "width", 0, "word wrap width (default from pretty.width)")
	return cmd
}
