package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mithrel/notion2md/internal/archive"
	"github.com/mithrel/notion2md/internal/present"
	"github.com/mithrel/notion2md/internal/ui"
	"github.com/mithrel/notion2md/internal/util"
)

func newArchiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Browse past conversions",
	}
	cmd.AddCommand(newArchiveListCmd())
	cmd.AddCommand(newArchiveShowCmd())
	cmd.AddCommand(newArchiveFindCmd())
	cmd.AddCommand(newArchiveRmCmd())
	return cmd
}

type listFlags struct {
	Limit     int
	Output    string
	NoHeaders bool
}

func addListFlags(cmd *cobra.Command, f *listFlags, defaultOutput string) {
	cmd.Flags().IntVar(&f.Limit, "limit", 0, "maximum number of records (0 uses archive.page_size)")
	cmd.Flags().StringVar(&f.Output, "output", defaultOutput, "output mode: plain|json|tui")
	cmd.Flags().BoolVar(&f.NoHeaders, "noheaders", false, "hide column headers (plain)")
	_ = cmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"plain", "json", "tui"}, cobra.ShellCompDirectiveNoFileComp
	})
}

func (f listFlags) options() (present.Options, error) {
	mode, ok := present.ParseListMode(strings.ToLower(f.Output))
	if !ok {
		return present.Options{}, fmt.Errorf("invalid --output: %s", f.Output)
	}
	return present.Options{Mode: mode, Headers: !f.NoHeaders}, nil
}

func newArchiveListCmd() *cobra.Command {
	var flags listFlags
	var since string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived conversions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			opts, err := flags.options()
			if err != nil {
				return err
			}
			limit := flags.Limit
			if limit <= 0 {
				limit = app.Cfg.GetInt("archive.page_size")
			}
			records, err := app.Archive.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if since != "" {
				cutoff, err := util.ParseSince(since, time.Now())
				if err != nil {
					return err
				}
				records = createdSince(records, cutoff)
			}
			return present.RenderRecords(cmd.Context(), cmd.OutOrStdout(), records, opts)
		},
	}
	addListFlags(cmd, &flags, "plain")
	cmd.Flags().StringVar(&since, "since", "", "only records created after this time (RFC3339, 2006-01-02, or a duration like 36h or 2w)")
	return cmd
}

func newArchiveShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "show <id>",
		Short:             "Display an archived conversion",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeRecordIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			rec, err := app.Archive.Get(cmd.Context(), args[0])
			if err != nil {
				return lookupError(args[0], err)
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), ui.FormatRecord(rec))
			return nil
		},
	}
}

func newArchiveFindCmd() *cobra.Command {
	var flags listFlags
	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy search archived conversions by title and source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			opts, err := flags.options()
			if err != nil {
				return err
			}
			all, err := app.Archive.List(cmd.Context(), 0)
			if err != nil {
				return err
			}
			limit := flags.Limit
			if limit <= 0 {
				limit = app.Cfg.GetInt("archive.page_size")
			}
			return present.RenderRecords(cmd.Context(), cmd.OutOrStdout(), archive.Find(all, args[0], limit), opts)
		},
	}
	addListFlags(cmd, &flags, "plain")
	return cmd
}

func newArchiveRmCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:               "rm <id>...",
		Short:             "Delete archived conversions",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeRecordIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			records := make([]archive.Record, 0, len(args))
			for _, id := range args {
				rec, err := app.Archive.Get(cmd.Context(), id)
				if err != nil {
					return lookupError(id, err)
				}
				records = append(records, rec)
			}
			if len(records) > 1 {
				if err := confirmDelete(cmd.InOrStdin(), fmt.Sprintf("Delete %d archived conversions?", len(records)), "This permanently removes them from the archive.", yes); err != nil {
					return err
				}
			}
			for _, rec := range records {
				if err := app.Archive.Delete(cmd.Context(), rec.ID); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", rec.ID)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "skip confirmation prompt when deleting several records")
	return cmd
}

func confirmDelete(in io.Reader, title, desc string, yes bool) error {
	if yes {
		return nil
	}
	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return fmt.Errorf("confirmation required; rerun with --yes")
	}
	confirm := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(desc).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}
	if !confirm {
		return fmt.Errorf("aborted")
	}
	return nil
}

// completeRecordIDs offers record IDs whose title or source fuzzily match
// the typed text, after exact ID prefix matches.
func completeRecordIDs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	app, err := completionApp(cmd)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	defer app.Close()
	records, err := app.Archive.List(cmd.Context(), 0)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	var out []string
	for _, r := range records {
		if toComplete != "" && strings.HasPrefix(r.ID, toComplete) {
			out = append(out, r.ID+"\t"+archive.Label(r))
		}
	}
	if len(out) == 0 {
		for _, r := range archive.Find(records, toComplete, 20) {
			out = append(out, r.ID+"\t"+archive.Label(r))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func lookupError(id string, err error) error {
	switch {
	case errors.Is(err, archive.ErrNotFound):
		return fmt.Errorf("no archived conversion matches %q", id)
	case errors.Is(err, archive.ErrAmbiguous):
		return fmt.Errorf("id prefix %q matches several conversions; use more characters", id)
	default:
		return err
	}
}

func createdSince(records []archive.Record, cutoff time.Time) []archive.Record {
	out := records[:0:0]
	for _, r := range records {
		if !r.CreatedAt.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}
