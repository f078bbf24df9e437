package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/notion2md/internal/archive"
	"github.com/mithrel/notion2md/internal/frontmatter"
	"github.com/mithrel/notion2md/internal/logging"
	"github.com/mithrel/notion2md/internal/present"
	"github.com/mithrel/notion2md/internal/render"
	"github.com/mithrel/notion2md/internal/ui"
	"github.com/mithrel/notion2md/internal/wire"
	"github.com/mithrel/notion2md/pkg/api"
)

// stdinInput names standard input on the command line.
const stdinInput = "-"

type metaFlags struct {
	Meta string
	File string
}

func addMetaFlags(cmd *cobra.Command, m *metaFlags) {
	cmd.Flags().StringVarP(&m.Meta, "frontmatter", "f", "", `frontmatter as a JSON or YAML mapping, e.g. '{"title": "Notes"}'`)
	cmd.Flags().StringVar(&m.File, "frontmatter-file", "", "YAML or JSON file with base frontmatter; --frontmatter keys win")
}

func newConvertCmd() *cobra.Command {
	var meta metaFlags
	var outPath string
	var outDir string
	var outputMode string
	var noArchive bool
	cmd := &cobra.Command{
		Use:   "convert <input.json>...",
		Short: "Convert Notion block JSON to Markdown",
		Long: "Convert one or more Notion block JSON files. Use - to read standard input.\n" +
			"Input may be a bare array of blocks or a list object with a results field.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := getApp(cmd)
			if outputMode == "" {
				outputMode = app.Cfg.GetString("output.format")
			}
			mode, ok := present.ParseMode(strings.ToLower(outputMode))
			if !ok {
				return fmt.Errorf("invalid --output-format: %s", outputMode)
			}
			if outDir == "" {
				outDir = app.Cfg.GetString("output.dir")
			}
			if outPath != "" && len(args) > 1 {
				return fmt.Errorf("-o takes a single input; use --out-dir for %d inputs", len(args))
			}

			outs, docs, err := convertInputs(cmd, app, args, meta)
			if err != nil {
				return err
			}

			opts := present.Options{
				Mode:       mode,
				JSONIndent: true,
				Style:      app.Cfg.GetString("pretty.style"),
				Width:      app.Cfg.GetInt("pretty.width"),
			}
			status := ui.NewStatus(cmd.ErrOrStderr())
			for i, out := range outs {
				dest := outPath
				if dest == "" && outDir != "" {
					dest = filepath.Join(outDir, outputName(args[i], i)+mode.Extension())
				}
				if err := writeOutput(cmd.OutOrStdout(), dest, out, opts); err != nil {
					return err
				}
				if dest != "" {
					status.Wrote(dest, out.Title)
				}
				if !noArchive {
					rec := archive.NewRecord(docs[i], out.Source, out.Markdown(), time.Now())
					if err := app.Archive.Put(cmd.Context(), rec); err != nil {
						return fmt.Errorf("archive %s: %w", out.Source, err)
					}
				}
			}
			return nil
		},
	}
	addMetaFlags(cmd, &meta)
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write the result to this file (single input)")
	cmd.Flags().StringVar(&outDir, "out-dir", "", "write each result to <dir>/<input name>.<ext> (default from output.dir)")
	cmd.Flags().StringVar(&outputMode, "output-format", "", "output format: markdown|html|pretty|json (default from output.format)")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "do not record this conversion in the archive")
	_ = cmd.RegisterFlagCompletionFunc("output-format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"markdown", "html", "pretty", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.MarkFlagFilename("frontmatter-file", "yaml", "yml", "json")
	return cmd
}

// convertInputs reads and parses every input, then renders the bodies
// concurrently. Results follow input order.
func convertInputs(cmd *cobra.Command, app *wire.App, inputs []string, meta metaFlags) ([]present.Output, []api.Document, error) {
	if err := checkInputs(inputs); err != nil {
		return nil, nil, err
	}
	log := logging.Component(app.Log, "convert")
	opts := render.Options{Log: &log}
	if meta.File != "" {
		base, err := frontmatter.Load(meta.File)
		if err != nil {
			return nil, nil, fmt.Errorf("load frontmatter file %s: %w", meta.File, err)
		}
		opts.Base = base
	}

	docs := make([]api.Document, 0, len(inputs))
	bare := make([]api.Document, 0, len(inputs))
	for _, in := range inputs {
		data, err := readInput(cmd.InOrStdin(), in)
		if err != nil {
			return nil, nil, err
		}
		doc, err := render.Parse(data, meta.Meta, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", in, err)
		}
		log.Debug().Str("input", in).Int("blocks", doc.Count()).Msg("parsed")
		docs = append(docs, doc)
		bare = append(bare, api.Document{Blocks: doc.Blocks})
	}

	bodies, err := render.Batch(cmd.Context(), bare, app.Cfg.GetInt("convert.workers"))
	if err != nil {
		return nil, nil, err
	}
	outs := make([]present.Output, len(docs))
	for i := range docs {
		outs[i] = present.OutputFromBody(docs[i], inputs[i], bodies[i])
	}
	return outs, docs, nil
}

// checkInputs rejects a second "-": standard input can only be read once.
func checkInputs(inputs []string) error {
	seen := false
	for _, in := range inputs {
		if in != stdinInput {
			continue
		}
		if seen {
			return errors.New("standard input (-) can only be given once")
		}
		seen = true
	}
	return nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == stdinInput {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}

func writeOutput(stdout io.Writer, dest string, out present.Output, opts present.Options) error {
	if dest == "" {
		return present.RenderDocument(stdout, out, opts)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if err := present.RenderDocument(f, out, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// outputName derives an output file stem from an input path.
func outputName(input string, i int) string {
	if input == stdinInput {
		return fmt.Sprintf("stdin-%d", i+1)
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
