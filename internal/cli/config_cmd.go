package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/mithrel/notion2md/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:         "config",
		Short:       "Manage configuration",
		Annotations: map[string]string{skipAppAnnotation: ""},
	}
	cmd.AddCommand(newConfigGenerateCmd())
	return cmd
}

func newConfigGenerateCmd() *cobra.Command {
	var out string
	var overwrite, update, stdout bool
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a default config.toml",
		Long: "Generate a commented config.toml holding every default.\n" +
			"--update keeps existing values, adds missing keys and comments out keys\n" +
			"that are no longer recognised. The result is validated before it is written.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if overwrite && update {
				return fmt.Errorf("choose either --overwrite or --update")
			}
			if out == "" {
				out = config.DefaultConfigPath()
			}
			plan, err := planConfig(out, overwrite, update)
			if err != nil {
				return err
			}
			if err := config.ValidateTOML(plan.content); err != nil {
				return fmt.Errorf("refusing to write %s: %w", out, err)
			}
			if stdout {
				_, err := io.WriteString(cmd.OutOrStdout(), plan.content)
				return err
			}
			return applyConfigPlan(cmd.OutOrStdout(), out, plan)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output path for config.toml")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing config (keeps a backup)")
	cmd.Flags().BoolVar(&update, "update", false, "merge defaults into existing config (keeps a backup)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the result instead of writing it")
	return cmd
}

// configPlan is the config.toml content about to be written. previous holds
// the bytes it replaces, nil when the file does not exist yet.
type configPlan struct {
	content  string
	previous []byte
	added    []string
	outdated []string
	noop     bool
}

func planConfig(path string, overwrite, update bool) (configPlan, error) {
	previous, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return configPlan{content: config.RenderDefaultTOML()}, nil
	case err != nil:
		return configPlan{}, err
	}

	switch {
	case update:
		up := config.UpdateTOML(string(previous))
		return configPlan{
			content:  up.Content,
			previous: previous,
			added:    up.Added,
			outdated: up.Outdated,
			noop:     !up.Changed(),
		}, nil
	case overwrite:
		return configPlan{content: config.RenderDefaultTOML(), previous: previous}, nil
	default:
		return configPlan{}, fmt.Errorf("config already exists at %s; use --overwrite to replace (this will delete your current config) or --update to merge defaults", path)
	}
}

func applyConfigPlan(w io.Writer, path string, plan configPlan) error {
	if plan.noop {
		_, _ = fmt.Fprintf(w, "Config already up to date: %s\n", path)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	var backup string
	if plan.previous != nil {
		var err error
		if backup, err = writeBackup(path, plan.previous); err != nil {
			return fmt.Errorf("back up %s: %w", path, err)
		}
	}
	if err := replaceFile(path, []byte(plan.content)); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "Wrote %s\n", path)
	if backup != "" {
		_, _ = fmt.Fprintf(w, "Backup: %s\n", backup)
	}
	for _, k := range plan.added {
		_, _ = fmt.Fprintf(w, "Added %s\n", k)
	}
	for _, k := range plan.outdated {
		_, _ = fmt.Fprintf(w, "Commented out %s\n", k)
	}
	return nil
}

// writeBackup stores data next to path under a name that does not exist yet.
func writeBackup(path string, data []byte) (string, error) {
	stamp := time.Now().Format("20060102-150405")
	for i := 0; ; i++ {
		name := path + ".bak-" + stamp
		if i > 0 {
			name = fmt.Sprintf("%s.%d", name, i)
		}
		f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", err
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			return "", err
		}
		return name, f.Close()
	}
}

// replaceFile writes data to a temporary file beside path and renames it
// over path, so a failed write never leaves a truncated config.
func replaceFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
