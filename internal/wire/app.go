package wire

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/mithrel/notion2md/internal/archive"
	"github.com/mithrel/notion2md/internal/config"
	"github.com/mithrel/notion2md/internal/logging"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg     *viper.Viper
	Log     zerolog.Logger
	Archive archive.Store
}

// BuildApp wires dependencies with the provided config. When the archive is
// disabled an in-memory store stands in so commands need no special casing.
func BuildApp(ctx context.Context, v *viper.Viper, log zerolog.Logger) (*App, error) {
	var store archive.Store
	if v.GetBool("archive.enabled") {
		path := config.ResolveArchivePath(v)
		s, err := archive.OpenSQLite(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("open archive %s: %w", path, err)
		}
		store = s
		l := logging.Component(log, "archive")
		l.Debug().Str("path", path).Msg("archive opened")
	} else {
		store = archive.NewMem()
	}
	return &App{
		Cfg:     v,
		Log:     log,
		Archive: store,
	}, nil
}

// Close releases the archive.
func (a *App) Close() error {
	if a == nil || a.Archive == nil {
		return nil
	}
	return a.Archive.Close()
}
