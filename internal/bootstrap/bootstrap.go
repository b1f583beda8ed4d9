// Package bootstrap wires the adapters every front end shares: the local
// state store, the progress API client and the folder source, behind one
// application.Session.
package bootstrap

import (
	"fmt"

	"go.uber.org/zap"

	"studytrack/internal/adapters/filesystem"
	"studytrack/internal/adapters/progressclient"
	"studytrack/internal/adapters/sqlite"
	"studytrack/internal/application"
	"studytrack/internal/config"
	"studytrack/internal/logging"
)

// Options selects what a front end needs
type Options struct {
	// Folder overrides the configured and saved folder when non-empty
	Folder string
	// Offline disables the progress API; toggles stay local
	Offline bool
}

// Runtime is a session plus the adapters behind it
type Runtime struct {
	Config  *config.Config
	Store   *sqlite.StateStore
	Client  *progressclient.Client // nil when offline
	Folder  *filesystem.Folder
	Session *application.Session
}

// Open builds the runtime. The folder is, in order: opts.Folder, the saved
// folder when it is still readable, the configured folder.
func Open(cfg *config.Config, opts Options) (*Runtime, error) {
	store, err := sqlite.Open(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}

	rt := &Runtime{Config: cfg, Store: store}
	var client *progressclient.Client
	if !opts.Offline && cfg.APIURL != "" {
		client = progressclient.New(cfg.APIURL)
		rt.Client = client
	}

	var reconciler *application.Reconciler
	if client != nil {
		reconciler = application.NewReconciler(client)
	} else {
		reconciler = application.NewReconciler(nil)
	}

	viewer := application.NewViewer(filesystem.NewBlobs(""))
	session, err := application.NewSession(store, reconciler, viewer)
	if err != nil {
		store.Close()
		return nil, err
	}
	rt.Session = session
	rt.Folder = filesystem.NewFolder(chooseFolder(opts.Folder, session.SavedFolder(), cfg.Folder))
	return rt, nil
}

func chooseFolder(explicit, saved, configured string) string {
	if explicit != "" {
		return explicit
	}
	if saved != "" {
		err := filesystem.NewFolder(saved).CheckReadable()
		if err == nil {
			return saved
		}
		logging.Warn("saved folder no longer readable, using configured folder",
			zap.String("saved", saved), zap.Error(err))
	}
	return configured
}

// Close releases the viewer reference and the state store
func (rt *Runtime) Close() error {
	rt.Session.Close()
	return rt.Store.Close()
}
