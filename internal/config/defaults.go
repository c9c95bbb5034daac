package config

const (
	defaultConfigPath           = "~/.config/mediamanager/config.toml"
	projectConfigName           = "mediamanager.toml"
	defaultCollectionRoot       = "~/media"
	defaultCatalogFile          = "metadata.json"
	defaultStateDir             = "~/.local/share/mediamanager"
	defaultMaxCollisionAttempts = 1000
	defaultTrackCommand         = "git annex add"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	collectionRootEnv           = "MEDIAMANAGER_ROOT"
)

var defaultFollowUp = []string{
	"git add -u",
	"git commit -m 'update'",
	"git push",
	"git annex copy --to origin",
	"git annex sync",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CollectionRoot: defaultCollectionRoot,
			CatalogFile:    defaultCatalogFile,
			StateDir:       defaultStateDir,
		},
		Placement: Placement{
			MaxCollisionAttempts: defaultMaxCollisionAttempts,
			TrackCommand:         defaultTrackCommand,
		},
		Commands: Commands{
			FollowUp: append([]string(nil), defaultFollowUp...),
		},
		Journal: Journal{
			Enabled: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
