package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/pautahq/pauta/internal/core"
	"github.com/pautahq/pauta/internal/i18n"
	"github.com/pautahq/pauta/internal/imagecache"
	"github.com/pautahq/pauta/internal/intent"
	debuglog "github.com/pautahq/pauta/internal/log"
	"github.com/pautahq/pauta/internal/plugins/db/fsdb"
	"github.com/pautahq/pauta/internal/plugins/db/supadb"
	restapi "github.com/pautahq/pauta/internal/server"
	"github.com/pautahq/pauta/internal/util"
)

// Cli is the entry point of the pauta command.
func Cli(version string) error {
	loadEnvFiles()

	currentFlags, err := Init()
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}
	return Run(context.Background(), currentFlags, version, os.Stdout)
}

// Run executes one invocation described by currentFlags.
func Run(ctx context.Context, currentFlags *Flags, version string, out io.Writer) (err error) {
	debuglog.SetLevel(debuglog.LevelFromInt(currentFlags.LogLevel))
	if _, err = i18n.Init(currentFlags.Language); err != nil {
		return err
	}

	if currentFlags.Version {
		_, err = fmt.Fprintln(out, version)
		return
	}

	if currentFlags.ListFormats {
		return writeFormats(out, currentFlags.Output, intent.Formats())
	}

	if currentFlags.Alternatives != "" {
		return writeFormats(out, currentFlags.Output, intent.AlternativeFormats(currentFlags.Alternatives))
	}

	if currentFlags.Serve {
		return serve(currentFlags)
	}

	var router *core.Router
	if currentFlags.Session != "" {
		var store core.SessionStore
		if store, err = openStore(currentFlags); err != nil {
			return
		}
		router = core.NewRouter(store)
	} else {
		router = core.NewRouter(nil)
	}

	if currentFlags.Assistant != "" {
		if currentFlags.Session == "" {
			return fmt.Errorf("%s", i18n.T("cli_error_assistant_needs_session"))
		}
		return router.RecordAssistant(ctx, currentFlags.Session, currentFlags.Assistant)
	}

	if currentFlags.Message == "" {
		return fmt.Errorf("%s", i18n.T("cli_error_message_required"))
	}

	request := core.ChatRequest{Session: currentFlags.Session, Message: currentFlags.Message}
	if currentFlags.History != "" {
		if request.History, err = loadHistoryFile(currentFlags.History); err != nil {
			return
		}
	}

	res, err := router.Resolve(ctx, request)
	if err != nil {
		return
	}
	if err = writeResolution(out, currentFlags.Output, res); err != nil {
		return
	}
	if currentFlags.Copy {
		err = copyToClipboard(res.Prompt())
	}
	return
}

func serve(currentFlags *Flags) error {
	opts := restapi.Options{
		Images: imagecache.New(currentFlags.ImageCacheSize, nil),
		APIKey: currentFlags.APIKey,
	}

	store, err := openStore(currentFlags)
	if err != nil {
		return err
	}
	opts.Router = core.NewRouter(store)

	if client, clientErr := supadb.NewClientFromEnv(); clientErr == nil {
		opts.Supabase = client
	} else {
		debuglog.Debug(debuglog.Basic, "supabase routes disabled: %v\n", clientErr)
	}

	address := currentFlags.Address
	if env := os.Getenv("PAUTA_ADDRESS"); env != "" && address == ":8080" {
		address = env
	}
	return restapi.Serve(address, opts)
}

func openStore(currentFlags *Flags) (core.SessionStore, error) {
	switch currentFlags.Store {
	case "supabase":
		client, err := supadb.NewClientFromEnv()
		if err != nil {
			return nil, err
		}
		return supadb.NewStore(client), nil
	default:
		dir := currentFlags.DataDir
		var err error
		if dir == "" {
			if dir, err = util.ConfigDir(); err != nil {
				return nil, err
			}
		} else if dir, err = util.GetAbsolutePath(dir); err != nil {
			return nil, err
		}
		db := fsdb.NewDb(dir)
		if err = db.Configure(); err != nil {
			return nil, err
		}
		return db.Sessions, nil
	}
}

// loadEnvFiles reads ~/.config/pauta/.env and ./.env. Variables already in
// the environment are kept.
func loadEnvFiles() {
	var files []string
	if dir, err := util.ConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, ".env"))
	}
	files = append(files, ".env")
	for _, file := range files {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			debuglog.Debug(debuglog.Basic, "could not load %s: %v\n", file, err)
		}
	}
}
