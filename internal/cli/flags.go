package cli

import (
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"github.com/pautahq/pauta/internal/i18n"
	debuglog "github.com/pautahq/pauta/internal/log"
	"github.com/pautahq/pauta/internal/util"
)

// Flags are the command line options. Fields with a yaml tag can also be
// set from the config file; explicit flags win over the file.
type Flags struct {
	Session        string `short:"s" long:"session" yaml:"session" description:"Load and record history in this session"`
	Store          string `long:"store" yaml:"store" description:"Session store" choice:"fs" choice:"supabase" default:"fs"`
	DataDir        string `long:"data-dir" yaml:"dataDir" description:"Directory for the file session store (default ~/.config/pauta)"`
	History        string `long:"history" description:"JSON file with prior messages to resolve against"`
	Output         string `short:"o" long:"output" yaml:"output" description:"Output format" choice:"text" choice:"json" choice:"yaml" default:"text"`
	ListFormats    bool   `short:"l" long:"list-formats" description:"List the format catalog"`
	Alternatives   string `long:"alternatives" description:"List formats other than the given key"`
	Assistant      string `long:"assistant" description:"Record an assistant reply in --session"`
	Copy           bool   `short:"c" long:"copy" yaml:"copy" description:"Copy the resolved prompt to the clipboard"`
	Serve          bool   `long:"serve" description:"Start the HTTP API"`
	Address        string `long:"address" yaml:"address" description:"HTTP API listen address" default:":8080"`
	APIKey         string `long:"api-key" yaml:"apiKey" description:"Require this key in the X-API-Key header"`
	ImageCacheSize int    `long:"image-cache-size" yaml:"imageCacheSize" description:"Number of inlined images kept in memory" default:"128"`
	LogLevel       int    `long:"log-level" yaml:"logLevel" description:"Log level: 0=off 1=basic 2=detailed 3=trace 4=wire" default:"0"`
	Language       string `short:"g" long:"language" yaml:"language" description:"Interface language, e.g. en or pt-BR"`
	Config         string `long:"config" description:"Path to a YAML config file"`
	Version        bool   `long:"version" description:"Print the version and exit"`

	Message string `no-flag:"true"`
}

// Init parses os.Args and stdin into Flags.
func Init() (*Flags, error) {
	return parseFlags(os.Args[1:], os.Stdin)
}

func parseFlags(args []string, stdin io.Reader) (*Flags, error) {
	ret := &Flags{}
	parser := flags.NewParser(ret, flags.Default)
	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, err
	}

	configPath := ret.Config
	if configPath == "" {
		if configPath, err = util.GetDefaultConfigPath(); err != nil {
			debuglog.Debug(debuglog.Basic, "%v\n", err)
		}
	}
	if configPath != "" {
		fileFlags, err := loadYAMLConfig(configPath)
		if err != nil {
			return nil, err
		}
		mergeUnset(parser, ret, fileFlags)
	}

	ret.Message = strings.TrimSpace(strings.Join(rest, " "))
	if ret.Message == "" && stdin != nil && isPiped(stdin) {
		content, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf(i18n.T("cli_error_read_stdin"), err)
		}
		ret.Message = strings.TrimSpace(string(content))
	}
	return ret, nil
}

func loadYAMLConfig(path string) (*Flags, error) {
	absPath, err := util.GetAbsolutePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf(i18n.T("cli_error_config_read"), path, err)
	}
	config := &Flags{}
	if err = yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf(i18n.T("cli_error_config_parse"), path, err)
	}
	debuglog.Debug(debuglog.Detailed, "loaded config from %s\n", absPath)
	return config, nil
}

// mergeUnset copies non-zero config values into every yaml-tagged field
// whose flag was not given on the command line.
func mergeUnset(parser *flags.Parser, dst, src *Flags) {
	dv := reflect.ValueOf(dst).Elem()
	sv := reflect.ValueOf(src).Elem()
	t := dv.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("yaml") == "" {
			continue
		}
		long := field.Tag.Get("long")
		if opt := parser.FindOptionByLongName(long); opt != nil && opt.IsSet() && !opt.IsSetDefault() {
			continue
		}
		if value := sv.Field(i); !value.IsZero() {
			dv.Field(i).Set(value)
		}
	}
}

func isPiped(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
