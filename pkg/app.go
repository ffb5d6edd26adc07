package mallctl

import (
	"fmt"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/juju/errors"
	"github.com/mitchellh/colorstring"
	bunyan "github.com/mumoshu/logrus-bunyan-formatter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/jiffoo/mallctl/pkg/util/fileutil"
)

// Application carries the process-wide settings bound to the root command's
// persistent flags, plus the viper instance configuration is read through.
type Application struct {
	Name        string
	ConfigFile  string
	Verbose     bool
	Output      string
	Colorize    bool
	LogToStderr bool

	Viper *viper.Viper
	Log   *log.Logger
}

func NewApplication(name string) *Application {
	v := viper.GetViper()

	v.SetDefault("log_color_panic", "red")
	v.SetDefault("log_color_fatal", "red")
	v.SetDefault("log_color_error", "red")
	v.SetDefault("log_color_warn", "red")
	v.SetDefault("log_color_info", "cyan")
	v.SetDefault("log_color_debug", "dark_gray")

	return &Application{
		Name:     name,
		Output:   "text",
		Colorize: true,
		Viper:    v,
		Log:      log.StandardLogger(),
	}
}

// UpdateLoggingConfiguration applies the output format, verbosity and
// destination chosen via the persistent flags.
func (a *Application) UpdateLoggingConfiguration() error {
	if a.Verbose {
		a.Log.SetLevel(log.DebugLevel)
	}

	if a.LogToStderr {
		a.Log.SetOutput(os.Stderr)
	} else {
		a.Log.SetOutput(os.Stdout)
	}

	switch a.Output {
	case "bunyan":
		a.Log.SetFormatter(&bunyan.Formatter{Name: a.Name})
	case "json":
		a.Log.SetFormatter(&log.JSONFormatter{})
	case "text":
		a.Log.SetFormatter(&textFormatter{
			colorize: &colorstring.Colorize{
				Colors:  colorstring.DefaultColors,
				Disable: !a.Colorize,
				Reset:   true,
			},
			colors: a.levelColors(),
		})
	case "message":
		a.Log.SetFormatter(&MessageOnlyFormatter{})
	default:
		return fmt.Errorf("unexpected output format specified: %s", a.Output)
	}

	return nil
}

func (a *Application) levelColors() map[log.Level]string {
	return map[log.Level]string{
		log.PanicLevel: a.Viper.GetString("log_color_panic"),
		log.FatalLevel: a.Viper.GetString("log_color_fatal"),
		log.ErrorLevel: a.Viper.GetString("log_color_error"),
		log.WarnLevel:  a.Viper.GetString("log_color_warn"),
		log.InfoLevel:  a.Viper.GetString("log_color_info"),
		log.DebugLevel: a.Viper.GetString("log_color_debug"),
	}
}

// LoadConfig merges mallctl.yaml (or the --config-file override) and the
// MALLCTL_* environment over the built-in defaults, then validates the
// result.
func (a *Application) LoadConfig() (*Config, error) {
	v := a.Viper

	if a.ConfigFile != "" {
		v.SetConfigFile(a.ConfigFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, errors.Annotatef(err, "loading config file %s", a.ConfigFile)
		}
	} else {
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.SetConfigName(a.Name)

		configFile := fmt.Sprintf("%s.yaml", a.Name)
		configMsg := fmt.Sprintf("loading config file %s...", configFile)
		if fileutil.Exists(configFile) {
			if err := v.MergeInConfig(); err != nil {
				a.Log.Errorf("%serror", configMsg)
				return nil, errors.Annotatef(err, "loading config file %s", configFile)
			}
			a.Log.Debugf("%sdone", configMsg)
		} else {
			a.Log.Debugf("%smissing", configMsg)
		}
	}

	v.SetEnvPrefix(strings.ToUpper(a.Name))
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))

	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, errors.Annotate(err, "unmarshalling config")
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Annotate(err, "validating config")
	}

	a.Log.Debugf("effective config: %s", spew.Sdump(config))

	return config, nil
}
