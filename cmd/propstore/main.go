package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/go-propstore/propstore/internal/application"
	"github.com/go-propstore/propstore/internal/config"
	"github.com/go-propstore/propstore/internal/logging"
)

func main() {
	kingpinApp := kingpin.New("propstore", "Typed accessor over a process-wide properties configuration store")
	configFile := kingpinApp.Flag("config", "Path to YAML shell configuration file").String()
	logLevel := kingpinApp.Flag("log-level", "Log verbosity (debug, info, warn, error)").String()
	overridesFlag := kingpinApp.Flag("overrides", "Properties file merged into the store before the command runs").String()
	quietFlag := kingpinApp.Flag("quiet", "Only report errors").Bool()

	getCmd := kingpinApp.Command("get", "Print the value of a key")
	getKey := getCmd.Arg("key", "Configuration key").Required().String()
	getDefault := getCmd.Flag("default", "Value printed when the key is absent").String()

	hasCmd := kingpinApp.Command("has", "Report whether a key has a non-blank value")
	hasKey := hasCmd.Arg("key", "Configuration key").Required().String()

	intCmd := kingpinApp.Command("int", "Print the value of a key parsed as an integer")
	intKey := intCmd.Arg("key", "Configuration key").Required().String()

	int64Cmd := kingpinApp.Command("int64", "Print the value of a key parsed as a 64-bit integer")
	int64Key := int64Cmd.Arg("key", "Configuration key").Required().String()

	boolCmd := kingpinApp.Command("bool", "Print the value of a key interpreted as a boolean")
	boolKey := boolCmd.Arg("key", "Configuration key").Required().String()

	keysCmd := kingpinApp.Command("keys", "List all entries of the live store")

	dumpCmd := kingpinApp.Command("dump", "Write the bundled default resource verbatim to stdout")

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *overridesFlag != "" {
		overrides.Overrides = overridesFlag
	}

	if *quietFlag {
		overrides.Quiet = quietFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(effectiveLogLevel(cfg))
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	a, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	switch command {
	case getCmd.FullCommand():
		var fallback *string
		if *getDefault != "" {
			fallback = getDefault
		}
		err = a.Get(os.Stdout, *getKey, fallback)
	case hasCmd.FullCommand():
		err = a.Has(os.Stdout, *hasKey)
	case intCmd.FullCommand():
		err = a.GetInt(os.Stdout, *intKey)
	case int64Cmd.FullCommand():
		err = a.GetInt64(os.Stdout, *int64Key)
	case boolCmd.FullCommand():
		err = a.GetBool(os.Stdout, *boolKey)
	case keysCmd.FullCommand():
		err = a.List(os.Stdout)
	case dumpCmd.FullCommand():
		a.Dump(os.Stdout)
	}

	if err != nil {
		logger.Fatal("command failed", zap.Error(err))
	}
}

// effectiveLogLevel maps the quiet switch onto the log threshold.
func effectiveLogLevel(cfg config.Config) string {
	if cfg.Quiet {
		return "error"
	}
	return cfg.LogLevel
}
