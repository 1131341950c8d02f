package cmd

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/TheusHen/icprf/icprf/cprf"
	"github.com/TheusHen/icprf/icprf/crypto"
	"github.com/TheusHen/icprf/icprf/identity"
)

const (
	optionNameGenerator  = "generator"
	optionNameSeed       = "seed"
	optionNameSeedPhrase = "seed-phrase"
	optionNameVerbosity  = "verbosity"
	optionNameFrom       = "from"
	optionNameCount      = "count"
	optionNameIndex      = "index"
	optionNameSignSeed   = "sign-seed"
	optionNameSigner     = "signer"
)

// seedPhraseInfo binds master secrets derived from a phrase to this tool.
const seedPhraseInfo = "icprf-master-secret"

// defaultSeed is 32 bytes of 0x2a.
var defaultSeed = strings.Repeat("2a", len(cprf.MasterSecret{}))

func init() {
	cobra.EnableCommandSorting = false
}

type command struct {
	root    *cobra.Command
	config  *viper.Viper
	cfgFile string
	homeDir string
}

type option func(*command)

func newCommand(opts ...option) (c *command, err error) {
	c = &command{
		root: &cobra.Command{
			Use:           "icprf",
			Short:         "Incrementally constrained PRF tool",
			SilenceErrors: true,
			SilenceUsage:  true,
			PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
				return c.initConfig()
			},
		},
	}

	for _, o := range opts {
		o(c)
	}

	if err := c.setHomeDir(); err != nil {
		return nil, err
	}

	c.initGlobalFlags()
	c.initProfileCmd()
	c.initEvalCmd()
	c.initConstrainCmd()
	c.initDiscloseCmd()
	c.initSealCmd()
	c.initVerifyCmd()
	c.initSignerCmd()
	c.initVersionCmd()

	return c, nil
}

func (c *command) Execute() (err error) {
	return c.root.Execute()
}

// Execute parses command line arguments and runs appropriate functions.
func Execute() (err error) {
	c, err := newCommand()
	if err != nil {
		return err
	}
	return c.Execute()
}

func (c *command) initGlobalFlags() {
	globalFlags := c.root.PersistentFlags()
	globalFlags.StringVar(&c.cfgFile, "config", "", "config file (default is $HOME/.icprf.yaml)")
	globalFlags.String(optionNameGenerator, "chacha20", "generator: "+strings.Join(generatorNames(), ", "))
	globalFlags.String(optionNameSeed, defaultSeed, "master secret, 32 bytes hex encoded")
	globalFlags.String(optionNameSeedPhrase, "", "derive the master secret from this phrase instead of --seed")
	globalFlags.String(optionNameVerbosity, "info", "log verbosity level 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=trace")
}

func (c *command) initConfig() (err error) {
	config := viper.New()
	configName := ".icprf"
	if c.cfgFile != "" {
		// Use config file from the flag.
		config.SetConfigFile(c.cfgFile)
	} else {
		// Search config in home directory with name ".icprf" (without extension).
		config.AddConfigPath(c.homeDir)
		config.SetConfigName(configName)
	}

	// Environment
	config.SetEnvPrefix("icprf")
	config.AutomaticEnv() // read in environment variables that match
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	// If a config file is found, read it in.
	if err := config.ReadInConfig(); err != nil {
		var e viper.ConfigFileNotFoundError
		if !errors.As(err, &e) {
			return err
		}
	}
	c.config = config
	return nil
}

func (c *command) setHomeDir() (err error) {
	if c.homeDir != "" {
		return
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	c.homeDir = filepath.Clean(dir)
	return nil
}

// bindFlags makes the flags of cmd, including inherited ones, visible
// through the config alongside the environment and config file values.
func (c *command) bindFlags(cmd *cobra.Command) error {
	return c.config.BindPFlags(cmd.Flags())
}

func (c *command) masterSecret() (cprf.MasterSecret, error) {
	if phrase := c.config.GetString(optionNameSeedPhrase); phrase != "" {
		return crypto.DeriveMasterSecret([]byte(phrase), nil, []byte(seedPhraseInfo))
	}
	raw, err := hex.DecodeString(c.config.GetString(optionNameSeed))
	if err != nil {
		return cprf.MasterSecret{}, fmt.Errorf("parse %s: %w", optionNameSeed, err)
	}
	var sk cprf.MasterSecret
	if len(raw) != len(sk) {
		return cprf.MasterSecret{}, fmt.Errorf("%s must be %d bytes, got %d", optionNameSeed, len(sk), len(raw))
	}
	copy(sk[:], raw)
	return sk, nil
}

// signingKey returns the key pair handovers are signed with, or nil when no
// signing seed is configured.
func (c *command) signingKey() (*identity.KeyPair, error) {
	seed := c.config.GetString(optionNameSignSeed)
	if seed == "" {
		return nil, nil
	}
	raw, err := hex.DecodeString(seed)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", optionNameSignSeed, err)
	}
	kp, err := identity.NewKeyPairFromSeed(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be %d bytes: %w", optionNameSignSeed, identity.SeedSize, err)
	}
	return &kp, nil
}

// trustedSigner returns the signer a verified stream must be handed over
// by, or nil when any stream is accepted.
func (c *command) trustedSigner() (*identity.SignerID, error) {
	s := c.config.GetString(optionNameSigner)
	if s == "" {
		return nil, nil
	}
	id, err := identity.ParseSignerIDHex(s)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", optionNameSigner, err)
	}
	return &id, nil
}

func (c *command) runner() (runner, error) {
	name := c.config.GetString(optionNameGenerator)
	r, ok := generators[name]
	if !ok {
		return nil, fmt.Errorf("unknown generator %q", name)
	}
	return r, nil
}

func newLogger(cmd *cobra.Command, verbosity string) (*logrus.Logger, error) {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
	}
	switch verbosity {
	case "0", "silent":
		logger.SetOutput(io.Discard)
	case "1", "error":
		logger.SetLevel(logrus.ErrorLevel)
	case "2", "warn":
		logger.SetLevel(logrus.WarnLevel)
	case "3", "info":
		logger.SetLevel(logrus.InfoLevel)
	case "4", "debug":
		logger.SetLevel(logrus.DebugLevel)
	case "5", "trace":
		logger.SetLevel(logrus.TraceLevel)
	default:
		return nil, fmt.Errorf("unknown verbosity level %q", verbosity)
	}
	return logger, nil
}

func (c *command) logger(cmd *cobra.Command) (*logrus.Logger, error) {
	return newLogger(cmd, c.config.GetString(optionNameVerbosity))
}
