// Package config holds the export settings, layered by viper:
// defaults, then an optional YAML file, then CLONEXPORT_* environment
// variables, then command-line flags.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"clonexport/core/feature"
	"clonexport/internal/fields"
)

// EnvPrefix prefixes every environment override, e.g.
// CLONEXPORT_MINIMAL_CLONE_FRACTION.
const EnvPrefix = "CLONEXPORT"

// Keys shared by flags, config file and environment.
const (
	KeyFilterOutOfFrames = "filter-out-of-frames"
	KeyFilterStops       = "filter-stops"
	KeyMinFraction       = "minimal-clone-fraction"
	KeyMinCount          = "minimal-clone-count"
	KeyLimit             = "limit"
	KeyCloneIDs          = "clone-ids"
	KeyExcludeIDs        = "exclude-ids"
	KeyFields            = "fields"
	KeyFormat            = "format"
	KeyFastaFeature      = "fasta-feature"
	KeyNoHeader          = "no-header"
	KeyNoProgress        = "no-progress"
	KeyProgressInterval  = "progress-interval"
	KeyMetricsFile       = "metrics-file"
	KeyNoMatchExitCode   = "no-match-exit-code"
	KeyLogLevel          = "log-level"
	KeyLogJSON           = "log-json"
	KeyQuiet             = "quiet"
)

// Config is the resolved export configuration.
type Config struct {
	FilterOutOfFrames bool `mapstructure:"filter-out-of-frames"`
	FilterStops       bool `mapstructure:"filter-stops"`

	MinFraction float64 `mapstructure:"minimal-clone-fraction" validate:"gte=0,lte=1"`
	MinCount    int64   `mapstructure:"minimal-clone-count" validate:"gte=0"`
	// Limit caps the number of exported clones; 0 means no cap.
	Limit int `mapstructure:"limit" validate:"gte=0"`

	CloneIDs   []int `mapstructure:"clone-ids"`
	ExcludeIDs []int `mapstructure:"exclude-ids"`

	Fields       string `mapstructure:"fields"`
	Format       string `mapstructure:"format" validate:"oneof=tsv jsonl fasta"`
	FastaFeature string `mapstructure:"fasta-feature" validate:"genefeature"`
	NoHeader     bool   `mapstructure:"no-header"`

	NoProgress       bool          `mapstructure:"no-progress"`
	ProgressInterval time.Duration `mapstructure:"progress-interval" validate:"gt=0"`
	MetricsFile      string        `mapstructure:"metrics-file"`
	NoMatchExitCode  int           `mapstructure:"no-match-exit-code" validate:"gte=0,lte=255"`

	LogLevel string `mapstructure:"log-level" validate:"oneof=debug info warn warning error"`
	LogJSON  bool   `mapstructure:"log-json"`
	Quiet    bool   `mapstructure:"quiet"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Fields:           fields.DefaultSpec,
		Format:           "tsv",
		FastaFeature:     string(feature.CDR3),
		ProgressInterval: time.Second,
		NoMatchExitCode:  1,
		LogLevel:         "info",
	}
}

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("mapstructure"), ",", 2)[0]
	})
	_ = v.RegisterValidation("genefeature", func(fl validator.FieldLevel) bool {
		_, err := feature.Parse(fl.Field().String())
		return err == nil
	})
	return v
}

// RegisterFlags adds the export flags to fs with their defaults.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.BoolP(KeyFilterOutOfFrames, "o", d.FilterOutOfFrames, "exclude clones with out-of-frame CDR3 (fractions are recalculated)")
	fs.BoolP(KeyFilterStops, "t", d.FilterStops, "exclude clones with stop codons in coding features (fractions are recalculated)")
	fs.Float64P(KeyMinFraction, "q", d.MinFraction, "stop at the first clone with fraction below this value")
	fs.Int64P(KeyMinCount, "m", d.MinCount, "stop at the first clone with count below this value")
	fs.IntP(KeyLimit, "n", d.Limit, "export at most N clones (0 = all)")
	fs.IntSlice(KeyCloneIDs, nil, "export only these clone ids")
	fs.IntSlice(KeyExcludeIDs, nil, "never export these clone ids")
	fs.StringP(KeyFields, "f", d.Fields, "column spec (see 'clonexport export --help')")
	fs.String(KeyFormat, d.Format, "output format: tsv | jsonl | fasta")
	fs.String(KeyFastaFeature, d.FastaFeature, "gene feature written by --format fasta")
	fs.Bool(KeyNoHeader, d.NoHeader, "omit the tsv header line")
	fs.Bool(KeyNoProgress, d.NoProgress, "do not report progress on stderr")
	fs.Duration(KeyProgressInterval, d.ProgressInterval, "progress report interval")
	fs.String(KeyMetricsFile, d.MetricsFile, "write run metrics to this Prometheus textfile")
	fs.Int(KeyNoMatchExitCode, d.NoMatchExitCode, "exit code when no clone is written")
}

// RegisterLogFlags adds the logging flags (persistent on the root command).
func RegisterLogFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyLogLevel, d.LogLevel, "log level: debug | info | warn | error")
	fs.Bool(KeyLogJSON, d.LogJSON, "log as JSON lines")
	fs.Bool(KeyQuiet, d.Quiet, "only log errors")
}

// NewViper returns a viper instance with defaults and environment lookup.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Default()
	// every key needs a default so AutomaticEnv reaches it on Unmarshal
	for k, val := range map[string]any{
		KeyFilterOutOfFrames: d.FilterOutOfFrames,
		KeyFilterStops:       d.FilterStops,
		KeyMinFraction:       d.MinFraction,
		KeyMinCount:          d.MinCount,
		KeyLimit:             d.Limit,
		KeyCloneIDs:          []int{},
		KeyExcludeIDs:        []int{},
		KeyFields:            d.Fields,
		KeyFormat:            d.Format,
		KeyFastaFeature:      d.FastaFeature,
		KeyNoHeader:          d.NoHeader,
		KeyNoProgress:        d.NoProgress,
		KeyProgressInterval:  d.ProgressInterval,
		KeyMetricsFile:       d.MetricsFile,
		KeyNoMatchExitCode:   d.NoMatchExitCode,
		KeyLogLevel:          d.LogLevel,
		KeyLogJSON:           d.LogJSON,
		KeyQuiet:             d.Quiet,
	} {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional YAML file, then decodes and validates v.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges and enumerations.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %q (value %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}
