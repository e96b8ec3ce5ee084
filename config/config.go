// Package config holds the run configuration: input files, feature columns,
// binning and data preparation hyperparameters.
package config

import "bytes"
import "encoding/json"
import "os"
import "sort"
import "sync"

import "github.com/pkg/errors"
import "github.com/santhosh-tekuri/jsonschema/v5"
import "gopkg.in/yaml.v3"

// Config is the run configuration
type Config struct {
	Dataset  Dataset  `yaml:"dataset"`
	Features Features `yaml:"features"`
	Hyper    Hyper    `yaml:"hyper"`
}

// Dataset lists the input files. File names are given without the .root suffix.
type Dataset struct {
	Path            string    `yaml:"path"`
	Tree            string    `yaml:"tree"`
	Signal          []string  `yaml:"signal"`
	Background      []string  `yaml:"background"`
	SampleFractions []float64 `yaml:"sample_fractions"`
	BaselineSignal  string    `yaml:"baseline_signal"`
	MediatorParam   string    `yaml:"mediator_param"`
}

// Features names the constituent branches
type Features struct {
	Train   []string `yaml:"train"`
	Uniform string   `yaml:"uniform"`
	MT      string   `yaml:"mT"`
	Weight  string   `yaml:"weight"`
}

// Hyper holds data preparation hyperparameters
type Hyper struct {
	PTBins          []float64 `yaml:"pTBins"`
	NumConst        int       `yaml:"numConst"`
	MinConstituents int       `yaml:"minConstituents"`
	MaxMultiple     int       `yaml:"maxMultiple"`
	NumEpochSets    int       `yaml:"numEpochSets"`
	BalanceSeed     int64     `yaml:"balanceSeed"`
	SplitSeed       int64     `yaml:"splitSeed"`
}

// Branches every configuration must train on, they identify jets and place constituents
var RequiredTrain = []string{"jCstEta", "jCstPhi", "jCstEvtNum", "jCstJNum"}

const schema = `{
  "type": "object",
  "required": ["dataset", "features"],
  "properties": {
    "dataset": {
      "type": "object",
      "required": ["path", "signal", "background"],
      "properties": {
        "path": {"type": "string"},
        "tree": {"type": "string", "minLength": 1},
        "signal": {"type": "array", "minItems": 1, "items": {"type": "string"}},
        "background": {"type": "array", "minItems": 1, "items": {"type": "string"}},
        "sample_fractions": {"type": "array", "minItems": 3, "maxItems": 3, "items": {"type": "number", "minimum": 0}},
        "baseline_signal": {"type": "string"},
        "mediator_param": {"type": "string"}
      },
      "additionalProperties": false
    },
    "features": {
      "type": "object",
      "required": ["train", "uniform", "mT", "weight"],
      "properties": {
        "train": {"type": "array", "minItems": 1, "items": {"type": "string"}},
        "uniform": {"type": "string"},
        "mT": {"type": "string"},
        "weight": {"type": "string"}
      },
      "additionalProperties": false
    },
    "hyper": {
      "type": "object",
      "properties": {
        "pTBins": {"type": "array", "items": {"type": "number"}},
        "numConst": {"type": "integer", "minimum": 1},
        "minConstituents": {"type": "integer", "minimum": 0},
        "maxMultiple": {"type": "integer", "minimum": 1},
        "numEpochSets": {"type": "integer", "minimum": 1},
        "balanceSeed": {"type": "integer"},
        "splitSeed": {"type": "integer"}
      },
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func compileSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = jsonschema.CompileString("config.schema.json", schema)
	})
	return compiledSchema, schemaErr
}

// Load reads a YAML configuration file, expanding environment variables
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}
	return Parse([]byte(os.ExpandEnv(string(data))))
}

// Parse validates a YAML document against the schema, decodes it and applies defaults
func Parse(data []byte) (*Config, error) {
	var raw interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	// round trip through JSON so the validator sees JSON types
	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert config")
	}
	var decoded interface{}
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&decoded); err != nil {
		return nil, errors.Wrap(err, "failed to convert config")
	}
	sch, err := compileSchema()
	if err != nil {
		return nil, errors.Wrap(err, "config schema")
	}
	if err := sch.Validate(decoded); err != nil {
		return nil, errors.Wrap(err, "config invalid")
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// defaults holds every default value. Parse decodes over it, so a key present
// in the document wins even when its value is zero.
func defaults() Config {
	return Config{
		Dataset: Dataset{
			Tree:            "tree",
			SampleFractions: []float64{0.8, 0.1, 0.1},
			BaselineSignal:  "tree_SVJ_mZprime-3000_mDark-20_rinv-0.3_alpha-peak_MC2017",
			MediatorParam:   "mMed",
		},
		Hyper: Hyper{
			NumConst:        100,
			MinConstituents: 105238,
			MaxMultiple:     1,
			NumEpochSets:    10,
			BalanceSeed:     2022,
			SplitSeed:       42,
		},
	}
}

// Default returns a configuration with every default applied and no input files
func Default() *Config {
	cfg := defaults()
	cfg.Features.Train = append([]string{}, RequiredTrain...)
	return &cfg
}

// Validate checks constraints the schema cannot express
func (c *Config) Validate() error {
	have := make(map[string]bool, len(c.Features.Train))
	for _, v := range c.Features.Train {
		if have[v] {
			return errors.Errorf("features.train lists %q twice", v)
		}
		have[v] = true
	}
	for _, v := range RequiredTrain {
		if !have[v] {
			return errors.Errorf("features.train must contain %q", v)
		}
	}
	if !sort.Float64sAreSorted(c.Hyper.PTBins) {
		return errors.New("hyper.pTBins must be increasing")
	}
	if c.Hyper.NumConst < 1 {
		return errors.Errorf("hyper.numConst must be positive, got %d", c.Hyper.NumConst)
	}
	if len(c.Dataset.SampleFractions) != 3 {
		return errors.Errorf("dataset.sample_fractions needs three numbers, got %d", len(c.Dataset.SampleFractions))
	}
	var sum float64
	for _, f := range c.Dataset.SampleFractions {
		sum += f
	}
	if sum < 1-1e-9 || sum > 1+1e-9 {
		return errors.Errorf("dataset.sample_fractions sum to %v, not 1.0", sum)
	}
	return nil
}

// Write stores the effective configuration as YAML
func (c *Config) Write(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "failed to write %s", path)
}
