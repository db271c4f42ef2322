package analysis

import (
	"fmt"

	"github.com/mfoss/runconf/schema"
	"gopkg.in/yaml.v3"
)

// Groups, variant names, and the root schema name used by the run
// configuration. Defaults lists reference these, e.g.:
//
//	defaults:
//	  - task: identify_associations_bayes
const (
	RootSchema = "config"

	GroupData  = "data"
	GroupModel = "model"
	GroupTask  = "task"

	VariantBaseData      = "base_data"
	VariantVAE           = "vae"
	VariantVAEDeprecated = "vae_deprecated"

	TaskEncodeData                = "encode_data"
	TaskIdentifyAssociationsBayes = "identify_associations_bayes"
	TaskIdentifyAssociationsTTest = "identify_associations_ttest"
)

// RootConfig is the fully resolved run configuration handed to the pipeline
// components. It is immutable after Load returns: no downstream component
// may mutate it, and any adaptation must compose a new instance.
type RootConfig struct {
	Name string     `yaml:"name"`
	Data DataConfig `yaml:"data"`
	Task TaskConfig `yaml:"task"`

	// Legacy model section and sweep sections; nil when the run does not
	// define them.
	Model              *VAEConfigDeprecated        `yaml:"model"`
	TuneReconstruction *TuningReconstructionConfig `yaml:"tune_reconstruction"`
	TuneStability      *TuningStabilityConfig      `yaml:"tune_stability"`
	TrainLatent        *TrainingLatentConfig       `yaml:"train_latent"`
	TrainAssociation   *TrainingAssociationConfig  `yaml:"train_association"`
}

func rootSchema() *schema.Schema {
	return &schema.Schema{
		Name:     RootSchema,
		Defaults: []schema.Selection{{Group: GroupData, Variant: VariantBaseData}},
		Fields: []schema.Field{
			{Name: "name", Type: schema.String, Required: true},
			{Name: "data", Group: GroupData},
			{Name: "task", Group: GroupTask},
			{Name: "model", Schema: vaeDeprecatedSchema(), Optional: true},
			{Name: "tune_reconstruction", Schema: tuningReconstructionSchema(), Optional: true},
			{Name: "tune_stability", Schema: tuningStabilitySchema(), Optional: true},
			{Name: "train_latent", Schema: trainingLatentSchema(), Optional: true},
			{Name: "train_association", Schema: trainingAssociationSchema(), Optional: true},
		},
	}
}

// NewRegistry returns a registry with every run-configuration schema
// registered. Each call builds a fresh registry so callers never share
// mutable state.
func NewRegistry() (*schema.Registry, error) {
	reg := schema.NewRegistry()
	for _, r := range []struct {
		group, name string
		s           *schema.Schema
	}{
		{schema.RootGroup, RootSchema, rootSchema()},
		{GroupData, VariantBaseData, dataSchema()},
		{GroupModel, VariantVAE, vaeSchema()},
		{GroupModel, VariantVAEDeprecated, vaeDeprecatedSchema()},
		{GroupTask, TaskEncodeData, encodeDataSchema()},
		{GroupTask, TaskIdentifyAssociationsBayes, identifyAssociationsBayesSchema()},
		{GroupTask, TaskIdentifyAssociationsTTest, identifyAssociationsTTestSchema()},
	} {
		if err := reg.Register(r.group, r.name, r.s); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// NewComposer wires a fresh registry with the domain resolver table.
func NewComposer() (*schema.Composer, error) {
	reg, err := NewRegistry()
	if err != nil {
		return nil, err
	}
	return &schema.Composer{Registry: reg, Resolvers: Resolvers()}, nil
}

// Load composes the override documents, in order, into a validated typed run
// configuration. Override documents select task and model variants through
// their defaults lists; later documents win per group and per leaf field.
func Load(overrides ...schema.Document) (*RootConfig, error) {
	c, err := NewComposer()
	if err != nil {
		return nil, err
	}
	composed, err := c.Compose(RootSchema, overrides...)
	if err != nil {
		return nil, err
	}
	return decode(composed)
}

// decode turns the composed document into the typed configuration by
// re-encoding it as YAML and unmarshaling into the struct tree.
func decode(composed *schema.Composed) (*RootConfig, error) {
	data, err := yaml.Marshal(map[string]any(composed.Doc))
	if err != nil {
		return nil, fmt.Errorf("analysis: encode composed document: %w", err)
	}
	var cfg RootConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("analysis: decode composed document: %w", err)
	}
	cfg.Task.Kind = composed.Variants[GroupTask]
	return &cfg, nil
}
