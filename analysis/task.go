package analysis

import "github.com/mfoss/runconf/schema"

// TaskConfig is the composed task section. Kind records which task variant
// the defaults list selected. BatchSize, Model, and TrainingLoop are nil when
// absent; the encode_data task declares none of them, so they are always
// absent there. The association fields are only populated for the
// identify-associations variants, and NumLatent only for the t-test variant.
type TaskConfig struct {
	Kind string `yaml:"-"`

	BatchSize    *int                `yaml:"batch_size"`
	Model        *VAEConfig          `yaml:"model"`
	TrainingLoop *TrainingLoopConfig `yaml:"training_loop"`

	TargetDataset string  `yaml:"target_dataset"`
	TargetValue   string  `yaml:"target_value"`
	NumRefits     int     `yaml:"num_refits"`
	SigThreshold  float64 `yaml:"sig_threshold"`
	SaveRefits    bool    `yaml:"save_refits"`

	NumLatent []int `yaml:"num_latent"`
}

// TrainingLoopConfig configures the training loop collaborator.
type TrainingLoopConfig struct {
	Target             string  `yaml:"target"`
	NumEpochs          int     `yaml:"num_epochs"`
	LR                 float64 `yaml:"lr"`
	KLDWarmupSteps     []int   `yaml:"kld_warmup_steps"`
	BatchDilationSteps []int   `yaml:"batch_dilation_steps"`
	EarlyStopping      bool    `yaml:"early_stopping"`
	Patience           int     `yaml:"patience"`
}

func trainingLoopSchema() *schema.Schema {
	return &schema.Schema{
		Name: "training_loop",
		Fields: []schema.Field{
			{Name: "target", Type: schema.String, Default: TrainingLoopTarget},
			{Name: "num_epochs", Type: schema.Int, Required: true},
			{Name: "lr", Type: schema.Float, Required: true},
			{Name: "kld_warmup_steps", Type: schema.IntList, Required: true},
			{Name: "batch_dilation_steps", Type: schema.IntList, Required: true},
			{Name: "early_stopping", Type: schema.Bool, Required: true},
			{Name: "patience", Type: schema.Int, Required: true},
		},
	}
}

// encodeDataSchema declares no fields: the data-encoding task trains no
// model, so batch_size, model, and training_loop stay absent and any attempt
// to set them is an unknown-field violation.
func encodeDataSchema() *schema.Schema {
	return &schema.Schema{Name: TaskEncodeData}
}

// identifyAssociationsFields is the field set shared by both association
// task variants. Shared by composition, not inheritance: each variant schema
// includes these fields explicitly.
func identifyAssociationsFields() []schema.Field {
	return []schema.Field{
		{Name: "batch_size", Type: schema.Int},
		{Name: "model", Group: GroupModel, Fallback: VariantVAE, Optional: true},
		{Name: "training_loop", Schema: trainingLoopSchema(), Optional: true},
		{Name: "target_dataset", Type: schema.String, Required: true},
		{Name: "target_value", Type: schema.String, Required: true},
		{Name: "num_refits", Type: schema.Int, Required: true},
		{Name: "sig_threshold", Type: schema.Float, Default: 0.05, Min: schema.Bound(0), Max: schema.Bound(1)},
		{Name: "save_refits", Type: schema.Bool, Default: false},
	}
}

func identifyAssociationsBayesSchema() *schema.Schema {
	return &schema.Schema{
		Name:   TaskIdentifyAssociationsBayes,
		Fields: identifyAssociationsFields(),
	}
}

func identifyAssociationsTTestSchema() *schema.Schema {
	// The t-test approach trains one model per latent dimension and needs
	// exactly four of them.
	fields := append(identifyAssociationsFields(), schema.Field{
		Name: "num_latent", Type: schema.IntList, Required: true, Len: 4,
	})
	return &schema.Schema{
		Name:   TaskIdentifyAssociationsTTest,
		Fields: fields,
	}
}
