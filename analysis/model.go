package analysis

import "github.com/mfoss/runconf/schema"

// Factory identifiers for the constructible components a run references.
// They are opaque here: the configuration layer only stores and validates
// them; an external factory turns them into instances.
const (
	VAETarget          = "models.vae.VAE"
	TrainingLoopTarget = "training.training_loop"
)

// VAEConfig holds the hyperparameters of the variational autoencoder.
type VAEConfig struct {
	Target             string  `yaml:"target"`
	CUDA               bool    `yaml:"cuda"`
	CategoricalWeights []int   `yaml:"categorical_weights"`
	ContinuousWeights  []int   `yaml:"continuous_weights"`
	NumHidden          []int   `yaml:"num_hidden"`
	NumLatent          int     `yaml:"num_latent"`
	Beta               float64 `yaml:"beta"`
	Dropout            float64 `yaml:"dropout"`
}

// VAEConfigDeprecated is the legacy model shape. It coexists with VAEConfig
// so old run definitions keep composing.
type VAEConfigDeprecated struct {
	Target     string  `yaml:"target"`
	UserConf   string  `yaml:"user_conf"`
	Seed       int     `yaml:"seed"`
	CUDA       bool    `yaml:"cuda"`
	LRate      float64 `yaml:"lrate"`
	NumEpochs  int     `yaml:"num_epochs"`
	Patience   int     `yaml:"patience"`
	KLDSteps   []int   `yaml:"kld_steps"`
	BatchSteps []int   `yaml:"batch_steps"`
}

func vaeSchema() *schema.Schema {
	return &schema.Schema{
		Name: VariantVAE,
		Fields: []schema.Field{
			{Name: "target", Type: schema.String, Default: VAETarget},
			{Name: "cuda", Type: schema.Bool, Default: false},
			{Name: "categorical_weights", Type: schema.IntList, Required: true},
			{Name: "continuous_weights", Type: schema.IntList, Required: true},
			{Name: "num_hidden", Type: schema.IntList, Required: true},
			{Name: "num_latent", Type: schema.Int, Required: true},
			{Name: "beta", Type: schema.Float, Required: true},
			{Name: "dropout", Type: schema.Float, Required: true},
		},
	}
}

func vaeDeprecatedSchema() *schema.Schema {
	return &schema.Schema{
		Name: VariantVAEDeprecated,
		Fields: []schema.Field{
			{Name: "target", Type: schema.String, Required: true},
			{Name: "user_conf", Type: schema.String, Required: true},
			{Name: "seed", Type: schema.Int, Required: true},
			{Name: "cuda", Type: schema.Bool, Required: true},
			{Name: "lrate", Type: schema.Float, Required: true},
			{Name: "num_epochs", Type: schema.Int, Required: true},
			{Name: "patience", Type: schema.Int, Required: true},
			{Name: "kld_steps", Type: schema.IntList, Required: true},
			{Name: "batch_steps", Type: schema.IntList, Required: true},
		},
	}
}
