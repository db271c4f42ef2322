package analysis

import "github.com/mfoss/runconf/schema"

// Sweep sections are flat records whose sequence fields are hyperparameter
// grids driven by repeated training runs outside this core.

// TuningReconstructionConfig sweeps model shapes for reconstruction quality.
type TuningReconstructionConfig struct {
	UserConfig           string    `yaml:"user_config"`
	NumHidden            []int     `yaml:"num_hidden"`
	NumLatent            []int     `yaml:"num_latent"`
	NumLayers            []int     `yaml:"num_layers"`
	Beta                 []float64 `yaml:"beta"`
	Dropout              []float64 `yaml:"dropout"`
	BatchSizes           []int     `yaml:"batch_sizes"`
	Repeats              int       `yaml:"repeats"`
	MaxParamCombosToSave int       `yaml:"max_param_combos_to_save"`
}

// TuningStabilityConfig sweeps the same grid for latent-space stability.
type TuningStabilityConfig struct {
	UserConfig     string    `yaml:"user_config"`
	NumHidden      []int     `yaml:"num_hidden"`
	NumLatent      []int     `yaml:"num_latent"`
	NumLayers      []int     `yaml:"num_layers"`
	Beta           []float64 `yaml:"beta"`
	Dropout        []float64 `yaml:"dropout"`
	BatchSizes     []int     `yaml:"batch_sizes"`
	Repeat         int       `yaml:"repeat"`
	TunedNumEpochs int       `yaml:"tuned_num_epochs"`
}

// TrainingLatentConfig trains the tuned model once for the latent analysis.
type TrainingLatentConfig struct {
	UserConfig     string  `yaml:"user_config"`
	NumHidden      int     `yaml:"num_hidden"`
	NumLatent      int     `yaml:"num_latent"`
	NumLayers      int     `yaml:"num_layers"`
	Dropout        float64 `yaml:"dropout"`
	Beta           float64 `yaml:"beta"`
	BatchSizes     int     `yaml:"batch_sizes"`
	TunedNumEpochs int     `yaml:"tuned_num_epochs"`
}

// TrainingAssociationConfig drives the repeated association training runs.
type TrainingAssociationConfig struct {
	UserConfig     string  `yaml:"user_config"`
	NumHidden      int     `yaml:"num_hidden"`
	NumLatent      []int   `yaml:"num_latent"`
	NumLayers      int     `yaml:"num_layers"`
	Dropout        float64 `yaml:"dropout"`
	Beta           float64 `yaml:"beta"`
	BatchSizes     int     `yaml:"batch_sizes"`
	Repeats        int     `yaml:"repeats"`
	TunedNumEpochs int     `yaml:"tuned_num_epochs"`
}

func tuningReconstructionSchema() *schema.Schema {
	return &schema.Schema{
		Name: "tune_reconstruction",
		Fields: []schema.Field{
			{Name: "user_config", Type: schema.String, Required: true},
			{Name: "num_hidden", Type: schema.IntList, Required: true},
			{Name: "num_latent", Type: schema.IntList, Required: true},
			{Name: "num_layers", Type: schema.IntList, Required: true},
			{Name: "beta", Type: schema.FloatList, Required: true},
			{Name: "dropout", Type: schema.FloatList, Required: true},
			{Name: "batch_sizes", Type: schema.IntList, Required: true},
			{Name: "repeats", Type: schema.Int, Required: true},
			{Name: "max_param_combos_to_save", Type: schema.Int, Required: true},
		},
	}
}

func tuningStabilitySchema() *schema.Schema {
	return &schema.Schema{
		Name: "tune_stability",
		Fields: []schema.Field{
			{Name: "user_config", Type: schema.String, Required: true},
			{Name: "num_hidden", Type: schema.IntList, Required: true},
			{Name: "num_latent", Type: schema.IntList, Required: true},
			{Name: "num_layers", Type: schema.IntList, Required: true},
			{Name: "beta", Type: schema.FloatList, Required: true},
			{Name: "dropout", Type: schema.FloatList, Required: true},
			{Name: "batch_sizes", Type: schema.IntList, Required: true},
			{Name: "repeat", Type: schema.Int, Required: true},
			{Name: "tuned_num_epochs", Type: schema.Int, Required: true},
		},
	}
}

func trainingLatentSchema() *schema.Schema {
	return &schema.Schema{
		Name: "train_latent",
		Fields: []schema.Field{
			{Name: "user_config", Type: schema.String, Required: true},
			{Name: "num_hidden", Type: schema.Int, Required: true},
			{Name: "num_latent", Type: schema.Int, Required: true},
			{Name: "num_layers", Type: schema.Int, Required: true},
			{Name: "dropout", Type: schema.Float, Required: true},
			{Name: "beta", Type: schema.Float, Required: true},
			{Name: "batch_sizes", Type: schema.Int, Required: true},
			{Name: "tuned_num_epochs", Type: schema.Int, Required: true},
		},
	}
}

func trainingAssociationSchema() *schema.Schema {
	return &schema.Schema{
		Name: "train_association",
		Fields: []schema.Field{
			{Name: "user_config", Type: schema.String, Required: true},
			{Name: "num_hidden", Type: schema.Int, Required: true},
			{Name: "num_latent", Type: schema.IntList, Required: true},
			{Name: "num_layers", Type: schema.Int, Required: true},
			{Name: "dropout", Type: schema.Float, Required: true},
			{Name: "beta", Type: schema.Float, Required: true},
			{Name: "batch_sizes", Type: schema.Int, Required: true},
			{Name: "repeats", Type: schema.Int, Required: true},
			{Name: "tuned_num_epochs", Type: schema.Int, Required: true},
		},
	}
}
