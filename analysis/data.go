package analysis

import (
	"fmt"

	"github.com/mfoss/runconf/schema"
)

// InputSpec references one categorical or continuous data source. In YAML an
// input can be written as a bare name or as a mapping with a weight:
//
//	categorical_inputs:
//	  - diagnosis
//	  - name: medication
//	    weight: 2.0
type InputSpec struct {
	Name   string  `yaml:"name"`
	Weight float64 `yaml:"weight"`
}

// DataConfig describes the datasets a run reads and the derived name/weight
// sequences kept in step with the input lists.
type DataConfig struct {
	UserConf           string      `yaml:"user_conf"`
	NAValue            string      `yaml:"na_value"`
	RawDataPath        string      `yaml:"raw_data_path"`
	InterimDataPath    string      `yaml:"interim_data_path"`
	ProcessedDataPath  string      `yaml:"processed_data_path"`
	HeadersPath        string      `yaml:"headers_path"`
	Version            string      `yaml:"version"`
	IDsFileName        string      `yaml:"ids_file_name"`
	IDsHasHeader       bool        `yaml:"ids_has_header"`
	IDsColName         string      `yaml:"ids_colname"`
	CategoricalInputs  []InputSpec `yaml:"categorical_inputs"`
	ContinuousInputs   []InputSpec `yaml:"continuous_inputs"`
	DataOfInterest     string      `yaml:"data_of_interest"`
	CategoricalNames   []string    `yaml:"categorical_names"`
	ContinuousNames    []string    `yaml:"continuous_names"`
	CategoricalWeights []float64   `yaml:"categorical_weights"`
	ContinuousWeights  []float64   `yaml:"continuous_weights"`

	FeaturesToVisualize []string `yaml:"data_features_to_visualize_notebook4"`
	WriteOmicsResults   []string `yaml:"write_omics_results_notebook5"`
}

func inputSchema() *schema.Schema {
	return &schema.Schema{
		Name: "input",
		Fields: []schema.Field{
			{Name: "name", Type: schema.String, Required: true},
			{Name: "weight", Type: schema.Float, Default: 1.0},
		},
	}
}

func dataSchema() *schema.Schema {
	return &schema.Schema{
		Name: VariantBaseData,
		Fields: []schema.Field{
			{Name: "user_conf", Type: schema.String, Required: true},
			{Name: "na_value", Type: schema.String, Required: true},
			{Name: "raw_data_path", Type: schema.String, Required: true},
			{Name: "interim_data_path", Type: schema.String, Required: true},
			{Name: "processed_data_path", Type: schema.String, Required: true},
			{Name: "headers_path", Type: schema.String, Required: true},
			{Name: "version", Type: schema.String, Required: true},
			{Name: "ids_file_name", Type: schema.String, Required: true},
			{Name: "ids_has_header", Type: schema.Bool, Required: true},
			{Name: "ids_colname", Type: schema.String, Required: true},
			{Name: "categorical_inputs", Schema: inputSchema(), List: true, Required: true, Shorthand: "name"},
			{Name: "continuous_inputs", Schema: inputSchema(), List: true, Required: true, Shorthand: "name"},
			{Name: "data_of_interest", Type: schema.String, Required: true},
			{Name: "categorical_names", Type: schema.StringList, Default: "names(data.categorical_inputs)", SameLenAs: "categorical_inputs"},
			{Name: "continuous_names", Type: schema.StringList, Default: "names(data.continuous_inputs)", SameLenAs: "continuous_inputs"},
			{Name: "categorical_weights", Type: schema.FloatList, Default: "weights(data.categorical_inputs)", SameLenAs: "categorical_inputs"},
			{Name: "continuous_weights", Type: schema.FloatList, Default: "weights(data.continuous_inputs)", SameLenAs: "continuous_inputs"},
			{Name: "data_features_to_visualize_notebook4", Type: schema.StringList},
			{Name: "write_omics_results_notebook5", Type: schema.StringList},
		},
	}
}

// Resolvers returns the resolver table for the run configuration: "names"
// and "weights" extract the respective field from every element of an input
// list, preserving order and length.
func Resolvers() schema.Resolvers {
	return schema.Resolvers{
		"names":   extractNames,
		"weights": extractWeights,
	}
}

func extractNames(arg any) (any, error) {
	list, ok := arg.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a sequence of inputs, got %T", arg)
	}
	out := make([]string, 0, len(list))
	for i, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("input %d: expected a mapping, got %T", i, el)
		}
		name, ok := m["name"].(string)
		if !ok {
			return nil, fmt.Errorf("input %d: name missing", i)
		}
		out = append(out, name)
	}
	return out, nil
}

func extractWeights(arg any) (any, error) {
	list, ok := arg.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a sequence of inputs, got %T", arg)
	}
	out := make([]float64, 0, len(list))
	for i, el := range list {
		m, ok := el.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("input %d: expected a mapping, got %T", i, el)
		}
		w, ok := asFloat(m["weight"])
		if !ok {
			return nil, fmt.Errorf("input %d: weight missing", i)
		}
		out = append(out, w)
	}
	return out, nil
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
