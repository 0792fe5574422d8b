package domain

// ResultVisibility controls which party may view computation results.
type ResultVisibility int

const (
	ResultVisibilityPublic ResultVisibility = iota
	ResultVisibilityPublisher
	ResultVisibilityPartner
)

// AttributionRule maps a conversion to the exposure it is attributed to.
type AttributionRule string

const (
	AttributionLastClick1D       AttributionRule = "last_click_1d"
	AttributionLastClick7D       AttributionRule = "last_click_7d"
	AttributionLastClick28D      AttributionRule = "last_click_28d"
	AttributionLastTouch1D       AttributionRule = "last_touch_1d"
	AttributionLastTouch7D       AttributionRule = "last_touch_7d"
	AttributionLastTouch28D      AttributionRule = "last_touch_28d"
	AttributionLastClick2To7D    AttributionRule = "last_click_2_7d"
	AttributionLastTouch2To7D    AttributionRule = "last_touch_2_7d"
	AttributionLastClick1DTarget AttributionRule = "last_click_1d_targetid"
)

// AggregationType is the level statistics are aggregated at.
type AggregationType string

const AggregationMeasurement AggregationType = "measurement"

// BreakdownKey ties an instance to the cell/objective pair it belongs to.
type BreakdownKey struct {
	CellID      string `json:"cell_id" yaml:"cell_id"`
	ObjectiveID string `json:"objective_id" yaml:"objective_id"`
}

// PostProcessingData carries fields forwarded to the post-processing tier.
type PostProcessingData struct {
	DatasetID string   `json:"dataset_id,omitempty" yaml:"dataset_id,omitempty"`
	S3Keys    []string `json:"s3_keys,omitempty" yaml:"s3_keys,omitempty"`
}

// PCEConfig describes the cloud environment an instance is provisioned in.
type PCEConfig struct {
	Region         string `json:"region" yaml:"region"`
	ClusterName    string `json:"cluster_name" yaml:"cluster_name"`
	SubnetID       string `json:"subnet_id,omitempty" yaml:"subnet_id,omitempty"`
	TaskDefinition string `json:"task_definition,omitempty" yaml:"task_definition,omitempty"`
}

// CommonProductConfig holds the product settings shared by the lift and
// attribution variants. It carries no hook logic and is serialized as-is.
type CommonProductConfig struct {
	InputPath string `json:"input_path" yaml:"input_path"`
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Optional at creation time; the product tier may fill them in later.
	HMACKey     string `json:"hmac_key,omitempty" yaml:"hmac_key,omitempty"`
	PaddingSize int    `json:"padding_size,omitempty" yaml:"padding_size,omitempty"`

	ResultVisibility ResultVisibility `json:"result_visibility" yaml:"result_visibility"`

	PIDUseRowNumbers  bool           `json:"pid_use_row_numbers" yaml:"pid_use_row_numbers"`
	MultikeyEnabled   bool           `json:"multikey_enabled" yaml:"multikey_enabled"`
	PIDMaxColumnCount int            `json:"pid_max_column_count" yaml:"pid_max_column_count"`
	PIDConfigs        map[string]any `json:"pid_configs,omitempty" yaml:"pid_configs,omitempty"`

	PostProcessingData *PostProcessingData `json:"post_processing_data,omitempty" yaml:"post_processing_data,omitempty"`
}

// ProductConfig is the base aggregate embedded by the concrete variants.
type ProductConfig struct {
	Common CommonProductConfig `json:"common" yaml:"common"`
}

// AttributionConfig is the product configuration for attribution runs.
type AttributionConfig struct {
	ProductConfig   `yaml:",inline"`
	AggregationType AggregationType `json:"aggregation_type" yaml:"aggregation_type"`
	AttributionRule AttributionRule `json:"attribution_rule" yaml:"attribution_rule"`
}

// LiftConfig is the product configuration for lift runs.
type LiftConfig struct {
	ProductConfig       `yaml:",inline"`
	KAnonymityThreshold int           `json:"k_anonymity_threshold" yaml:"k_anonymity_threshold"`
	BreakdownKey        *BreakdownKey `json:"breakdown_key,omitempty" yaml:"breakdown_key,omitempty"`
}
