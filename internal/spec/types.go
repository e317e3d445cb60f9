package spec

// Config is the on-disk shape of .vireon/config.yml.
type Config struct {
	Version int           `yaml:"version"`
	Backend BackendConfig `yaml:"backend"`
	Engine  EngineConfig  `yaml:"engine"`
	Solver  SolverConfig  `yaml:"solver"`
	Checker CheckerConfig `yaml:"checker"`
	Run     RunConfig     `yaml:"run"`
}

type BackendConfig struct {
	Provider    string `yaml:"provider"`
	Model       string `yaml:"model"`
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	MaxTokens   int    `yaml:"max_tokens"`
	StubAnswer  string `yaml:"stub_answer"`
	StubVerdict string `yaml:"stub_verdict"`
}

type EngineConfig struct {
	LambdaSmoothing     float64      `yaml:"lambda_smoothing"`
	DisagreementWeight  float64      `yaml:"disagreement_weight"`
	ConfidenceThreshold float64      `yaml:"confidence_threshold"`
	MinPathsQuorum      int          `yaml:"min_paths_quorum"`
	Squash              SquashConfig `yaml:"squash"`
}

type SquashConfig struct {
	Kind      string  `yaml:"kind"`
	Reference float64 `yaml:"reference"`
	Steepness float64 `yaml:"steepness"`
	Midpoint  float64 `yaml:"midpoint"`
}

type SolverConfig struct {
	NumPaths          int     `yaml:"num_paths"`
	Temperature       float64 `yaml:"temperature"`
	TemperatureSpread float64 `yaml:"temperature_spread"`
	OptionLetters     string  `yaml:"option_letters"`
	LatencyWeight     float64 `yaml:"latency_weight"`
}

type CheckerConfig struct {
	Verifications int     `yaml:"verifications"`
	Temperature   float64 `yaml:"temperature"`
}

type RunConfig struct {
	Workers            int    `yaml:"workers"`
	PathTimeoutSeconds int    `yaml:"path_timeout_seconds"`
	OutputDir          string `yaml:"output_dir"`
}
