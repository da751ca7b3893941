package config

import "time"

// Settings is the complete set of tunables for a running gateway instance,
// loaded from gateway.yaml with environment overrides.
type Settings struct {
	AppName    string `yaml:"app_name"`
	AppVersion string `yaml:"app_version"`
	Debug      bool   `yaml:"debug"`
	LogLevel   string `yaml:"log_level"`

	Database DatabaseConfig `yaml:"database"`
	Backend  BackendConfig  `yaml:"backend"`
	Server   ServerConfig   `yaml:"server"`

	FastModel    string `yaml:"fast_model"`
	ComplexModel string `yaml:"complex_model"`

	ComplexityThresholdLow  int `yaml:"complexity_threshold_low"`
	ComplexityThresholdHigh int `yaml:"complexity_threshold_high"`

	QualityThreshold   int `yaml:"quality_threshold"`
	MaxEscalationDepth int `yaml:"max_escalation_depth"`

	LLMTimeout time.Duration `yaml:"llm_timeout"`

	Cost CostConfig `yaml:"cost"`

	AnalyzerWeights AnalyzerWeightConfig `yaml:"analyzer_weights"`
}

// DatabaseConfig describes the metrics-store Postgres connection.
type DatabaseConfig struct {
	URL         string `yaml:"url"`
	PoolSize    int    `yaml:"pool_size"`
	MaxOverflow int    `yaml:"max_overflow"`
}

// BackendConfig describes how to reach the generative-model capability.
// The per-attempt deadline is not configured here: it is LLMTimeout,
// shared by every back-end call regardless of address.
type BackendConfig struct {
	Address string `yaml:"address"`
}

// ServerConfig describes the HTTP surface.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// CostConfig holds per-1M-token USD rates fed into metrics.CalculateCost,
// overridable for pricing changes without a code deploy.
type CostConfig struct {
	FlashInput    float64 `yaml:"flash_input"`
	FlashOutput   float64 `yaml:"flash_output"`
	ComplexInput  float64 `yaml:"complex_input"`
	ComplexOutput float64 `yaml:"complex_output"`
}

// AnalyzerWeightConfig overrides the complexity analyzer's category weights.
// Zero fields fall back to the package defaults.
type AnalyzerWeightConfig struct {
	Keyword   float64 `yaml:"keyword"`
	Code      float64 `yaml:"code"`
	Math      float64 `yaml:"math"`
	Multipart float64 `yaml:"multipart"`
	Length    float64 `yaml:"length"`
}
