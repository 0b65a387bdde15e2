package llm

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskAnalysis   TaskType = "analysis"
	TaskPriority   TaskType = "priority"
	TaskAllocation TaskType = "allocation"
	TaskAdaptation TaskType = "adaptation"
	TaskFreeform   TaskType = "freeform"
	TaskBatch      TaskType = "batch"
)

// Provider selects the ContentGenerator implementation.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOllama Provider = "ollama"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	TimeoutMs int `yaml:"timeout_ms"` // overrides global if > 0
}

// Sampling holds the generation parameters sent with every call.
type Sampling struct {
	Temperature     float64
	TopP            float64
	TopK            int
	MaxOutputTokens int
}

// DefaultSampling favours deterministic, low-creativity output with a large
// output ceiling so long JSON payloads are not truncated.
func DefaultSampling() Sampling {
	return Sampling{
		Temperature:     0.3,
		TopP:            0.9,
		TopK:            20,
		MaxOutputTokens: 8192,
	}
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Provider  Provider                `yaml:"provider"`
	APIKey    string                  `yaml:"api_key"`
	Endpoint  string                  `yaml:"endpoint"`
	Model     string                  `yaml:"model"`
	LogCalls  bool                    `yaml:"log_calls"`
	TimeoutMs int                     `yaml:"timeout_ms"`
	Tasks     map[TaskType]TaskConfig `yaml:"tasks"`
}

// DefaultConfig returns an LLMConfig targeting the hosted Gemini API.
// The API key is left empty; it comes from the environment.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Provider:  ProviderGemini,
		Model:     "gemini-2.5-flash",
		TimeoutMs: 120000,
		Tasks: map[TaskType]TaskConfig{
			TaskAnalysis:   {TimeoutMs: 90000},
			TaskPriority:   {TimeoutMs: 60000},
			TaskAllocation: {TimeoutMs: 90000},
			TaskAdaptation: {TimeoutMs: 60000},
			TaskFreeform:   {TimeoutMs: 60000},
			TaskBatch:      {TimeoutMs: 120000},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()
	ApplyEnv(&cfg)
	return cfg
}

// ApplyEnv overlays environment variables onto cfg.
func ApplyEnv(cfg *LLMConfig) {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("STUDYPLANNER_LLM_PROVIDER"); v != "" {
		cfg.Provider = Provider(strings.ToLower(v))
	}
	if v := os.Getenv("STUDYPLANNER_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("STUDYPLANNER_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("STUDYPLANNER_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYPLANNER_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}

	applyTaskTimeoutEnv(cfg, TaskAnalysis, "STUDYPLANNER_LLM_ANALYSIS_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskPriority, "STUDYPLANNER_LLM_PRIORITY_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskAllocation, "STUDYPLANNER_LLM_ALLOCATION_TIMEOUT_MS")
	applyTaskTimeoutEnv(cfg, TaskAdaptation, "STUDYPLANNER_LLM_ADAPTATION_TIMEOUT_MS")
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) time.Duration {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return time.Duration(tc.TimeoutMs) * time.Millisecond
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	if cfg.Tasks == nil {
		cfg.Tasks = make(map[TaskType]TaskConfig)
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
