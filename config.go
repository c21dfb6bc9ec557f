package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
)

// AppConfig holds all server configuration.
// Priority (lowest → highest): defaults < env vars < JSON config file < CLI flags.
type AppConfig struct {
	// Server
	DB   string `json:"db"`   // sqlite database path
	Dev  bool   `json:"dev"`  // dev mode: verbose logging
	Addr string `json:"addr"` // HTTP listen address

	// BaseURL is the externally reachable address, used for QR join links.
	BaseURL string `json:"base_url"`

	// Logging (extended diagnostics, off by default)
	LogOutputDir string `json:"log_output_dir"`
	LogRequests  bool   `json:"log_requests"`
	LogWS        bool   `json:"log_ws"`
	LogDebug     bool   `json:"log_debug"`

	// AI narrator
	NarratorProvider    string `json:"narrator_provider"` // ollama | openai | claude | gemini | groq | openai-compatible
	NarratorModel       string `json:"narrator_model"`
	NarratorTemperature string `json:"narrator_temperature"` // float 0-1 as string

	// AI command interpreter
	InterpreterProvider string `json:"interpreter_provider"`
	InterpreterModel    string `json:"interpreter_model"`

	// Shared provider settings
	OllamaURL  string `json:"ollama_url"`   // Ollama server URL
	LLMBaseURL string `json:"llm_base_url"` // base URL for openai-compatible
	LLMAPIKey  string `json:"llm_api_key"`  // API key for openai-compatible
	GroqAPIKey string `json:"groq_api_key"` // API key for groq provider
}

func (cfg AppConfig) toLogConfig() LogConfig {
	return LogConfig{
		OutputDir:   cfg.LogOutputDir,
		LogRequests: cfg.LogRequests,
		LogWS:       cfg.LogWS,
		Debug:       cfg.LogDebug,
	}
}

func defaultConfig() AppConfig {
	return AppConfig{
		DB:        "loupgarou.db",
		Addr:      ":8080",
		BaseURL:   "http://localhost:8080",
		OllamaURL: "http://localhost:11434",
	}
}

// loadConfig builds a config by layering: defaults → env vars → JSON config file.
// CLI flag overrides are applied separately by flagValues.applyTo after flag.Parse.
func loadConfig(configPath string) AppConfig {
	cfg := defaultConfig()

	// Layer 1: env vars
	envStr := os.Getenv
	envBool := func(key string) (val bool, set bool) {
		v := os.Getenv(key)
		if v == "" {
			return false, false
		}
		return v == "1" || v == "true" || v == "yes", true
	}

	if v := envStr("DB"); v != "" {
		cfg.DB = v
	}
	if v, ok := envBool("DEV"); ok {
		cfg.Dev = v
	}
	if v := envStr("ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := envStr("BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := envStr("LOG_OUTPUT_DIR"); v != "" {
		cfg.LogOutputDir = v
	}
	if v, ok := envBool("LOG_REQUESTS"); ok {
		cfg.LogRequests = v
	}
	if v, ok := envBool("LOG_WS"); ok {
		cfg.LogWS = v
	}
	if v, ok := envBool("LOG_DEBUG"); ok {
		cfg.LogDebug = v
	}
	if v := envStr("NARRATOR_PROVIDER"); v != "" {
		cfg.NarratorProvider = v
	}
	if v := envStr("NARRATOR_MODEL"); v != "" {
		cfg.NarratorModel = v
	}
	if v := envStr("NARRATOR_TEMPERATURE"); v != "" {
		cfg.NarratorTemperature = v
	}
	if v := envStr("INTERPRETER_PROVIDER"); v != "" {
		cfg.InterpreterProvider = v
	}
	if v := envStr("INTERPRETER_MODEL"); v != "" {
		cfg.InterpreterModel = v
	}
	if v := envStr("OLLAMA_URL"); v != "" {
		cfg.OllamaURL = v
	}
	if v := envStr("LLM_BASE_URL"); v != "" {
		cfg.LLMBaseURL = v
	}
	if v := envStr("LLM_API_KEY"); v != "" {
		cfg.LLMAPIKey = v
	}
	if v := envStr("GROQ_API_KEY"); v != "" {
		cfg.GroqAPIKey = v
	}

	// Layer 2: JSON config file — only fields present in the file override env vars
	if data, err := os.ReadFile(configPath); err == nil {
		var overlay map[string]json.RawMessage
		if err := json.Unmarshal(data, &overlay); err != nil {
			log.Printf("Config: failed to parse %s: %v", configPath, err)
		} else {
			applyJSONOverlay(&cfg, overlay)
			log.Printf("Config: loaded from %s", configPath)
		}
	} else if !os.IsNotExist(err) {
		log.Printf("Config: failed to read %s: %v", configPath, err)
	}

	return cfg
}

// applyJSONOverlay only sets fields that are explicitly present in the JSON map.
func applyJSONOverlay(cfg *AppConfig, m map[string]json.RawMessage) {
	str := func(key string, dst *string) {
		if v, ok := m[key]; ok {
			json.Unmarshal(v, dst)
		}
	}
	boolean := func(key string, dst *bool) {
		if v, ok := m[key]; ok {
			json.Unmarshal(v, dst)
		}
	}
	str("db", &cfg.DB)
	boolean("dev", &cfg.Dev)
	str("addr", &cfg.Addr)
	str("base_url", &cfg.BaseURL)
	str("log_output_dir", &cfg.LogOutputDir)
	boolean("log_requests", &cfg.LogRequests)
	boolean("log_ws", &cfg.LogWS)
	boolean("log_debug", &cfg.LogDebug)
	str("narrator_provider", &cfg.NarratorProvider)
	str("narrator_model", &cfg.NarratorModel)
	str("narrator_temperature", &cfg.NarratorTemperature)
	str("interpreter_provider", &cfg.InterpreterProvider)
	str("interpreter_model", &cfg.InterpreterModel)
	str("ollama_url", &cfg.OllamaURL)
	str("llm_base_url", &cfg.LLMBaseURL)
	str("llm_api_key", &cfg.LLMAPIKey)
	str("groq_api_key", &cfg.GroqAPIKey)
}

// flagValues holds pointers to all registered CLI flags.
type flagValues struct {
	configPath          *string
	db                  *string
	dev                 *bool
	addr                *string
	baseURL             *string
	logOutputDir        *string
	logRequests         *bool
	logWS               *bool
	logDebug            *bool
	narratorProvider    *string
	narratorModel       *string
	narratorTemperature *string
	interpreterProvider *string
	interpreterModel    *string
	ollamaURL           *string
	llmBaseURL          *string
	llmAPIKey           *string
	groqAPIKey          *string
}

// registerFlags registers all CLI flags and returns pointers to their values.
// Call flag.Parse() after this, then applyTo to layer them over the loaded config.
func registerFlags() flagValues {
	return flagValues{
		configPath:          flag.String("config", "config.json", "path to JSON config file"),
		db:                  flag.String("db", "", "sqlite database path"),
		dev:                 flag.Bool("dev", false, "enable development mode (verbose logging)"),
		addr:                flag.String("addr", "", "HTTP listen address (e.g. :8080)"),
		baseURL:             flag.String("base-url", "", "external base URL for join links"),
		logOutputDir:        flag.String("log-output-dir", "", "directory for extended log files"),
		logRequests:         flag.Bool("log-requests", false, "log HTTP requests and responses"),
		logWS:               flag.Bool("log-ws", false, "log WebSocket messages"),
		logDebug:            flag.Bool("log-debug", false, "enable debug logging"),
		narratorProvider:    flag.String("narrator-provider", "", "AI narrator provider (ollama|openai|claude|gemini|groq|openai-compatible)"),
		narratorModel:       flag.String("narrator-model", "", "AI narrator model name"),
		narratorTemperature: flag.String("narrator-temperature", "", "sampling temperature 0-1"),
		interpreterProvider: flag.String("interpreter-provider", "", "AI interpreter provider (ollama|openai|claude|gemini|groq|openai-compatible)"),
		interpreterModel:    flag.String("interpreter-model", "", "AI interpreter model name"),
		ollamaURL:           flag.String("ollama-url", "", "Ollama server URL"),
		llmBaseURL:          flag.String("llm-base-url", "", "base URL for openai-compatible provider"),
		llmAPIKey:           flag.String("llm-api-key", "", "API key for openai-compatible provider"),
		groqAPIKey:          flag.String("groq-api-key", "", "Groq API key"),
	}
}

// applyTo overlays any CLI flags that were explicitly set onto cfg.
// Flags that were not passed on the command line are ignored (env/JSON values win).
func (fv flagValues) applyTo(cfg *AppConfig) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "db":
			cfg.DB = *fv.db
		case "dev":
			cfg.Dev = *fv.dev
		case "addr":
			cfg.Addr = *fv.addr
		case "base-url":
			cfg.BaseURL = *fv.baseURL
		case "log-output-dir":
			cfg.LogOutputDir = *fv.logOutputDir
		case "log-requests":
			cfg.LogRequests = *fv.logRequests
		case "log-ws":
			cfg.LogWS = *fv.logWS
		case "log-debug":
			cfg.LogDebug = *fv.logDebug
		case "narrator-provider":
			cfg.NarratorProvider = *fv.narratorProvider
		case "narrator-model":
			cfg.NarratorModel = *fv.narratorModel
		case "narrator-temperature":
			cfg.NarratorTemperature = *fv.narratorTemperature
		case "interpreter-provider":
			cfg.InterpreterProvider = *fv.interpreterProvider
		case "interpreter-model":
			cfg.InterpreterModel = *fv.interpreterModel
		case "ollama-url":
			cfg.OllamaURL = *fv.ollamaURL
		case "llm-base-url":
			cfg.LLMBaseURL = *fv.llmBaseURL
		case "llm-api-key":
			cfg.LLMAPIKey = *fv.llmAPIKey
		case "groq-api-key":
			cfg.GroqAPIKey = *fv.groqAPIKey
		}
	})
}
