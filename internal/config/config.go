package config

import (
	"fmt"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig      `mapstructure:"server"`
	Log        LogConfig         `mapstructure:"log"`
	Auth       AuthConfig        `mapstructure:"auth"`
	Database   DatabaseConfig    `mapstructure:"database"`
	OpenAI     OpenAIConfig      `mapstructure:"openai"`
	ElevenLabs ElevenLabsConfig  `mapstructure:"elevenlabs"`
	Deepgram   DeepgramConfig    `mapstructure:"deepgram"`
	Storage    StorageConfig     `mapstructure:"storage"`
	Provider   ProviderConfig    `mapstructure:"provider"`
	Pipeline   PipelineConfig    `mapstructure:"pipeline"`
	Voices     map[string]string `mapstructure:"voices" validate:"dive,keys,required,endkeys,required"`
}

type ServerConfig struct {
	Port        int        `mapstructure:"port" validate:"min=1,max=65535"`
	CORS        CORSConfig `mapstructure:"cors"`
	TLSCertFile string     `mapstructure:"tls_cert_file" validate:"omitempty,file"`
	TLSKeyFile  string     `mapstructure:"tls_key_file" validate:"omitempty,file"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Audience  string `mapstructure:"audience"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model" validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"url"`
}

type ElevenLabsConfig struct {
	APIKey       string `mapstructure:"api_key"`
	Model        string `mapstructure:"model" validate:"required"`
	OutputFormat string `mapstructure:"output_format" validate:"required"`
	BaseURL      string `mapstructure:"base_url" validate:"url"`
}

type DeepgramConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model" validate:"required"`
	BaseURL string `mapstructure:"base_url" validate:"url"`
}

type StorageConfig struct {
	Supabase       SupabaseConfig `mapstructure:"supabase"`
	UploadAttempts uint           `mapstructure:"upload_attempts" validate:"min=1,max=5"`
}

type SupabaseConfig struct {
	URL        string `mapstructure:"url" validate:"omitempty,url"`
	ServiceKey string `mapstructure:"service_key"`
	Bucket     string `mapstructure:"bucket" validate:"required"`
}

type ProviderConfig struct {
	TimeoutSeconds int   `mapstructure:"timeout_seconds" validate:"min=1"`
	MaxAudioBytes  int64 `mapstructure:"max_audio_bytes" validate:"min=1"`
}

type PipelineConfig struct {
	Concurrency int `mapstructure:"concurrency" validate:"min=1,max=8"`
}

// DefaultVoices maps a learner-facing language name to an ElevenLabs voice.
// The multilingual model speaks every language below with any of these voices.
var DefaultVoices = map[string]string{
	"english":    "21m00Tcm4TlvDq8ikWAM",
	"spanish":    "pNInz6obpgDQGcFmaJgB",
	"french":     "ThT5KcBeYPX3keUQqHPh",
	"german":     "ErXwobaYiN019PkySvjV",
	"italian":    "AZnzlk1XvdvUeBnXmlld",
	"portuguese": "TxGEqnHWrfWFTfGW9XjX",
	"japanese":   "MF3mGyEYCl7XYWbV9V6O",
	"korean":     "EXAVITQu4vr4xnSDxMaL",
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/songlingo")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"*"})
	v.SetDefault("log.level", "info")
	v.SetDefault("auth.audience", "authenticated")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "songlingo")
	v.SetDefault("database.username", "songlingo")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("elevenlabs.model", "eleven_multilingual_v2")
	v.SetDefault("elevenlabs.output_format", "mp3_44100_128")
	v.SetDefault("elevenlabs.base_url", "https://api.elevenlabs.io")
	v.SetDefault("deepgram.model", "nova-2")
	v.SetDefault("deepgram.base_url", "https://api.deepgram.com")
	v.SetDefault("storage.supabase.bucket", "pronunciation-audio")
	v.SetDefault("storage.upload_attempts", 2)
	v.SetDefault("provider.timeout_seconds", 30)
	v.SetDefault("provider.max_audio_bytes", 10<<20)
	v.SetDefault("pipeline.concurrency", 1)
	v.SetDefault("voices", DefaultVoices)

	// Secrets are bound to environment variables only (not from config file)
	envBindings := []struct {
		key string
		env string
	}{
		{"openai.api_key", "OPENAI_API_KEY"},
		{"openai.model", "OPENAI_MODEL"},
		{"elevenlabs.api_key", "ELEVENLABS_API_KEY"},
		{"deepgram.api_key", "DEEPGRAM_API_KEY"},
		{"storage.supabase.url", "SUPABASE_URL"},
		{"storage.supabase.service_key", "SUPABASE_SERVICE_KEY"},
		{"auth.jwt_secret", "AUTH_JWT_SECRET"},
		{"database.password", "DB_PASSWORD"},
	}
	for _, b := range envBindings {
		if err := v.BindEnv(b.key, b.env); err != nil {
			return nil, fmt.Errorf("failed to bind %s environment variable: %w", b.env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %s", ValidationMessages(err, loader.translator))
	}

	return &cfg, nil
}
