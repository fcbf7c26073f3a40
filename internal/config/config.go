/**
* Name: 			config.go
* Description: 		환경 변수 기반 애플리케이션 설정
* Workflow: 		.env 로드, viper 기본값 설정, 구조체 변환 및 검증
 */

package config

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFile  string `mapstructure:"log_file"`

	// registry file path override
	ChatsFile    string `mapstructure:"chats_file" validate:"required"`
	DatabasePath string `mapstructure:"database_path" validate:"required"`

	GeminiAPIKey    string `mapstructure:"gemini_api_key" validate:"required"`
	GeminiLiveModel string `mapstructure:"gemini_live_model" validate:"required"`
	GeminiTextModel string `mapstructure:"gemini_text_model" validate:"required"`

	// optional: empty key disables image enrichment
	KieAPIKey     string `mapstructure:"kie_api_key"`
	KieBaseURL    string `mapstructure:"kie_base_url" validate:"required,url"`
	KieImageModel string `mapstructure:"kie_image_model" validate:"required"`

	// optional: empty means application default credentials
	GoogleCredentialsFile string `mapstructure:"google_application_credentials"`

	CreateChatRatePerMinute int `mapstructure:"create_chat_rate_per_minute" validate:"min=1"`
}

func (c *AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads .env (if any) and the process environment.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("config.Load(): no .env file loaded, reading environment only")
	}
	return FromViper(NewViper())
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefault(v)
	return v
}

func setDefault(v *viper.Viper) {
	// AutomaticEnv only resolves keys viper already knows about
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 8000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE", "")

	v.SetDefault("CHATS_FILE", "data/chats.json")
	v.SetDefault("DATABASE_PATH", "data/sessions.db")

	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_LIVE_MODEL", "models/gemini-2.5-flash-native-audio-preview-09-2025")
	v.SetDefault("GEMINI_TEXT_MODEL", "gemini-2.5-flash")

	v.SetDefault("KIE_API_KEY", "")
	v.SetDefault("KIE_BASE_URL", "https://api.kie.ai")
	v.SetDefault("KIE_IMAGE_MODEL", "google/nano-banana")

	v.SetDefault("GOOGLE_APPLICATION_CREDENTIALS", "")
	v.SetDefault("CREATE_CHAT_RATE_PER_MINUTE", 6)
}

func FromViper(v *viper.Viper) (*AppConfig, error) {
	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}
