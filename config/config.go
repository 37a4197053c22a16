package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const ENV_FILE = ".env"
const CONFIG_FILE = "config.yaml"

type AppConfig struct {
	Logging     LoggingConfig `yaml:"logging"`
	Server      ServerConfig  `yaml:"server"`
	GeminiModel string        `yaml:"gemini_model"`
	LLM         LLMConfig     `yaml:"llm"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`

	// CORSAllowedOrigins 는 웹 클라이언트에 허용할 Origin 목록이다.
	// 비어 있으면 모든 Origin 을 허용한다. (로컬 개발 기본값)
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// LLMConfig 는 Gemini 생성 호출에 대한 설정을 정의한다.
type LLMConfig struct {
	// TimeoutSeconds 는 생성 호출 1회에 대한 타임아웃이다.
	// 0 이하면 기본값 60초를 사용한다.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

var config *AppConfig

func InitApp() {
	// load environment variables
	godotenv.Load(filepath.Join(GetBasePath(), ENV_FILE))

	// load configuration file
	data, err := os.ReadFile(filepath.Join(GetBasePath(), CONFIG_FILE))
	if err != nil {
		panic(err)
	}

	var c AppConfig
	err = yaml.Unmarshal(data, &c)
	if err != nil {
		panic(err)
	}
	config = &c
}

func GetConfig() AppConfig {
	if config == nil {
		InitApp()
	}

	return *config
}

func GetBasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		cfgPath := filepath.Join(dir, CONFIG_FILE)
		if info, err := os.Stat(cfgPath); err == nil && !info.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
