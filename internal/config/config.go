package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// 默认值
const (
	defaultHost           = "0.0.0.0"
	defaultPort           = 3000
	defaultMaxConnections = 2000
	defaultRedisAddr      = "" // 为空表示不启用账号服务

	defaultRoundDuration = 80   // 回合时长（秒）
	defaultCooldownMs    = 2500 // 回合间隔（毫秒）
	defaultMaxRounds     = 3
	defaultMaxPlayers    = 8

	defaultMessagePerSecond = 20
	defaultMessageBurst     = 40
	defaultChatPerSecond    = 2
	defaultChatBurst        = 5
)

// Config 服务端配置
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Game     GameConfig     `yaml:"game"`
	Security SecurityConfig `yaml:"security"`
	Words    WordsConfig    `yaml:"words"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig WebSocket 服务器配置
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxConnections int    `yaml:"max_connections"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Enabled 是否配置了 Redis
func (c *RedisConfig) Enabled() bool {
	return c.Addr != ""
}

// GameConfig 游戏配置
type GameConfig struct {
	RoundDuration int `yaml:"round_duration"` // 回合时长（秒）
	CooldownMs    int `yaml:"cooldown_ms"`    // 揭晓答案到下一回合的间隔（毫秒）
	MaxRounds     int `yaml:"max_rounds"`     // 每局回合数
	MaxPlayers    int `yaml:"max_players"`    // 创建房间未指定人数时的上限
	RoomTimeout   int `yaml:"room_timeout"`   // 空闲超时（分钟），超时后移出房间内玩家，0 表示关闭
}

// RoundDurationTime 返回回合时长
func (c *GameConfig) RoundDurationTime() time.Duration {
	return time.Duration(c.RoundDuration) * time.Second
}

// CooldownDuration 返回回合间隔
func (c *GameConfig) CooldownDuration() time.Duration {
	return time.Duration(c.CooldownMs) * time.Millisecond
}

// RoomTimeoutDuration 返回大厅空闲超时时长
func (c *GameConfig) RoomTimeoutDuration() time.Duration {
	return time.Duration(c.RoomTimeout) * time.Minute
}

// SecurityConfig 安全配置
type SecurityConfig struct {
	AllowedOrigins []string    `yaml:"allowed_origins"`
	MessageLimit   LimitConfig `yaml:"message_limit"`
	ChatLimit      LimitConfig `yaml:"chat_limit"`
}

// LimitConfig 令牌桶配置
type LimitConfig struct {
	MaxPerSecond float64 `yaml:"max_per_second"`
	Burst        int     `yaml:"burst"`
}

// WordsConfig 额外词库
type WordsConfig struct {
	Path string `yaml:"path"` // YAML 词库文件，可选
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Load 加载配置文件，随后应用环境变量覆盖
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	loadFromEnv(&cfg)

	return &cfg, nil
}

// Default 返回默认配置（同样应用环境变量覆盖）
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	loadFromEnv(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.MaxConnections == 0 {
		cfg.Server.MaxConnections = defaultMaxConnections
	}
	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = defaultRedisAddr
	}
	if cfg.Game.RoundDuration == 0 {
		cfg.Game.RoundDuration = defaultRoundDuration
	}
	if cfg.Game.CooldownMs == 0 {
		cfg.Game.CooldownMs = defaultCooldownMs
	}
	if cfg.Game.MaxRounds == 0 {
		cfg.Game.MaxRounds = defaultMaxRounds
	}
	if cfg.Game.MaxPlayers == 0 {
		cfg.Game.MaxPlayers = defaultMaxPlayers
	}
	// 0 表示不清理空闲房间
	if cfg.Game.RoomTimeout < 0 {
		cfg.Game.RoomTimeout = 0
	}
	if len(cfg.Security.AllowedOrigins) == 0 {
		cfg.Security.AllowedOrigins = []string{"*"}
	}
	if cfg.Security.MessageLimit.MaxPerSecond == 0 {
		cfg.Security.MessageLimit.MaxPerSecond = defaultMessagePerSecond
	}
	if cfg.Security.MessageLimit.Burst == 0 {
		cfg.Security.MessageLimit.Burst = defaultMessageBurst
	}
	if cfg.Security.ChatLimit.MaxPerSecond == 0 {
		cfg.Security.ChatLimit.MaxPerSecond = defaultChatPerSecond
	}
	if cfg.Security.ChatLimit.Burst == 0 {
		cfg.Security.ChatLimit.Burst = defaultChatBurst
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// loadFromEnv 环境变量优先级高于配置文件
func loadFromEnv(cfg *Config) {
	if v := os.Getenv("SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	// PORT 与常见 PaaS 约定一致
	if port, ok := envInt("PORT"); ok {
		cfg.Server.Port = port
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if n, ok := envInt("GAME_MAX_ROUNDS"); ok {
		cfg.Game.MaxRounds = n
	}
	if n, ok := envInt("GAME_ROUND_DURATION"); ok {
		cfg.Game.RoundDuration = n
	}
	if v := os.Getenv("SECURITY_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.Security.AllowedOrigins = origins
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
