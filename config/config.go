package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 应用程序配置
type Config struct {
	APIPort       int
	LogLevel      string
	LogFile       LogFileConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	Bus           BusConfig
	Announcements AnnouncementsConfig
	Support       SupportConfig
}

// LogFileConfig 日志文件配置
type LogFileConfig struct {
	Enabled    bool
	Path       string
	MaxSize    int  // 单个文件最大大小，单位MB
	MaxBackups int  // 最大保留旧文件数量
	MaxAge     int  // 最大保留天数
	Compress   bool // 是否压缩
}

// DatabaseConfig MySQL数据库配置
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// RedisConfig Redis配置
type RedisConfig struct {
	Host     string
	Port     int
	Password string
}

// BusConfig 内部RPC总线配置
type BusConfig struct {
	ServiceName string // 本服务在总线上注册的服务名
	Workers     int    // 消费请求队列的工作协程数量
}

// AnnouncementsConfig 公告列表分页配置
type AnnouncementsConfig struct {
	DefaultLimit int // 未指定limit时的默认每页条数
	MaxLimit     int // limit硬上限
}

// SupportConfig 工单服务配置
type SupportConfig struct {
	AdminEmail string // 工单通知接收邮箱
}

// Load 从环境变量加载配置
func Load() (*Config, error) {
	// 加载.env文件
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	// 解析数据库配置
	dbPort, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		dbPort = 3306 // 默认端口
	}

	// 解析Redis配置
	redisPort, err := strconv.Atoi(os.Getenv("REDIS_PORT"))
	if err != nil {
		redisPort = 6379 // 默认端口
	}

	// 解析API端口
	apiPort, err := strconv.Atoi(os.Getenv("API_PORT"))
	if err != nil {
		apiPort = 8080 // 默认端口
	}

	// 解析总线工作协程数
	busWorkers, err := strconv.Atoi(os.Getenv("BUS_WORKERS"))
	if err != nil || busWorkers < 1 {
		busWorkers = 5
	}

	serviceName := os.Getenv("BUS_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "info.info"
	}

	// 解析公告分页配置
	defaultLimit, err := strconv.Atoi(os.Getenv("ANNOUNCEMENTS_DEFAULT_LIMIT"))
	if err != nil || defaultLimit < 1 {
		defaultLimit = 50
	}
	maxLimit, err := strconv.Atoi(os.Getenv("ANNOUNCEMENTS_MAX_LIMIT"))
	if err != nil || maxLimit < 1 {
		maxLimit = 500
	}

	// 解析日志文件配置
	logMaxSize, err := strconv.Atoi(os.Getenv("LOG_FILE_MAX_SIZE"))
	if err != nil {
		logMaxSize = 100
	}
	logMaxBackups, err := strconv.Atoi(os.Getenv("LOG_FILE_MAX_BACKUPS"))
	if err != nil {
		logMaxBackups = 30
	}
	logMaxAge, err := strconv.Atoi(os.Getenv("LOG_FILE_MAX_AGE"))
	if err != nil {
		logMaxAge = 30
	}

	return &Config{
		APIPort:  apiPort,
		LogLevel: os.Getenv("LOG_LEVEL"),
		LogFile: LogFileConfig{
			Enabled:    os.Getenv("LOG_FILE_ENABLED") == "true",
			Path:       os.Getenv("LOG_FILE_PATH"),
			MaxSize:    logMaxSize,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAge,
			Compress:   os.Getenv("LOG_FILE_COMPRESS") == "true",
		},
		Database: DatabaseConfig{
			Host:     os.Getenv("DB_HOST"),
			Port:     dbPort,
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   os.Getenv("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     redisPort,
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Bus: BusConfig{
			ServiceName: serviceName,
			Workers:     busWorkers,
		},
		Announcements: AnnouncementsConfig{
			DefaultLimit: defaultLimit,
			MaxLimit:     maxLimit,
		},
		Support: SupportConfig{
			AdminEmail: os.Getenv("SUPPORT_ADMIN_EMAIL"),
		},
	}, nil
}
