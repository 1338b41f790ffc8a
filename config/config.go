package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// ServerProperties 服务器配置
type ServerProperties struct {
	Debug     bool   `mapstructure:"debug"`     // 是否是debug
	Bind      string `mapstructure:"bind"`      // 服务器绑定地址
	Port      int    `mapstructure:"port"`      // 监听端口
	Password  string `mapstructure:"password"`  // 密码
	Databases int    `mapstructure:"databases"` // 数据库数量
	Keepalive int    `mapstructure:"keepalive"` // 客户端心跳超时时间，单位秒，0 表示不检查

	NodeID     int64  `mapstructure:"node_id"`     // snowflake 节点号，用于生成连接 id
	RandomSeed uint64 `mapstructure:"random_seed"` // 随机数种子，0 表示使用当前时间
}

var Properties *ServerProperties

func init() {
	Properties = defaultProperties()
}

// 默认配置
func defaultProperties() *ServerProperties {
	return &ServerProperties{
		Debug:     os.Getenv("ENV") == "DEBUG",
		Bind:      "127.0.0.1",
		Port:      6179,
		Password:  "",
		Databases: 16,
		Keepalive: 0,

		NodeID:     1,
		RandomSeed: 0,
	}
}

// SetupConfig 读配置文件，文件不存在时使用默认配置
func SetupConfig(configFilename string) error {
	if !fileExists(configFilename) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(configFilename)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config %s", configFilename)
	}

	properties := defaultProperties()
	if err := v.Unmarshal(properties); err != nil {
		return errors.Wrapf(err, "unmarshal config %s", configFilename)
	}

	if properties.Debug { // debug 没有密码
		properties.Password = ""
	}
	if properties.Databases <= 0 {
		properties.Databases = 16
	}

	Properties = properties
	return nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}
