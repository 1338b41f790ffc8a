package main

import (
	"flag"
	"fmt"

	"github.com/dawnzzz/dawnpool/config"
	"github.com/dawnzzz/dawnpool/logger"
	"github.com/dawnzzz/dawnpool/redis/connection"
	"github.com/dawnzzz/dawnpool/redis/server"
	"github.com/dawnzzz/dawnpool/tcp"
)

// 配置文件
var configFilename string
var defaultConfigFileName = "config.yaml"

const banner = `
     __                                        __
 ___/ / ___ _ _    __ ___   ___  ___  ___  / /
/ _  / / _ '/| |/|/ // _ \ / _ \/ _ \/ _ \/ / 
\_,_/  \_,_/ |__,__//_//_// .__/\___/\___/_/  
                         /_/                  

a random member pool speaking RESP

`

func main() {
	flag.StringVar(&configFilename, "f", defaultConfigFileName, "the config file")
	flag.Parse()

	fmt.Print(banner)

	// 加载配置文件
	if err := config.SetupConfig(configFilename); err != nil {
		logger.Fatalf("load config failed: %+v", err)
	}

	// 加载日志
	logger.SetupLogger(config.Properties.Debug)

	// 连接 id 生成器
	if err := connection.SetupIDGenerator(config.Properties.NodeID); err != nil {
		logger.Fatalf("setup id generator failed: %+v", err)
	}

	if err := tcp.ListenAndServeWithSignal(server.MakeHandler()); err != nil {
		logger.Error(err)
	}
}
