// 手动写入本地开发用的演示数据（社区目录与落地页）
//
// 测评与护理类型在迁移时自动写入，此脚本只补充演示社区和落地页。
//
// 用法: go run scripts/seed_demo.go -config configs

package main

import (
	"flag"
	"log"

	"senior_living_backend/internal/config"
	"senior_living_backend/pkg/database"
	"senior_living_backend/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	db, err := database.InitDB(&cfg.Database, true)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	if err := database.SeedDemo(db); err != nil {
		logger.Log.Fatal("演示数据写入失败", zap.Error(err))
	}
	logger.Log.Info("演示数据写入完成")
}
