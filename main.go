/*
 * @Description:
 * @Author: 安知鱼
 * @Date: 2025-06-28 00:21:55
 * @LastEditTime: 2025-10-24 19:36:40
 * @LastEditors: 安知鱼
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/anzhiyu-c/anheyu-site/cmd/server"
	"github.com/anzhiyu-c/anheyu-site/internal/pkg/version"
	"github.com/anzhiyu-c/anheyu-site/pkg/config"
)

func main() {
	var (
		configPath  string
		renderPath  string
		showVersion bool
	)
	flag.StringVar(&configPath, "config", config.DefaultFilePath, "配置文件路径")
	flag.StringVar(&renderPath, "render-sitemap", "", "生成站点地图并写入指定文件后退出，\"-\" 表示输出到标准输出")
	flag.BoolVar(&showVersion, "version", false, "打印版本信息后退出")
	flag.Parse()

	if showVersion {
		fmt.Println(version.GetVersionString())
		return
	}

	app, cleanup, err := server.NewApp(configPath)
	if err != nil {
		log.Fatalf("应用初始化失败: %v", err)
	}
	defer cleanup()
	defer app.Stop()

	if renderPath != "" {
		if err := renderSitemap(app, renderPath); err != nil {
			log.Fatalf("生成站点地图失败: %v", err)
		}
		return
	}

	app.PrintBanner()
	if err := app.Run(); err != nil {
		log.Fatalf("应用运行失败: %v", err)
	}
}

// renderSitemap 一次性生成站点地图，用于 CI 或静态部署
func renderSitemap(app *server.App, outputPath string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	app.Bootstrap(ctx)
	body, err := app.SitemapService().Render(ctx)
	if err != nil {
		return err
	}
	if outputPath == "-" {
		_, err = os.Stdout.Write(body)
		return err
	}
	if err := os.WriteFile(outputPath, body, 0644); err != nil {
		return fmt.Errorf("写入文件失败: %w", err)
	}
	log.Printf("✅ 站点地图已写入: %s (%d 字节)", outputPath, len(body))
	return nil
}
