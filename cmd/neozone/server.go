/*
 * @author: Sun977
 * @date: 2026.02.15
 * @description: Server 模式子命令 (守护进程)
 */

package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"neozone/internal/app/server"

	"github.com/spf13/cobra"
)

var (
	listenAddr   string
	scanInterval time.Duration
)

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动 NeoZone 守护进程模式",
	Long: `以守护进程方式启动 NeoZone，周期扫描 WiFi 并对外提供 HTTP API。

可以通过命令行参数覆盖监听地址和扫描间隔，命令行参数优先级高于配置文件。

示例:
  neozone server
  neozone server --listen 127.0.0.1:8082 --interval 30s`,
	Run: func(cmd *cobra.Command, args []string) {
		// 命令行参数通过环境变量覆盖配置文件，优先级: Flag > Env > File > Default
		if listenAddr != "" {
			if host, port, err := net.SplitHostPort(listenAddr); err == nil {
				os.Setenv("NEOZONE_SERVER_HOST", host)
				os.Setenv("NEOZONE_SERVER_PORT", port)
			}
		}
		if cmd.Flags().Changed("interval") {
			os.Setenv("NEOZONE_LOCATOR_SCAN_INTERVAL", scanInterval.String())
		}
		runServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// 定义 Flags
	serverCmd.Flags().StringVar(&listenAddr, "listen", "", "HTTP 监听地址 (e.g. 127.0.0.1:8082)")
	serverCmd.Flags().DurationVar(&scanInterval, "interval", 30*time.Second, "周期检测间隔")
}

// runServer 守护进程主循环
func runServer() {
	app, err := server.NewApp(cfgFile)
	if err != nil {
		log.Fatalf("Failed to create neozone app: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start(ctx)
	}()

	// 等待中断信号以优雅地关闭服务器
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("NeoZone server failed: %v", err)
		}
	case <-quit:
		log.Println("Shutting down NeoZone server...")
	}

	// 给服务器5秒钟的时间来完成现有请求
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	cancel()
	if err := app.Stop(shutdownCtx); err != nil {
		log.Fatal("NeoZone forced to shutdown:", err)
	}

	log.Println("NeoZone exiting")
}
