// Package main 是量子退火买点分析器的入口点。
// 分析器读取股票收盘价序列并标注买卖信号，将买点选择编码为
// 二值二次模型，提交远程退火求解服务采样，最终从采样结果中
// 提取最优买入价并生成分析报告。
//
// 重要：本系统仅输出分析结论，不构成任何投资建议。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	ossignal "os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/IrfanRazaRamma/QPriceAction/internal/config"
	"github.com/IrfanRazaRamma/QPriceAction/internal/core/bqm"
	"github.com/IrfanRazaRamma/QPriceAction/internal/core/extract"
	sigengine "github.com/IrfanRazaRamma/QPriceAction/internal/core/signal"
	"github.com/IrfanRazaRamma/QPriceAction/internal/output/csvout"
	"github.com/IrfanRazaRamma/QPriceAction/internal/output/jsonl"
	"github.com/IrfanRazaRamma/QPriceAction/internal/output/report"
	"github.com/IrfanRazaRamma/QPriceAction/internal/series"
	"github.com/IrfanRazaRamma/QPriceAction/internal/solver"
	"github.com/IrfanRazaRamma/QPriceAction/internal/solver/anneal"
	"github.com/IrfanRazaRamma/QPriceAction/internal/stats/energy"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "配置文件路径")
	flag.Parse()

	// .env 仅用于注入求解服务凭证，文件缺失时忽略
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.App.LogLevel)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 捕获 SIGINT/SIGTERM，取消进行中的求解
	sigCh := make(chan os.Signal, 2)
	ossignal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("收到退出信号，取消求解")
		cancel()
	}()

	sampler := anneal.NewClient(cfg.Solver, logger)
	if err := run(ctx, cfg, sampler, logger); err != nil {
		logger.Error("买点分析失败", zap.Error(err))
		os.Exit(1)
	}
}

// run 执行一次完整的买点分析流水线：
// 行情加载 -> 信号标注 -> 模型构建 -> 远程采样 -> 买入价提取 -> 报告与导出
func run(ctx context.Context, cfg *config.Config, sampler solver.Sampler, logger *zap.Logger) error {
	// 加载行情序列
	points, err := series.Load(cfg.Series)
	if err != nil {
		return fmt.Errorf("加载行情序列失败: %w", err)
	}
	logger.Info("行情序列已加载", zap.Int("points", len(points)))

	// 标注买卖信号
	rule, err := sigengine.ByName(cfg.Signal.Rule)
	if err != nil {
		return fmt.Errorf("信号规则无效: %w", err)
	}
	sigSeries, err := sigengine.NewEngine(rule).Derive(points)
	if err != nil {
		return fmt.Errorf("标注买卖信号失败: %w", err)
	}
	logger.Info("买卖信号已标注",
		zap.String("rule", rule.Name()),
		zap.Int("buys", sigSeries.BuyCount()),
		zap.Int("sells", sigSeries.SellCount()))

	// 构建二值二次模型
	m := bqm.NewBuilder(cfg.Model).Build(sigSeries)
	logger.Info("模型构建完成",
		zap.Int("variables", m.NumVariables()),
		zap.Int("interactions", m.NumInteractions()))

	// 提交远程退火采样
	set, err := sampler.Sample(ctx, m, cfg.Solver.NumReads)
	if err != nil {
		return fmt.Errorf("退火采样失败: %w", err)
	}

	// 提取最优买入价
	result, err := extract.Extract(set, sigSeries)
	if err != nil {
		if errors.Is(err, extract.ErrNoSolution) {
			// 求解成功但没有任何样本选中买点，与求解失败区分开
			logger.Warn("采样结果未选中任何买点",
				zap.Int("samples", set.Len()),
				zap.String("job_id", set.Info.JobID))
		}
		return fmt.Errorf("提取最优买入价失败: %w", err)
	}

	// 统计采样种群能量分布
	stats := energy.Compute(set)

	// 渲染文本报告
	if err := report.Render(os.Stdout, &report.Data{
		Info:   set.Info,
		Result: result,
		Stats:  stats,
	}); err != nil {
		return fmt.Errorf("渲染分析报告失败: %w", err)
	}

	// 按配置导出信号与采样明细
	if cfg.Output.SignalsEnabled {
		path := filepath.Join(cfg.Output.Dir, csvout.SignalsFileName)
		if err := csvout.WriteSignals(path, sigSeries); err != nil {
			return fmt.Errorf("导出信号文件失败: %w", err)
		}
		logger.Info("信号文件已导出", zap.String("path", path))
	}
	if cfg.Output.SamplesEnabled {
		path := filepath.Join(cfg.Output.Dir, jsonl.SamplesFileName)
		if err := jsonl.WriteSampleSet(path, set); err != nil {
			return fmt.Errorf("导出采样明细失败: %w", err)
		}
		logger.Info("采样明细已导出", zap.String("path", path))
	}

	logger.Info("买点分析完成",
		zap.Float64("best_entry", result.BestEntry),
		zap.Int("prices", len(result.Prices)))
	return nil
}

func newLogger(level string) *zap.Logger {
	lvl := zapcore.InfoLevel
	if err := lvl.Set(level); err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
