// Package config 负责加载和验证 YAML 配置文件。
// 提供应用程序所需的所有配置项，包括行情序列、信号规则、模型参数、求解服务连接等。
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config 应用配置根结构
// 包含所有子模块的配置项
type Config struct {
	// App 应用基础配置
	App AppConfig `yaml:"app"`
	// Series 行情序列配置
	Series SeriesConfig `yaml:"series"`
	// Signal 信号规则配置
	Signal SignalConfig `yaml:"signal"`
	// Model 二值二次模型参数配置
	Model ModelConfig `yaml:"model"`
	// Solver 远程退火求解服务配置
	Solver SolverConfig `yaml:"solver"`
	// Output 输出配置
	Output OutputConfig `yaml:"output"`
}

// AppConfig 应用基础配置
type AppConfig struct {
	// Name 应用名称，用于日志标识
	Name string `yaml:"name"`
	// LogLevel 日志级别: debug, info, warn, error
	LogLevel string `yaml:"log_level"`
}

// SeriesConfig 行情序列配置
// File 与 Points 二选一，同时配置时优先读取文件
type SeriesConfig struct {
	// File 行情 CSV 文件路径，列为日期与收盘价
	File string `yaml:"file"`
	// Points 内联行情数据点列表
	Points []SeriesPoint `yaml:"points"`
}

// SeriesPoint 单个行情数据点
type SeriesPoint struct {
	// Date 日期时间，格式 2006.01.02 15:04
	Date string `yaml:"date"`
	// Close 收盘价
	Close float64 `yaml:"close"`
}

// SignalConfig 信号规则配置
type SignalConfig struct {
	// Rule 买卖信号规则名称，如 odd_index
	Rule string `yaml:"rule"`
}

// ModelConfig 二值二次模型参数配置
type ModelConfig struct {
	// ConflictPenalty 同一序列位置买卖冲突的惩罚权重
	ConflictPenalty float64 `yaml:"conflict_penalty"`
}

// SolverConfig 远程退火求解服务配置
type SolverConfig struct {
	// Endpoint 求解服务 API 地址
	Endpoint string `yaml:"endpoint"`
	// SolverName 求解器名称，由服务端定义
	SolverName string `yaml:"solver_name"`
	// Token 认证令牌，建议通过环境变量 QPRICE_SOLVER_TOKEN 注入
	Token string `yaml:"token"`
	// NumReads 退火读取次数（1-10000）
	NumReads int `yaml:"num_reads"`
	// TimeoutMs 单次求解整体超时（毫秒）
	TimeoutMs int `yaml:"timeout_ms"`
	// RequestTimeoutMs 单个 HTTP 请求超时（毫秒）
	RequestTimeoutMs int `yaml:"request_timeout_ms"`
	// Poll 任务状态轮询配置
	Poll PollConfig `yaml:"poll"`
	// Stream 任务状态推送配置
	Stream StreamConfig `yaml:"stream"`
}

// PollConfig 任务状态轮询配置
type PollConfig struct {
	// BaseMs 轮询基础间隔（毫秒）
	BaseMs int `yaml:"base_ms"`
	// MaxMs 轮询最大间隔（毫秒）
	MaxMs int `yaml:"max_ms"`
	// Jitter 轮询间隔抖动系数（0-1）
	Jitter float64 `yaml:"jitter"`
}

// StreamConfig 任务状态推送配置
// 启用后通过 WebSocket 等待任务完成，不再轮询
type StreamConfig struct {
	// Enabled 是否启用 WebSocket 状态推送
	Enabled bool `yaml:"enabled"`
	// URL 推送地址，为空时根据 endpoint 推导
	URL string `yaml:"url"`
}

// OutputConfig 输出配置
type OutputConfig struct {
	// Dir 输出目录
	Dir string `yaml:"dir"`
	// SignalsEnabled 是否输出信号文件
	SignalsEnabled bool `yaml:"signals_enabled"`
	// SamplesEnabled 是否输出采样明细文件
	SamplesEnabled bool `yaml:"samples_enabled"`
}

// Load 从文件加载配置并验证
// 参数 path: 配置文件路径
// 返回: 解析后的配置对象，若失败则返回错误
func Load(path string) (*Config, error) {
	// 读取配置文件
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 解析 YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 环境变量覆盖敏感项
	cfg.applyEnv()

	// 设置默认值
	cfg.setDefaults()

	// 验证配置
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("配置验证失败: %w", err)
	}

	return &cfg, nil
}

// applyEnv 从环境变量覆盖求解服务的敏感配置
// 凭证不落盘，配合 .env 文件使用
func (c *Config) applyEnv() {
	if v := os.Getenv("QPRICE_SOLVER_ENDPOINT"); v != "" {
		c.Solver.Endpoint = v
	}
	if v := os.Getenv("QPRICE_SOLVER_TOKEN"); v != "" {
		c.Solver.Token = v
	}
}

// setDefaults 设置配置默认值
func (c *Config) setDefaults() {
	// 应用默认值
	if c.App.Name == "" {
		c.App.Name = "qprice-action"
	}
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}

	// 信号规则默认值
	if c.Signal.Rule == "" {
		c.Signal.Rule = "odd_index"
	}

	// 模型默认值
	if c.Model.ConflictPenalty == 0 {
		c.Model.ConflictPenalty = 1.0
	}

	// 求解服务默认值
	if c.Solver.NumReads == 0 {
		c.Solver.NumReads = 100
	}
	if c.Solver.TimeoutMs == 0 {
		c.Solver.TimeoutMs = 120000 // 2 分钟
	}
	if c.Solver.RequestTimeoutMs == 0 {
		c.Solver.RequestTimeoutMs = 10000 // 10 秒
	}
	if c.Solver.Poll.BaseMs == 0 {
		c.Solver.Poll.BaseMs = 500
	}
	if c.Solver.Poll.MaxMs == 0 {
		c.Solver.Poll.MaxMs = 5000 // 5 秒
	}
	if c.Solver.Poll.Jitter == 0 {
		c.Solver.Poll.Jitter = 0.2
	}

	// 输出默认值
	if c.Output.Dir == "" {
		c.Output.Dir = "./output"
	}
}

// Validate 验证配置合法性
// 检查所有必填项和数值范围
// 返回: 若配置无效则返回描述性错误
func (c *Config) Validate() error {
	var errs []string

	// 验证行情序列配置
	if c.Series.File == "" && len(c.Series.Points) == 0 {
		errs = append(errs, "series: 需要配置行情文件或内联数据点")
	}
	for i, p := range c.Series.Points {
		if p.Date == "" {
			errs = append(errs, fmt.Sprintf("series.points[%d].date: 日期不能为空", i))
		}
		if p.Close <= 0 {
			errs = append(errs, fmt.Sprintf("series.points[%d].close: 收盘价必须为正数", i))
		}
	}

	// 验证信号规则配置
	if c.Signal.Rule == "" {
		errs = append(errs, "signal.rule: 信号规则不能为空")
	}

	// 验证模型参数
	if c.Model.ConflictPenalty <= 0 {
		errs = append(errs, "model.conflict_penalty: 冲突惩罚必须为正数")
	}

	// 验证求解服务配置
	if c.Solver.Endpoint == "" {
		errs = append(errs, "solver.endpoint: 求解服务地址不能为空")
	}
	if c.Solver.SolverName == "" {
		errs = append(errs, "solver.solver_name: 求解器名称不能为空")
	}
	if c.Solver.NumReads < 1 || c.Solver.NumReads > 10000 {
		errs = append(errs, fmt.Sprintf("solver.num_reads: 读取次数必须在 1-10000 之间，当前值: %d", c.Solver.NumReads))
	}
	if c.Solver.TimeoutMs <= 0 {
		errs = append(errs, "solver.timeout_ms: 求解超时必须为正数")
	}
	if c.Solver.RequestTimeoutMs <= 0 {
		errs = append(errs, "solver.request_timeout_ms: 请求超时必须为正数")
	}
	if c.Solver.Poll.BaseMs <= 0 {
		errs = append(errs, "solver.poll.base_ms: 轮询基础间隔必须为正数")
	}
	if c.Solver.Poll.MaxMs < c.Solver.Poll.BaseMs {
		errs = append(errs, "solver.poll.max_ms: 轮询最大间隔不能小于基础间隔")
	}
	if err := validateRatio(c.Solver.Poll.Jitter, "solver.poll.jitter"); err != nil {
		errs = append(errs, err.Error())
	}

	// 验证日志级别
	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[strings.ToLower(c.App.LogLevel)] {
		errs = append(errs, fmt.Sprintf("app.log_level: 无效的日志级别 '%s'，有效值: debug, info, warn, error", c.App.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("配置验证错误:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// validateRatio 验证比例系数范围
// 参数 v: 比例值
// 参数 field: 字段名称，用于错误消息
// 返回: 若比例无效则返回错误
func validateRatio(v float64, field string) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s: 比例必须在 0-1 之间，当前值: %f", field, v)
	}
	return nil
}
