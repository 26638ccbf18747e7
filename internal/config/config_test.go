// Package config 配置模块测试
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// **Feature: qprice-action, Property 7: Config Validation Correctness**
// **Validates: Requirements 7.1, 7.2, 7.3**

// TestConfigValidation_PenaltyRange 测试冲突惩罚范围验证
// 属性: 惩罚权重非正数应验证失败
func TestConfigValidation_PenaltyRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// 属性: 惩罚权重 <= 0 应验证失败
	properties.Property("惩罚权重非正数应验证失败", prop.ForAll(
		func(penalty float64) bool {
			cfg := createValidConfig()
			cfg.Model.ConflictPenalty = penalty
			err := cfg.Validate()
			return err != nil // 应该返回错误
		},
		gen.Float64Range(-1000, 0), // 非正数
	))

	// 属性: 惩罚权重 > 0 应验证通过
	properties.Property("惩罚权重为正数应通过验证", prop.ForAll(
		func(penalty float64) bool {
			cfg := createValidConfig()
			cfg.Model.ConflictPenalty = penalty
			err := cfg.Validate()
			return err == nil // 应该通过验证
		},
		gen.Float64Range(0.0001, 1000), // 正数
	))

	properties.TestingRun(t)
}

// TestConfigValidation_SolverParams 测试求解服务参数验证
// 属性: num_reads、超时、轮询间隔必须在有效范围内
func TestConfigValidation_SolverParams(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// 属性: num_reads 超出 [1, 10000] 应验证失败
	properties.Property("读取次数超出范围应验证失败", prop.ForAll(
		func(reads int) bool {
			cfg := createValidConfig()
			cfg.Solver.NumReads = reads
			err := cfg.Validate()
			return err != nil
		},
		gen.OneGenOf(
			gen.IntRange(-1000, 0),      // 非正数
			gen.IntRange(10001, 100000), // 超过上限
		),
	))

	// 属性: num_reads 在有效范围内应验证通过
	properties.Property("读取次数在有效范围内应通过验证", prop.ForAll(
		func(reads int) bool {
			cfg := createValidConfig()
			cfg.Solver.NumReads = reads
			err := cfg.Validate()
			return err == nil
		},
		gen.IntRange(1, 10000),
	))

	// 属性: timeout_ms <= 0 应验证失败
	properties.Property("求解超时非正数应验证失败", prop.ForAll(
		func(timeout int) bool {
			cfg := createValidConfig()
			cfg.Solver.TimeoutMs = timeout
			err := cfg.Validate()
			return err != nil
		},
		gen.IntRange(-100000, 0),
	))

	// 属性: poll.base_ms <= 0 应验证失败
	properties.Property("轮询基础间隔非正数应验证失败", prop.ForAll(
		func(base int) bool {
			cfg := createValidConfig()
			cfg.Solver.Poll.BaseMs = base
			err := cfg.Validate()
			return err != nil
		},
		gen.IntRange(-10000, 0),
	))

	// 属性: poll.max_ms < poll.base_ms 应验证失败
	properties.Property("轮询最大间隔小于基础间隔应验证失败", prop.ForAll(
		func(base int) bool {
			cfg := createValidConfig()
			cfg.Solver.Poll.BaseMs = base
			cfg.Solver.Poll.MaxMs = base - 1
			err := cfg.Validate()
			return err != nil
		},
		gen.IntRange(2, 10000),
	))

	// 属性: 抖动系数超出 [0, 1] 应验证失败
	properties.Property("抖动系数超出范围应验证失败", prop.ForAll(
		func(jitter float64) bool {
			cfg := createValidConfig()
			cfg.Solver.Poll.Jitter = jitter
			err := cfg.Validate()
			return err != nil
		},
		gen.OneGenOf(
			gen.Float64Range(-1000, -0.0001), // 负数
			gen.Float64Range(1.0001, 1000),   // 超过1
		),
	))

	properties.TestingRun(t)
}

// TestConfigValidation_Series 测试行情序列配置验证
// 属性: 空序列和无效数据点应验证失败
func TestConfigValidation_Series(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// 属性: 既无文件也无内联数据点应验证失败
	properties.Property("空行情序列应验证失败", prop.ForAll(
		func(_ int) bool {
			cfg := createValidConfig()
			cfg.Series = SeriesConfig{}
			err := cfg.Validate()
			return err != nil
		},
		gen.Int(), // 占位生成器
	))

	// 属性: 数据点日期为空应验证失败
	properties.Property("空日期数据点应验证失败", prop.ForAll(
		func(closePx float64) bool {
			cfg := createValidConfig()
			cfg.Series.Points = []SeriesPoint{{Date: "", Close: closePx}}
			err := cfg.Validate()
			return err != nil
		},
		gen.Float64Range(0.01, 10000),
	))

	// 属性: 数据点收盘价非正数应验证失败
	properties.Property("非正收盘价应验证失败", prop.ForAll(
		func(closePx float64) bool {
			cfg := createValidConfig()
			cfg.Series.Points = []SeriesPoint{{Date: "2024.03.05 16:45", Close: closePx}}
			err := cfg.Validate()
			return err != nil
		},
		gen.Float64Range(-10000, 0),
	))

	// 属性: 仅配置行情文件应通过验证
	properties.Property("仅配置行情文件应通过验证", prop.ForAll(
		func(_ int) bool {
			cfg := createValidConfig()
			cfg.Series = SeriesConfig{File: "./data/prices.csv"}
			err := cfg.Validate()
			return err == nil
		},
		gen.Int(),
	))

	properties.TestingRun(t)
}

// TestConfigValidation_ValidConfig 测试有效配置应通过验证
func TestConfigValidation_ValidConfig(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	// 属性: 所有参数在有效范围内的配置应通过验证
	properties.Property("有效配置应通过验证", prop.ForAll(
		func(penalty float64, reads int, baseMs int, jitter float64) bool {
			cfg := createValidConfig()
			cfg.Model.ConflictPenalty = penalty
			cfg.Solver.NumReads = reads
			cfg.Solver.Poll.BaseMs = baseMs
			cfg.Solver.Poll.MaxMs = baseMs * 10
			cfg.Solver.Poll.Jitter = jitter
			err := cfg.Validate()
			return err == nil
		},
		gen.Float64Range(0.0001, 1000), // 有效惩罚权重
		gen.IntRange(1, 10000),         // 有效读取次数
		gen.IntRange(1, 10000),         // 有效轮询间隔
		gen.Float64Range(0, 1),         // 有效抖动系数
	))

	properties.TestingRun(t)
}

// createValidConfig 创建一个有效的配置用于测试
func createValidConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:     "test",
			LogLevel: "info",
		},
		Series: SeriesConfig{
			Points: []SeriesPoint{
				{Date: "2024.03.05 16:45", Close: 8.94},
				{Date: "2024.03.05 17:00", Close: 8.96},
			},
		},
		Signal: SignalConfig{
			Rule: "odd_index",
		},
		Model: ModelConfig{
			ConflictPenalty: 1.0,
		},
		Solver: SolverConfig{
			Endpoint:         "https://anneal.example.com",
			SolverName:       "advantage_system",
			NumReads:         100,
			TimeoutMs:        120000,
			RequestTimeoutMs: 10000,
			Poll: PollConfig{
				BaseMs: 500,
				MaxMs:  5000,
				Jitter: 0.2,
			},
		},
		Output: OutputConfig{
			Dir:            "./output",
			SignalsEnabled: true,
			SamplesEnabled: true,
		},
	}
}

// TestLoad_ValidFile 测试从有效文件加载配置
func TestLoad_ValidFile(t *testing.T) {
	// 创建临时配置文件
	content := `
app:
  name: test-qprice
  log_level: info

series:
  points:
    - date: "2024.03.05 16:45"
      close: 8.94
    - date: "2024.03.05 17:00"
      close: 8.96
    - date: "2024.03.05 17:15"
      close: 8.55

signal:
  rule: odd_index

model:
  conflict_penalty: 2.5

solver:
  endpoint: https://anneal.example.com
  solver_name: advantage_system
  num_reads: 500
  timeout_ms: 60000
  request_timeout_ms: 5000
  poll:
    base_ms: 200
    max_ms: 2000
    jitter: 0.1

output:
  dir: ./output
  signals_enabled: true
  samples_enabled: true
`
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}

	// 加载配置
	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	// 验证加载的值
	if cfg.App.Name != "test-qprice" {
		t.Errorf("App.Name = %s, want test-qprice", cfg.App.Name)
	}
	if len(cfg.Series.Points) != 3 {
		t.Errorf("len(Series.Points) = %d, want 3", len(cfg.Series.Points))
	}
	if cfg.Series.Points[1].Close != 8.96 {
		t.Errorf("Series.Points[1].Close = %f, want 8.96", cfg.Series.Points[1].Close)
	}
	if cfg.Model.ConflictPenalty != 2.5 {
		t.Errorf("Model.ConflictPenalty = %f, want 2.5", cfg.Model.ConflictPenalty)
	}
	if cfg.Solver.NumReads != 500 {
		t.Errorf("Solver.NumReads = %d, want 500", cfg.Solver.NumReads)
	}
	if cfg.Solver.Poll.BaseMs != 200 {
		t.Errorf("Solver.Poll.BaseMs = %d, want 200", cfg.Solver.Poll.BaseMs)
	}
}

// TestLoad_Defaults 测试缺省项的默认值填充
func TestLoad_Defaults(t *testing.T) {
	content := `
series:
  points:
    - date: "2024.03.05 16:45"
      close: 8.94

solver:
  endpoint: https://anneal.example.com
  solver_name: advantage_system
`
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.App.Name != "qprice-action" {
		t.Errorf("App.Name = %s, want qprice-action", cfg.App.Name)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("App.LogLevel = %s, want info", cfg.App.LogLevel)
	}
	if cfg.Signal.Rule != "odd_index" {
		t.Errorf("Signal.Rule = %s, want odd_index", cfg.Signal.Rule)
	}
	if cfg.Model.ConflictPenalty != 1.0 {
		t.Errorf("Model.ConflictPenalty = %f, want 1.0", cfg.Model.ConflictPenalty)
	}
	if cfg.Solver.NumReads != 100 {
		t.Errorf("Solver.NumReads = %d, want 100", cfg.Solver.NumReads)
	}
	if cfg.Solver.TimeoutMs != 120000 {
		t.Errorf("Solver.TimeoutMs = %d, want 120000", cfg.Solver.TimeoutMs)
	}
	if cfg.Solver.RequestTimeoutMs != 10000 {
		t.Errorf("Solver.RequestTimeoutMs = %d, want 10000", cfg.Solver.RequestTimeoutMs)
	}
	if cfg.Solver.Poll.BaseMs != 500 || cfg.Solver.Poll.MaxMs != 5000 {
		t.Errorf("Poll = %+v, want base 500 max 5000", cfg.Solver.Poll)
	}
	if cfg.Solver.Poll.Jitter != 0.2 {
		t.Errorf("Poll.Jitter = %f, want 0.2", cfg.Solver.Poll.Jitter)
	}
	if cfg.Output.Dir != "./output" {
		t.Errorf("Output.Dir = %s, want ./output", cfg.Output.Dir)
	}
}

// TestLoad_EnvOverride 测试环境变量覆盖敏感配置
func TestLoad_EnvOverride(t *testing.T) {
	content := `
series:
  points:
    - date: "2024.03.05 16:45"
      close: 8.94

solver:
  endpoint: https://file.example.com
  solver_name: advantage_system
  token: file-token
`
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}

	t.Setenv("QPRICE_SOLVER_ENDPOINT", "https://env.example.com")
	t.Setenv("QPRICE_SOLVER_TOKEN", "env-token")

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("加载配置失败: %v", err)
	}

	if cfg.Solver.Endpoint != "https://env.example.com" {
		t.Errorf("Solver.Endpoint = %s, 环境变量未生效", cfg.Solver.Endpoint)
	}
	if cfg.Solver.Token != "env-token" {
		t.Errorf("Solver.Token = %s, 环境变量未生效", cfg.Solver.Token)
	}
}

// TestLoad_InvalidFile 测试加载无效文件
func TestLoad_InvalidFile(t *testing.T) {
	// 测试不存在的文件
	_, err := Load("/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("加载不存在的文件应返回错误")
	}
}

// TestLoad_InvalidYAML 测试加载无效 YAML
func TestLoad_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "invalid.yaml")
	if err := os.WriteFile(tmpFile, []byte("invalid: yaml: content:"), 0644); err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}

	_, err := Load(tmpFile)
	if err == nil {
		t.Error("加载无效 YAML 应返回错误")
	}
}

// TestLoad_MissingSolver 测试缺少求解服务配置
func TestLoad_MissingSolver(t *testing.T) {
	content := `
series:
  points:
    - date: "2024.03.05 16:45"
      close: 8.94
`
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("创建临时文件失败: %v", err)
	}

	_, err := Load(tmpFile)
	if err == nil {
		t.Error("缺少求解服务地址应返回错误")
	}
}
