// Package timeutil 提供时间相关的工具函数。
// 包含行情数据时间戳的解析/格式化，以及求解耗时测量用的高精度时间戳。
package timeutil

import (
	"time"
)

// DataTimeLayout 行情数据时间戳格式
// 与输入数据的 "2024.03.05 16:45" 形式对应
const DataTimeLayout = "2006.01.02 15:04"

var (
	// baseTime 基准时间点（包含单调时钟读数）
	baseTime = time.Now()
	// baseUnixNs 基准时间点对应的 Unix 纳秒时间戳
	baseUnixNs = baseTime.UnixNano()
)

// ParseDataTime 解析行情数据时间戳
// 参数 s: 时间戳字符串，如 "2024.03.05 16:45"
// 返回: 解析后的时间和可能的错误
func ParseDataTime(s string) (time.Time, error) {
	return time.Parse(DataTimeLayout, s)
}

// FormatDataTime 格式化行情数据时间戳
// 与 ParseDataTime 互逆，用于 CSV 导出和报告输出
// 参数 t: 待格式化的时间
// 返回: 格式化后的字符串
func FormatDataTime(t time.Time) string {
	return t.Format(DataTimeLayout)
}

// NowNano 获取当前时间的纳秒时间戳
// 使用“单调时钟 + 启动时 Unix 时间”组合实现：
// NowNano = baseUnixNs + time.Since(baseTime).Nanoseconds()
// 这样在系统时间跳变（NTP/手动调整）时求解耗时测量仍保持单调。
// 返回: 当前时间的 Unix 纳秒时间戳
func NowNano() int64 {
	return baseUnixNs + time.Since(baseTime).Nanoseconds()
}

// DurationMs 计算两个纳秒时间戳之间的毫秒差
// 参数 startNs: 开始时间（纳秒）
// 参数 endNs: 结束时间（纳秒）
// 返回: 时间差（毫秒，浮点数以保留精度）
func DurationMs(startNs, endNs int64) float64 {
	return float64(endNs-startNs) / 1_000_000.0
}
