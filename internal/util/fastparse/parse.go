// Package fastparse 提供高性能的字符串解析函数。
// 避免在数据加载路径使用 fmt.Sprintf，使用 strconv 进行转换。
// 主要用于解析 CSV 行情数据中的价格字段和变量名中的下标。
package fastparse

import (
	"strconv"
)

// ParseFloat 快速解析浮点数字符串
// 使用 strconv.ParseFloat 实现，避免 fmt 包的额外开销
// 参数 s: 待解析的字符串，如 "8.94"
// 返回: 解析后的浮点数和可能的错误
func ParseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// ParseInt 快速解析整数字符串
// 用于从决策变量名（如 buy_3）中解析序列下标
// 参数 s: 待解析的字符串，如 "3"
// 返回: 解析后的整数和可能的错误
func ParseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// FormatInt 格式化整数为字符串
// 用于构造决策变量名（如 buy_3）中的序列下标
// 参数 n: 待格式化的整数
// 返回: 十进制字符串表示
func FormatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

// FormatFloat 格式化浮点数为字符串
// 使用 strconv.FormatFloat 实现，避免 fmt.Sprintf 开销
// 参数 f: 待格式化的浮点数
// 参数 prec: 小数位数，-1 表示最短表示
// 返回: 格式化后的字符串
func FormatFloat(f float64, prec int) string {
	return strconv.FormatFloat(f, 'f', prec, 64)
}

// FormatBool 格式化布尔值为字符串
// 用于信号 CSV 导出中的买卖标记列
// 参数 b: 待格式化的布尔值
// 返回: "true" 或 "false"
func FormatBool(b bool) string {
	return strconv.FormatBool(b)
}
