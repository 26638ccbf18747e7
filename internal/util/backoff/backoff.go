// Package backoff 实现带抖动的指数退避间隔计算。
// 用于求解任务状态轮询的节奏控制，避免固定频率轰炸远端服务。
// 注意：这里只调节轮询间隔，不做失败重试——请求失败由调用方直接上抛。
package backoff

import (
	"math/rand"
	"time"
)

// Backoff 指数退避计算器
// 每次调用 Next() 返回下一次轮询的等待时间
// 等待时间按指数增长，直到达到最大值
type Backoff struct {
	// base 基础等待时间
	base time.Duration
	// max 最大等待时间
	max time.Duration
	// jitter 抖动比例（0-1），例如 0.2 表示 ±20%
	jitter float64
	// attempt 当前轮询次数
	attempt int
}

// New 创建新的退避计算器
// 参数 base: 基础等待时间
// 参数 max: 最大等待时间
// 参数 jitter: 抖动比例（0-1）
func New(base, max time.Duration, jitter float64) *Backoff {
	return &Backoff{
		base:    base,
		max:     max,
		jitter:  jitter,
		attempt: 0,
	}
}

// NewPoll 创建轮询默认配置的退避计算器
// 基础间隔 500ms，最大间隔 5s，抖动 ±20%
func NewPoll() *Backoff {
	return New(500*time.Millisecond, 5*time.Second, 0.2)
}

// Next 获取下次轮询的等待时间
// 计算公式: base * 2^attempt，然后应用抖动
// 返回值不会超过 max
func (b *Backoff) Next() time.Duration {
	// 计算指数退避基础值: base * 2^attempt
	// 使用位移运算避免浮点数计算
	multiplier := int64(1) << b.attempt
	delay := b.base * time.Duration(multiplier)

	// 限制最大值
	if delay > b.max {
		delay = b.max
	}

	// 应用抖动: delay * (1 ± jitter)
	// 抖动范围: [delay * (1 - jitter), delay * (1 + jitter)]
	if b.jitter > 0 {
		// 生成 [-jitter, +jitter] 范围的随机数
		jitterFactor := 1.0 + (rand.Float64()*2-1)*b.jitter
		delay = time.Duration(float64(delay) * jitterFactor)
	}

	// 增加轮询次数（用于下次计算）
	b.attempt++

	return delay
}

// Reset 重置退避计算器
// 在任务状态推进后调用，重置轮询次数
func (b *Backoff) Reset() {
	b.attempt = 0
}

// Attempt 获取当前轮询次数
func (b *Backoff) Attempt() int {
	return b.attempt
}
