// Package model 定义买点分析管线中使用的核心数据结构。
// 包含价格序列、二值二次模型、采样结果等核心类型。
package model

import (
	"errors"
	"time"
)

// 输入数据错误
var (
	// ErrEmptySeries 价格序列为空
	ErrEmptySeries = errors.New("价格序列为空")
	// ErrInvalidPoint 价格点无效
	ErrInvalidPoint = errors.New("价格点无效")
)

// PricePoint 单个行情收盘价点
type PricePoint struct {
	// Timestamp 行情时间戳
	Timestamp time.Time
	// Close 收盘价
	Close float64
}

// IsValid 检查价格点是否有效
// 有效条件: 收盘价大于 0 且时间戳非零值
func (p *PricePoint) IsValid() bool {
	return p.Close > 0 && !p.Timestamp.IsZero()
}

// SeriesEntry 带信号标记的序列条目
type SeriesEntry struct {
	// PricePoint 行情点
	PricePoint
	// Buy 买入信号标记
	Buy bool
	// Sell 卖出信号标记
	Sell bool
}

// SignalSeries 标记后的价格序列
// 条目顺序与输入行情一致，下标从 0 开始
type SignalSeries struct {
	// Entries 序列条目列表
	Entries []SeriesEntry
}

// Len 序列长度
func (s *SignalSeries) Len() int {
	return len(s.Entries)
}

// BuyCount 买入标记数量
func (s *SignalSeries) BuyCount() int {
	count := 0
	for i := range s.Entries {
		if s.Entries[i].Buy {
			count++
		}
	}
	return count
}

// SellCount 卖出标记数量
func (s *SignalSeries) SellCount() int {
	count := 0
	for i := range s.Entries {
		if s.Entries[i].Sell {
			count++
		}
	}
	return count
}

// BuyIndices 返回所有买入标记下标（升序）
func (s *SignalSeries) BuyIndices() []int {
	indices := make([]int, 0, len(s.Entries))
	for i := range s.Entries {
		if s.Entries[i].Buy {
			indices = append(indices, i)
		}
	}
	return indices
}

// PriceAt 返回下标 i 的收盘价
// 下标越界时返回 0
func (s *SignalSeries) PriceAt(i int) float64 {
	if i < 0 || i >= len(s.Entries) {
		return 0
	}
	return s.Entries[i].Close
}
