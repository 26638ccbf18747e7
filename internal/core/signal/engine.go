// Package signal 实现买卖标记规则与信号推导引擎。
package signal

import (
	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
)

// Engine 信号推导引擎
// 将标记规则逐点应用到价格序列，产出带买卖标记的信号序列。
// 推导不修改输入行情，也不依赖求解结果。
type Engine struct {
	// rule 标记规则
	rule Rule
}

// NewEngine 创建信号推导引擎
// 参数 rule: 买卖标记规则
func NewEngine(rule Rule) *Engine {
	return &Engine{rule: rule}
}

// Rule 返回引擎使用的标记规则
func (e *Engine) Rule() Rule {
	return e.rule
}

// Derive 对价格序列应用规则，生成信号序列
// 条目顺序与输入一致；空序列返回 model.ErrEmptySeries
func (e *Engine) Derive(points []model.PricePoint) (*model.SignalSeries, error) {
	if len(points) == 0 {
		return nil, model.ErrEmptySeries
	}
	entries := make([]model.SeriesEntry, len(points))
	for i, p := range points {
		buy, sell := e.rule.Evaluate(i, p)
		entries[i] = model.SeriesEntry{
			PricePoint: p,
			Buy:        buy,
			Sell:       sell,
		}
	}
	return &model.SignalSeries{Entries: entries}, nil
}
