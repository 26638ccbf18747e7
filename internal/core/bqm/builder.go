// Package bqm 将信号序列转换为二值二次模型。
package bqm

import (
	"github.com/IrfanRazaRamma/QPriceAction/internal/config"
	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
)

// DefaultConflictPenalty 买卖冲突交互项默认权重
const DefaultConflictPenalty = 1.0

// Builder 模型构建器
// 遍历信号序列，把买卖标记映射为决策变量与交互项:
//   - 买入标记下标 i → 变量 buy_i，线性权重 -close_i
//   - 卖出标记下标 i → 变量 sell_i，线性权重 +close_i
//   - 同一下标同时买卖 → 交互项 (buy_i, sell_i)，权重为冲突惩罚
//
// 买入变量的权重为负，能量最小化倾向于将其置 1；选中价格在
// 提取阶段取最小值得到最优买入价。
type Builder struct {
	// penalty 买卖冲突惩罚权重
	penalty float64
}

// NewBuilder 创建模型构建器
// 冲突惩罚取 cfg.ConflictPenalty，非正时使用默认值
func NewBuilder(cfg config.ModelConfig) *Builder {
	penalty := cfg.ConflictPenalty
	if penalty <= 0 {
		penalty = DefaultConflictPenalty
	}
	return &Builder{penalty: penalty}
}

// Penalty 返回冲突惩罚权重
func (b *Builder) Penalty() float64 {
	return b.penalty
}

// Build 将信号序列转换为二值二次模型
// 遍历全部下标（从 0 开始），仅带标记的下标产生变量。
// 同一序列两次构建产出逐项一致的模型。
func (b *Builder) Build(series *model.SignalSeries) *model.BQM {
	m := model.NewBQM()
	if series == nil {
		return m
	}
	for i := range series.Entries {
		entry := &series.Entries[i]
		if entry.Buy {
			m.AddVariable(model.VarName(model.RoleBuy, i), -entry.Close)
		}
		if entry.Sell {
			m.AddVariable(model.VarName(model.RoleSell, i), entry.Close)
		}
		if entry.Buy && entry.Sell {
			m.AddInteraction(
				model.VarName(model.RoleBuy, i),
				model.VarName(model.RoleSell, i),
				b.penalty,
			)
		}
	}
	return m
}
