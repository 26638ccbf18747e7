// Package signal 实现买卖标记规则与信号推导引擎。
package signal

import (
	"fmt"

	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
)

// RuleOddIndex 奇数下标规则名称
const RuleOddIndex = "odd_index"

// Rule 买卖标记规则
// 根据序列下标与行情点判定买卖标记。
// 实现必须是纯函数：相同输入产出相同标记，不依赖外部状态。
type Rule interface {
	// Name 规则名称，用于配置引用
	Name() string
	// Evaluate 评估下标 index 处的行情点
	// 返回买入与卖出标记
	Evaluate(index int, point model.PricePoint) (buy bool, sell bool)
}

// OddIndexRule 奇数下标买入规则
// 模拟数据集的标记方式：下标为奇数的行情点标记买入，不产生卖出标记
type OddIndexRule struct{}

// Name 规则名称
func (OddIndexRule) Name() string {
	return RuleOddIndex
}

// Evaluate 奇数下标返回买入标记，卖出标记恒为 false
func (OddIndexRule) Evaluate(index int, _ model.PricePoint) (bool, bool) {
	return index%2 == 1, false
}

// ByName 按名称查找标记规则
// 未注册的规则名返回错误
func ByName(name string) (Rule, error) {
	switch name {
	case RuleOddIndex:
		return OddIndexRule{}, nil
	default:
		return nil, fmt.Errorf("未知的信号规则: %q", name)
	}
}
