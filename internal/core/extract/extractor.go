// Package extract 从采样结果中提取被选中的买入价并选出最优买入价。
package extract

import (
	"errors"

	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
)

// ErrNoSolution 采样结果中没有任何被选中的买入变量
var ErrNoSolution = errors.New("采样结果中没有选中的买入价")

// Result 提取结果
type Result struct {
	// Prices 全部被选中的买入价
	// 按采样能量序展开，同一采样内按序列下标升序；跨采样重复保留
	Prices []float64
	// BestEntry 最优买入价，即 Prices 中的最小值
	BestEntry float64
	// Samples 参与提取的采样条数
	Samples int
}

// Extract 扫描采样结果集，收集被选中的买入价
// 逐条采样检查每个买入标记下标对应的决策变量，置 1 即收集该
// 下标的收盘价。没有任何选中时返回 ErrNoSolution，不会对空集
// 求最小值。
func Extract(set *model.SampleSet, series *model.SignalSeries) (*Result, error) {
	if set == nil || series == nil {
		return nil, ErrNoSolution
	}

	buyIndices := series.BuyIndices()
	res := &Result{Samples: set.Len()}

	for si := range set.Samples {
		sample := &set.Samples[si]
		for _, idx := range buyIndices {
			if sample.Value(model.VarName(model.RoleBuy, idx)) == 1 {
				res.Prices = append(res.Prices, series.PriceAt(idx))
			}
		}
	}

	if len(res.Prices) == 0 {
		return nil, ErrNoSolution
	}

	best := res.Prices[0]
	for _, p := range res.Prices[1:] {
		if p < best {
			best = p
		}
	}
	res.BestEntry = best
	return res, nil
}
