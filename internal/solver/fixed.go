// Package solver 定义模型采样接口与求解错误族。
package solver

import (
	"context"

	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
)

// FixedSolverName 固定赋值采样器名称
const FixedSolverName = "fixed"

// Fixed 固定赋值采样器
// 返回预置的赋值种群，能量由模型计算，结果按能量升序排列。
// 用于离线演示与测试，不模拟任何退火行为。
type Fixed struct {
	// assignments 预置赋值列表
	assignments []map[string]int
}

// NewFixed 创建固定赋值采样器
// 参数 assignments: 预置赋值列表，内容在采样时拷贝
func NewFixed(assignments []map[string]int) *Fixed {
	return &Fixed{assignments: assignments}
}

// Sample 按预置赋值生成采样结果集
// numReads 按出现次数均摊到各条赋值上，结果按能量升序排列
func (f *Fixed) Sample(ctx context.Context, m *model.BQM, numReads int) (*model.SampleSet, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	set := &model.SampleSet{
		Info: model.SolveInfo{
			SolverName: FixedSolverName,
			Reads:      numReads,
		},
	}
	if len(f.assignments) == 0 {
		return set, nil
	}

	per := numReads / len(f.assignments)
	rem := numReads % len(f.assignments)

	for i, a := range f.assignments {
		assignment := make(map[string]int, len(a))
		for name, v := range a {
			assignment[name] = v
		}

		occ := per
		if i < rem {
			occ++
		}
		if occ < 1 {
			occ = 1
		}

		set.Samples = append(set.Samples, model.Sample{
			Assignment:  assignment,
			Energy:      m.Energy(a),
			Occurrences: occ,
		})
	}

	set.SortByEnergy()
	return set, nil
}
