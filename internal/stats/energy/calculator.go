// Package energy 实现采样种群的能量统计。
// 对求解返回的种群做能量聚合与变量选中频率统计，供结果报告使用。
package energy

import (
	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
)

// Stats 采样种群能量统计
type Stats struct {
	// Samples 去重采样条数
	Samples int
	// TotalReads 按出现次数加权的采样总数
	TotalReads int
	// BestEnergy 最低能量
	BestEnergy float64
	// WorstEnergy 最高能量
	WorstEnergy float64
	// MeanEnergy 出现次数加权的平均能量
	MeanEnergy float64
	// Frequency 变量选中频率: 变量名 → 置 1 占比 [0, 1]
	Frequency map[string]float64
}

// Compute 计算采样种群的能量统计
// 出现次数缺失（非正）的采样按 1 计；空种群返回零值统计
func Compute(set *model.SampleSet) Stats {
	out := Stats{Frequency: make(map[string]float64)}
	if set == nil || set.Len() == 0 {
		return out
	}

	out.Samples = set.Len()

	var weightedSum float64
	counts := make(map[string]int)
	for i := range set.Samples {
		s := &set.Samples[i]
		occ := s.Occurrences
		if occ <= 0 {
			occ = 1
		}
		out.TotalReads += occ
		weightedSum += s.Energy * float64(occ)

		if i == 0 || s.Energy < out.BestEnergy {
			out.BestEnergy = s.Energy
		}
		if i == 0 || s.Energy > out.WorstEnergy {
			out.WorstEnergy = s.Energy
		}

		for name, v := range s.Assignment {
			if v == 1 {
				counts[name] += occ
			}
		}
	}

	out.MeanEnergy = weightedSum / float64(out.TotalReads)
	for name, n := range counts {
		out.Frequency[name] = float64(n) / float64(out.TotalReads)
	}
	return out
}
