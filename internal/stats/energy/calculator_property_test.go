// Package energy 能量统计属性测试
package energy

import (
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
)

// **Feature: qprice-action, Property 6: Population Stats Consistency**
// **Validates: Requirements 6.1, 6.2**

func randomPopulation(rng *rand.Rand, sampleCount, varCount int) *model.SampleSet {
	set := &model.SampleSet{}
	for s := 0; s < sampleCount; s++ {
		assignment := make(map[string]int)
		for v := 0; v < varCount; v++ {
			assignment[model.VarName(model.RoleBuy, v*2+1)] = rng.Intn(2)
		}
		set.Samples = append(set.Samples, model.Sample{
			Assignment:  assignment,
			Energy:      rng.Float64()*200 - 100,
			Occurrences: 1 + rng.Intn(50),
		})
	}
	return set
}

func TestCompute_Consistency_Property(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("统计结果与手工聚合一致", prop.ForAll(
		func(sampleCount, varCount int, seed int64) bool {
			if sampleCount < 1 {
				sampleCount = 1
			}
			if varCount < 1 {
				varCount = 1
			}

			rng := rand.New(rand.NewSource(seed))
			set := randomPopulation(rng, sampleCount, varCount)
			stats := Compute(set)

			// 手工聚合
			totalReads := 0
			var weightedSum float64
			best, worst := math.Inf(1), math.Inf(-1)
			for i := range set.Samples {
				occ := set.Samples[i].Occurrences
				totalReads += occ
				weightedSum += set.Samples[i].Energy * float64(occ)
				if set.Samples[i].Energy < best {
					best = set.Samples[i].Energy
				}
				if set.Samples[i].Energy > worst {
					worst = set.Samples[i].Energy
				}
			}

			if stats.Samples != sampleCount || stats.TotalReads != totalReads {
				return false
			}
			if math.Abs(stats.BestEnergy-best) > 1e-9 {
				return false
			}
			if math.Abs(stats.WorstEnergy-worst) > 1e-9 {
				return false
			}
			if math.Abs(stats.MeanEnergy-weightedSum/float64(totalReads)) > 1e-9 {
				return false
			}
			return true
		},
		gen.IntRange(1, 30),
		gen.IntRange(1, 10),
		gen.Int64(),
	))

	properties.Property("选中频率在 [0,1] 且加权平均能量落在最值之间", prop.ForAll(
		func(sampleCount, varCount int, seed int64) bool {
			if sampleCount < 1 {
				sampleCount = 1
			}
			if varCount < 1 {
				varCount = 1
			}

			rng := rand.New(rand.NewSource(seed))
			stats := Compute(randomPopulation(rng, sampleCount, varCount))

			for _, f := range stats.Frequency {
				if f < 0 || f > 1 {
					return false
				}
			}
			const eps = 1e-9
			return stats.MeanEnergy >= stats.BestEnergy-eps &&
				stats.MeanEnergy <= stats.WorstEnergy+eps
		},
		gen.IntRange(1, 30),
		gen.IntRange(1, 10),
		gen.Int64(),
	))

	properties.TestingRun(t)
}
