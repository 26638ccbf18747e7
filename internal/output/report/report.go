// Package report 实现买点分析结果的文本报告渲染。
package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/IrfanRazaRamma/QPriceAction/internal/core/extract"
	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
	"github.com/IrfanRazaRamma/QPriceAction/internal/stats/energy"
)

// Data 报告数据
type Data struct {
	// Info 求解元信息
	Info model.SolveInfo
	// Result 买入价提取结果
	Result *extract.Result
	// Stats 种群能量统计
	Stats energy.Stats
}

// Render 渲染文本报告
// 变量选中频率按序列下标升序输出，保证多次渲染结果一致
func Render(w io.Writer, d *Data) error {
	if d == nil || d.Result == nil {
		return fmt.Errorf("报告数据为空")
	}

	fmt.Fprintln(w, "==== 量子退火买点分析 ====")
	fmt.Fprintf(w, "求解器: %s", d.Info.SolverName)
	if d.Info.JobID != "" {
		fmt.Fprintf(w, " (任务 %s)", d.Info.JobID)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "采样: %d 次读取, %d 条采样, 耗时 %.1f ms\n",
		d.Info.Reads, d.Stats.Samples, d.Info.ElapsedMs)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "选中买入价: %v\n", d.Result.Prices)
	fmt.Fprintf(w, "最优买入价（最低）: %v\n", d.Result.BestEntry)

	if d.Stats.TotalReads > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "能量: 最低 %.4f / 平均 %.4f / 最高 %.4f\n",
			d.Stats.BestEnergy, d.Stats.MeanEnergy, d.Stats.WorstEnergy)

		names := sortedVarNames(d.Stats.Frequency)
		if len(names) > 0 {
			fmt.Fprintln(w, "变量选中频率:")
			for _, name := range names {
				fmt.Fprintf(w, "  %s: %.1f%%\n", name, d.Stats.Frequency[name]*100)
			}
		}
	}

	return nil
}

// sortedVarNames 返回按序列下标与角色排序的变量名
func sortedVarNames(freq map[string]float64) []string {
	names := make([]string, 0, len(freq))
	for name := range freq {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, ii, oki := model.ParseVarName(names[i])
		rj, ij, okj := model.ParseVarName(names[j])
		if !oki || !okj {
			return names[i] < names[j]
		}
		if ii != ij {
			return ii < ij
		}
		return ri < rj
	})
	return names
}
