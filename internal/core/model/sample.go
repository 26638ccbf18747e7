// Package model 定义买点分析管线中使用的核心数据结构。
package model

import (
	"sort"
)

// Sample 单次采样结果
// 表示求解服务返回种群中的一条赋值记录
type Sample struct {
	// Assignment 变量赋值，变量名 → 0/1
	Assignment map[string]int `json:"assignment"`
	// Energy 该赋值下的目标函数值
	Energy float64 `json:"energy"`
	// Occurrences 该赋值在返回种群中出现的次数
	Occurrences int `json:"occurrences"`
}

// Value 返回变量的赋值
// 变量缺失时返回 0
func (s *Sample) Value(name string) int {
	return s.Assignment[name]
}

// SolveInfo 一次求解的元信息
type SolveInfo struct {
	// SolverName 求解器名称
	SolverName string `json:"solver_name"`
	// JobID 远端任务标识，本地求解时为空
	JobID string `json:"job_id,omitempty"`
	// Reads 请求的采样次数
	Reads int `json:"reads"`
	// ElapsedMs 端到端求解耗时（毫秒）
	ElapsedMs float64 `json:"elapsed_ms"`
}

// SampleSet 采样结果集
// Samples 按能量升序排列，首个元素为能量最低的赋值
type SampleSet struct {
	// Samples 采样列表
	Samples []Sample `json:"samples"`
	// Info 求解元信息
	Info SolveInfo `json:"info"`
}

// Len 采样条数（不含出现次数权重）
func (ss *SampleSet) Len() int {
	return len(ss.Samples)
}

// Best 返回能量最低的采样
// 结果集为空时返回 nil
func (ss *SampleSet) Best() *Sample {
	if len(ss.Samples) == 0 {
		return nil
	}
	return &ss.Samples[0]
}

// TotalReads 按出现次数加权的采样总数
func (ss *SampleSet) TotalReads() int {
	total := 0
	for i := range ss.Samples {
		occ := ss.Samples[i].Occurrences
		if occ <= 0 {
			occ = 1
		}
		total += occ
	}
	return total
}

// SortByEnergy 按能量升序排列采样
// 能量相同的采样保持原有相对顺序
func (ss *SampleSet) SortByEnergy() {
	sort.SliceStable(ss.Samples, func(i, j int) bool {
		return ss.Samples[i].Energy < ss.Samples[j].Energy
	})
}
