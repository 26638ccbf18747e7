// Package model 定义买点分析管线中使用的核心数据结构。
package model

import (
	"strings"

	"github.com/IrfanRazaRamma/QPriceAction/internal/util/fastparse"
)

// VartypeBinary 二值变量类型标识
// 变量取值域为 {0, 1}
const VartypeBinary = "BINARY"

// VarRole 决策变量角色
type VarRole string

const (
	// RoleBuy 买入决策变量
	// 线性权重为对应收盘价的相反数
	RoleBuy VarRole = "buy"
	// RoleSell 卖出决策变量
	// 线性权重为对应收盘价本身
	RoleSell VarRole = "sell"
)

// VarName 构造决策变量名
// 格式: {role}_{index}，如 buy_3
func VarName(role VarRole, index int) string {
	return string(role) + "_" + fastparse.FormatInt(int64(index))
}

// ParseVarName 解析决策变量名
// 返回角色与序列下标；格式不符时 ok 为 false
func ParseVarName(name string) (VarRole, int, bool) {
	role, idx, found := strings.Cut(name, "_")
	if !found {
		return "", 0, false
	}
	if role != string(RoleBuy) && role != string(RoleSell) {
		return "", 0, false
	}
	n, err := fastparse.ParseInt(idx)
	if err != nil || n < 0 {
		return "", 0, false
	}
	return VarRole(role), int(n), true
}

// Variable 模型中的单个决策变量
type Variable struct {
	// Name 变量名，如 buy_3
	Name string
	// Bias 线性权重
	Bias float64
}

// Interaction 两个变量之间的二次交互项
type Interaction struct {
	// U 第一个变量名（按字典序较小）
	U string
	// V 第二个变量名（按字典序较大）
	V string
	// Bias 二次权重
	Bias float64
}

type pairKey struct {
	u, v string
}

// BQM 二值二次模型
// 目标函数: E(x) = Σ bias_i·x_i + Σ bias_uv·x_u·x_v
// 变量与交互项均按插入顺序保存，保证同一序列两次构建结果一致
type BQM struct {
	// Vartype 变量类型，固定为 BINARY
	Vartype string

	vars      []Variable
	varIndex  map[string]int
	quads     []Interaction
	quadIndex map[pairKey]int
}

// NewBQM 创建空的二值二次模型
func NewBQM() *BQM {
	return &BQM{
		Vartype:   VartypeBinary,
		varIndex:  make(map[string]int),
		quadIndex: make(map[pairKey]int),
	}
}

// AddVariable 添加决策变量并累加线性权重
// 变量已存在时权重相加
func (m *BQM) AddVariable(name string, bias float64) {
	if i, ok := m.varIndex[name]; ok {
		m.vars[i].Bias += bias
		return
	}
	m.varIndex[name] = len(m.vars)
	m.vars = append(m.vars, Variable{Name: name, Bias: bias})
}

// AddInteraction 添加二次交互项并累加权重
// 两端变量不存在时自动以零线性权重创建；
// 变量对不区分顺序，(u,v) 与 (v,u) 指向同一交互项
func (m *BQM) AddInteraction(u, v string, bias float64) {
	if u == v {
		// BINARY 变量满足 x·x = x，自环交互等价于线性权重
		m.AddVariable(u, bias)
		return
	}
	if _, ok := m.varIndex[u]; !ok {
		m.AddVariable(u, 0)
	}
	if _, ok := m.varIndex[v]; !ok {
		m.AddVariable(v, 0)
	}
	if u > v {
		u, v = v, u
	}
	key := pairKey{u: u, v: v}
	if i, ok := m.quadIndex[key]; ok {
		m.quads[i].Bias += bias
		return
	}
	m.quadIndex[key] = len(m.quads)
	m.quads = append(m.quads, Interaction{U: u, V: v, Bias: bias})
}

// NumVariables 决策变量数量
func (m *BQM) NumVariables() int {
	return len(m.vars)
}

// NumInteractions 二次交互项数量
func (m *BQM) NumInteractions() int {
	return len(m.quads)
}

// LinearBias 查询变量的线性权重
// 变量不存在时 ok 为 false
func (m *BQM) LinearBias(name string) (float64, bool) {
	i, ok := m.varIndex[name]
	if !ok {
		return 0, false
	}
	return m.vars[i].Bias, true
}

// Variables 返回所有决策变量（插入顺序）
func (m *BQM) Variables() []Variable {
	out := make([]Variable, len(m.vars))
	copy(out, m.vars)
	return out
}

// Interactions 返回所有二次交互项（插入顺序）
func (m *BQM) Interactions() []Interaction {
	out := make([]Interaction, len(m.quads))
	copy(out, m.quads)
	return out
}

// Energy 计算给定赋值下的目标函数值
// 未出现在赋值中的变量按 0 处理
func (m *BQM) Energy(assignment map[string]int) float64 {
	var total float64
	for i := range m.vars {
		total += m.vars[i].Bias * float64(assignment[m.vars[i].Name])
	}
	for i := range m.quads {
		total += m.quads[i].Bias *
			float64(assignment[m.quads[i].U]) *
			float64(assignment[m.quads[i].V])
	}
	return total
}
