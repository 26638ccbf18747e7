// Package anneal 实现远端量子退火求解服务的客户端适配层。
package anneal

// 任务状态常量
const (
	// StatusPending 任务已入队等待调度
	StatusPending = "PENDING"
	// StatusInProgress 任务正在求解
	StatusInProgress = "IN_PROGRESS"
	// StatusCompleted 任务求解完成，可拉取结果
	StatusCompleted = "COMPLETED"
	// StatusFailed 任务在服务端执行失败
	StatusFailed = "FAILED"
)

// submitRequest 提交求解任务请求体
// API: POST /api/v1/problems
type submitRequest struct {
	// Solver 目标求解器名称
	Solver string `json:"solver"`
	// Vartype 变量类型，固定为 BINARY
	Vartype string `json:"vartype"`
	// Linear 线性权重表: 变量名 → 权重
	Linear map[string]float64 `json:"linear"`
	// Quadratic 二次交互项列表
	Quadratic []quadTerm `json:"quadratic"`
	// Params 求解参数
	Params submitParams `json:"params"`
}

// quadTerm 二次交互项
type quadTerm struct {
	// U 第一个变量名
	U string `json:"u"`
	// V 第二个变量名
	V string `json:"v"`
	// Bias 二次权重
	Bias float64 `json:"bias"`
}

// submitParams 求解参数
type submitParams struct {
	// NumReads 采样次数
	NumReads int `json:"num_reads"`
}

// jobResponse 任务状态响应
// API: POST /api/v1/problems, GET /api/v1/problems/{id}
type jobResponse struct {
	// ID 任务标识
	ID string `json:"id"`
	// Status 任务状态: PENDING, IN_PROGRESS, COMPLETED, FAILED
	Status string `json:"status"`
	// Error 失败原因，status=FAILED 时非空
	Error string `json:"error,omitempty"`
}

// answerResponse 求解结果响应
// API: GET /api/v1/problems/{id}/answer
type answerResponse struct {
	// Samples 采样列表
	Samples []answerSample `json:"samples"`
	// Timing 服务端耗时信息
	Timing answerTiming `json:"timing"`
}

// answerSample 单条采样
type answerSample struct {
	// Assignment 变量赋值，变量名 → 0/1
	Assignment map[string]int `json:"assignment"`
	// Energy 该赋值下的目标函数值
	Energy float64 `json:"energy"`
	// Occurrences 该赋值出现的次数
	Occurrences int `json:"occurrences"`
}

// answerTiming 服务端耗时信息
type answerTiming struct {
	// QPUAccessUs 量子处理器访问时间（微秒）
	QPUAccessUs float64 `json:"qpu_access_us"`
}

// statusEvent 事件流状态推送
// API: GET /api/v1/problems/{id}/events (WebSocket)
type statusEvent struct {
	// ID 任务标识
	ID string `json:"id"`
	// Status 任务状态
	Status string `json:"status"`
	// Error 失败原因，status=FAILED 时非空
	Error string `json:"error,omitempty"`
}
