// Package solver 定义模型采样接口与求解错误族。
package solver

import (
	"context"
	"errors"

	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
)

// 求解错误族
// 调用方通过 errors.Is 区分失败种类；求解失败不做重试
var (
	// ErrAuth 求解服务拒绝凭证
	ErrAuth = errors.New("求解服务拒绝凭证")
	// ErrUnavailable 求解服务不可达或返回错误状态
	ErrUnavailable = errors.New("求解服务不可用")
	// ErrBadResponse 求解服务返回无法解析的响应
	ErrBadResponse = errors.New("求解服务响应异常")
	// ErrJobFailed 求解任务在服务端执行失败
	ErrJobFailed = errors.New("求解任务执行失败")
)

// Sampler 模型采样器
// 对二值二次模型执行 numReads 次采样，返回按能量升序排列的
// 结果集。实现只负责求解 I/O，不感知买卖信号语义。
type Sampler interface {
	// Sample 提交模型并等待采样结果
	Sample(ctx context.Context, m *model.BQM, numReads int) (*model.SampleSet, error)
}
