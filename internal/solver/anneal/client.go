// Package anneal 实现远端量子退火求解服务的客户端适配层。
// 协议: 提交任务 → 等待完成（轮询或事件流）→ 拉取结果。
// 任何环节失败立即返回错误，不做重试；退避只控制轮询节奏。
package anneal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/IrfanRazaRamma/QPriceAction/internal/config"
	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
	"github.com/IrfanRazaRamma/QPriceAction/internal/solver"
	"github.com/IrfanRazaRamma/QPriceAction/internal/util/backoff"
	"github.com/IrfanRazaRamma/QPriceAction/internal/util/timeutil"
)

// Client 远端退火求解服务客户端
// 纯 I/O 适配层：序列化模型、提交任务、等待完成、拉取结果，
// 不感知买卖信号语义
type Client struct {
	// cfg 求解服务配置
	cfg config.SolverConfig
	// client HTTP 客户端
	client *http.Client
	// logger 日志记录器
	logger *zap.Logger
}

// NewClient 创建求解服务客户端
// 参数 cfg: 求解服务配置（端点、凭证、超时、轮询节奏）
// 参数 logger: 日志记录器
func NewClient(cfg config.SolverConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutMs) * time.Millisecond,
		},
		logger: logger.Named("anneal"),
	}
}

// Sample 提交模型并等待采样结果
// 结果按能量升序排列；整体耗时受 cfg.TimeoutMs 限制
func (c *Client) Sample(ctx context.Context, m *model.BQM, numReads int) (*model.SampleSet, error) {
	startNs := timeutil.NowNano()

	if c.cfg.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	job, err := c.submit(ctx, m, numReads)
	if err != nil {
		return nil, err
	}
	c.logger.Info("求解任务已提交",
		zap.String("job_id", job.ID),
		zap.String("solver", c.cfg.SolverName),
		zap.Int("num_reads", numReads),
		zap.Int("variables", m.NumVariables()))

	final, err := c.waitCompleted(ctx, job)
	if err != nil {
		return nil, err
	}

	answer, err := c.fetchAnswer(ctx, final.ID)
	if err != nil {
		return nil, err
	}

	set := &model.SampleSet{
		Samples: make([]model.Sample, 0, len(answer.Samples)),
		Info: model.SolveInfo{
			SolverName: c.cfg.SolverName,
			JobID:      final.ID,
			Reads:      numReads,
		},
	}
	for _, s := range answer.Samples {
		set.Samples = append(set.Samples, model.Sample{
			Assignment:  s.Assignment,
			Energy:      s.Energy,
			Occurrences: s.Occurrences,
		})
	}
	set.SortByEnergy()
	set.Info.ElapsedMs = timeutil.DurationMs(startNs, timeutil.NowNano())

	c.logger.Info("求解完成",
		zap.String("job_id", final.ID),
		zap.Int("samples", set.Len()),
		zap.Float64("elapsed_ms", set.Info.ElapsedMs),
		zap.Float64("qpu_access_us", answer.Timing.QPUAccessUs))
	return set, nil
}

// submit 序列化模型并提交求解任务
func (c *Client) submit(ctx context.Context, m *model.BQM, numReads int) (*jobResponse, error) {
	req := submitRequest{
		Solver:  c.cfg.SolverName,
		Vartype: m.Vartype,
		Linear:  make(map[string]float64, m.NumVariables()),
		Params:  submitParams{NumReads: numReads},
	}
	for _, v := range m.Variables() {
		req.Linear[v.Name] = v.Bias
	}
	for _, q := range m.Interactions() {
		req.Quadratic = append(req.Quadratic, quadTerm{U: q.U, V: q.V, Bias: q.Bias})
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("序列化求解任务失败: %w", err)
	}

	body, err := c.doRequest(ctx, http.MethodPost, c.problemURL(""), payload)
	if err != nil {
		return nil, fmt.Errorf("提交求解任务失败: %w", err)
	}

	var job jobResponse
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("解析任务响应失败: %v: %w", err, solver.ErrBadResponse)
	}
	if job.ID == "" {
		return nil, fmt.Errorf("任务响应缺少 id: %w", solver.ErrBadResponse)
	}
	return &job, nil
}

// waitCompleted 等待任务进入终态
// 启用事件流时通过 WebSocket 等待状态推送，否则按退避节奏轮询
func (c *Client) waitCompleted(ctx context.Context, job *jobResponse) (*jobResponse, error) {
	b := pollBackoff(c.cfg.Poll)
	for {
		switch job.Status {
		case StatusCompleted:
			return job, nil
		case StatusFailed:
			return nil, fmt.Errorf("任务 %s 执行失败: %s: %w", job.ID, job.Error, solver.ErrJobFailed)
		case StatusPending, StatusInProgress:
		default:
			return nil, fmt.Errorf("未知任务状态 %q: %w", job.Status, solver.ErrBadResponse)
		}

		if c.cfg.Stream.Enabled {
			return c.waitViaStream(ctx, job.ID)
		}

		delay := b.Next()
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("等待求解结果被取消: %w", ctx.Err())
		case <-time.After(delay):
		}

		next, err := c.fetchStatus(ctx, job.ID)
		if err != nil {
			return nil, err
		}
		if next.ID == "" {
			next.ID = job.ID
		}
		job = next

		c.logger.Debug("任务状态",
			zap.String("job_id", job.ID),
			zap.String("status", job.Status),
			zap.Int("polls", b.Attempt()))
	}
}

// fetchStatus 查询任务状态
func (c *Client) fetchStatus(ctx context.Context, jobID string) (*jobResponse, error) {
	body, err := c.doRequest(ctx, http.MethodGet, c.problemURL(jobID), nil)
	if err != nil {
		return nil, fmt.Errorf("查询任务状态失败: %w", err)
	}

	var job jobResponse
	if err := json.Unmarshal(body, &job); err != nil {
		return nil, fmt.Errorf("解析任务状态失败: %v: %w", err, solver.ErrBadResponse)
	}
	return &job, nil
}

// fetchAnswer 拉取求解结果
func (c *Client) fetchAnswer(ctx context.Context, jobID string) (*answerResponse, error) {
	body, err := c.doRequest(ctx, http.MethodGet, c.problemURL(jobID)+"/answer", nil)
	if err != nil {
		return nil, fmt.Errorf("拉取求解结果失败: %w", err)
	}

	var answer answerResponse
	if err := json.Unmarshal(body, &answer); err != nil {
		return nil, fmt.Errorf("解析求解结果失败: %v: %w", err, solver.ErrBadResponse)
	}
	return &answer, nil
}

// doRequest 执行 HTTP 请求并分类失败
// 401/403 映射为 ErrAuth，传输错误与其余非 2xx 映射为 ErrUnavailable
func (c *Client) doRequest(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("创建请求失败: %w", err)
	}

	req.Header.Set("User-Agent", "qprice-action/1.0")
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("X-Auth-Token", c.cfg.Token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("请求被取消: %w", ctx.Err())
		}
		return nil, fmt.Errorf("请求求解服务失败: %v: %w", err, solver.ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取响应体失败: %v: %w", err, solver.ErrUnavailable)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("HTTP %d: %w", resp.StatusCode, solver.ErrAuth)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("HTTP 状态码错误 %d: %w", resp.StatusCode, solver.ErrUnavailable)
	}

	return body, nil
}

// problemURL 拼接任务资源地址
func (c *Client) problemURL(jobID string) string {
	base := strings.TrimRight(c.cfg.Endpoint, "/") + "/api/v1/problems"
	if jobID == "" {
		return base
	}
	return base + "/" + jobID
}

// pollBackoff 构造轮询节奏控制器
// 配置缺省时使用默认轮询节奏
func pollBackoff(cfg config.PollConfig) *backoff.Backoff {
	if cfg.BaseMs <= 0 || cfg.MaxMs <= 0 {
		return backoff.NewPoll()
	}
	return backoff.New(
		time.Duration(cfg.BaseMs)*time.Millisecond,
		time.Duration(cfg.MaxMs)*time.Millisecond,
		cfg.Jitter,
	)
}
