// Package anneal 实现远端量子退火求解服务的客户端适配层。
package anneal

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/IrfanRazaRamma/QPriceAction/internal/solver"
)

// waitViaStream 通过 WebSocket 事件流等待任务终态
// 服务端推送状态变更，到达终态即返回；连接或读取失败立即
// 返回错误，不回退到轮询
func (c *Client) waitViaStream(ctx context.Context, jobID string) (*jobResponse, error) {
	wsURL, err := c.streamURL(jobID)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("User-Agent", "qprice-action/1.0")
	if c.cfg.Token != "" {
		header.Set("X-Auth-Token", c.cfg.Token)
	}

	dialer := websocket.Dialer{HandshakeTimeout: 10 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return nil, fmt.Errorf("连接事件流被拒绝 (HTTP %d): %w", resp.StatusCode, solver.ErrAuth)
		}
		return nil, fmt.Errorf("连接事件流失败: %v: %w", err, solver.ErrUnavailable)
	}
	defer conn.Close()

	c.logger.Info("事件流已连接", zap.String("job_id", jobID), zap.String("url", wsURL))

	// 上下文取消时关闭连接，让阻塞中的读取立即返回
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-watchDone:
		}
	}()

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}

	for {
		var ev statusEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("等待求解结果被取消: %w", ctx.Err())
			}
			return nil, fmt.Errorf("读取事件流失败: %v: %w", err, solver.ErrUnavailable)
		}

		c.logger.Debug("事件流状态",
			zap.String("job_id", jobID),
			zap.String("status", ev.Status))

		switch ev.Status {
		case StatusCompleted:
			return &jobResponse{ID: jobID, Status: StatusCompleted}, nil
		case StatusFailed:
			return nil, fmt.Errorf("任务 %s 执行失败: %s: %w", jobID, ev.Error, solver.ErrJobFailed)
		case StatusPending, StatusInProgress:
		default:
			return nil, fmt.Errorf("未知任务状态 %q: %w", ev.Status, solver.ErrBadResponse)
		}
	}
}

// streamURL 推导事件流地址
// 未显式配置时由 REST 端点推导: http→ws, https→wss
func (c *Client) streamURL(jobID string) (string, error) {
	base := c.cfg.Stream.URL
	if base == "" {
		base = c.cfg.Endpoint
	}

	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("解析事件流地址失败: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("事件流地址协议不支持: %q", u.Scheme)
	}

	u.Path = path.Join(u.Path, "api/v1/problems", jobID, "events")
	return u.String(), nil
}
