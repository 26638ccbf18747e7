// Package jsonl 实现采样种群的 JSONL 文件导出。
// 一次性管线同步写入，每条采样一行，便于离线分析工具逐行消费。
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
)

// SamplesFileName 采样明细导出默认文件名
const SamplesFileName = "samples.jsonl"

// Writer JSONL 写入器
// 打开目标文件后逐条写入记录，Close 时统一刷新缓冲
type Writer struct {
	// path 输出文件路径
	path string
	// f 目标文件
	f *os.File
	// bw 缓冲写入器
	bw *bufio.Writer
}

// NewWriter 创建 JSONL 写入器
// 自动创建输出目录；已存在的文件会被截断重写
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("创建输出目录失败: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("打开输出文件失败: %w", err)
	}

	return &Writer{
		path: path,
		f:    f,
		bw:   bufio.NewWriter(f),
	}, nil
}

// Write 写入一条 JSONL 记录
func (w *Writer) Write(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("编码 JSONL 记录失败: %w", err)
	}
	if _, err := w.bw.Write(b); err != nil {
		return fmt.Errorf("写入 JSONL 记录失败: %w", err)
	}
	if err := w.bw.WriteByte('\n'); err != nil {
		return fmt.Errorf("写入 JSONL 记录失败: %w", err)
	}
	return nil
}

// Close 刷新缓冲并关闭文件
func (w *Writer) Close() error {
	if w == nil {
		return nil
	}
	flushErr := w.bw.Flush()
	closeErr := w.f.Close()
	if flushErr != nil {
		return fmt.Errorf("刷新输出缓冲失败: %w", flushErr)
	}
	return closeErr
}

// WriteSampleSet 导出整个采样结果集
// 每条采样一行，行顺序与结果集一致（能量升序）
func WriteSampleSet(path string, set *model.SampleSet) error {
	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	for i := range set.Samples {
		if err := w.Write(&set.Samples[i]); err != nil {
			_ = w.Close()
			return err
		}
	}
	return w.Close()
}
