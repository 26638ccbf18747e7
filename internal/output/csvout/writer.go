// Package csvout 实现信号序列的 CSV 文件导出。
// 列布局: Date, Close, Buy_Signal, Sell_Signal。
package csvout

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
	"github.com/IrfanRazaRamma/QPriceAction/internal/util/fastparse"
	"github.com/IrfanRazaRamma/QPriceAction/internal/util/timeutil"
)

// SignalsFileName 信号导出默认文件名
const SignalsFileName = "trading_signals.csv"

// WriteSignals 将信号序列导出为 CSV 文件
// 自动创建输出目录；已存在的文件会被截断重写
func WriteSignals(path string, series *model.SignalSeries) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("创建输出目录失败: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建信号文件失败: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Close", "Buy_Signal", "Sell_Signal"}); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}

	for i := range series.Entries {
		entry := &series.Entries[i]
		record := []string{
			timeutil.FormatDataTime(entry.Timestamp),
			fastparse.FormatFloat(entry.Close, -1),
			fastparse.FormatBool(entry.Buy),
			fastparse.FormatBool(entry.Sell),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("写入第 %d 行失败: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("刷新信号文件失败: %w", err)
	}
	return nil
}
