// Package series 加载行情收盘价序列。
// 支持配置内联数据点与两列 CSV 文件两种来源，加载阶段只做
// 格式与非空校验，不修改行情内容。
package series

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/IrfanRazaRamma/QPriceAction/internal/config"
	"github.com/IrfanRazaRamma/QPriceAction/internal/core/model"
	"github.com/IrfanRazaRamma/QPriceAction/internal/util/fastparse"
	"github.com/IrfanRazaRamma/QPriceAction/internal/util/timeutil"
)

// Load 按配置加载价格序列
// 配置了文件路径时从 CSV 读取，否则使用内联数据点
func Load(cfg config.SeriesConfig) ([]model.PricePoint, error) {
	if cfg.File != "" {
		return FromCSV(cfg.File)
	}
	return FromPoints(cfg.Points)
}

// FromPoints 从配置内联数据点构建价格序列
// 空数据集返回 model.ErrEmptySeries，格式错误返回 model.ErrInvalidPoint
func FromPoints(points []config.SeriesPoint) ([]model.PricePoint, error) {
	if len(points) == 0 {
		return nil, model.ErrEmptySeries
	}
	out := make([]model.PricePoint, 0, len(points))
	for i, p := range points {
		ts, err := timeutil.ParseDataTime(p.Date)
		if err != nil {
			return nil, fmt.Errorf("第 %d 个数据点日期 %q 解析失败: %w", i, p.Date, model.ErrInvalidPoint)
		}
		pt := model.PricePoint{Timestamp: ts, Close: p.Close}
		if !pt.IsValid() {
			return nil, fmt.Errorf("第 %d 个数据点收盘价 %v 无效: %w", i, p.Close, model.ErrInvalidPoint)
		}
		out = append(out, pt)
	}
	return out, nil
}

// FromCSV 从 CSV 文件加载价格序列
// 前两列依次为日期与收盘价，多余列忽略；首行无法解析为数据时
// 视作表头跳过
func FromCSV(path string) ([]model.PricePoint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开行情文件失败: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("读取行情文件失败: %w", err)
	}
	if len(records) == 0 {
		return nil, model.ErrEmptySeries
	}

	out := make([]model.PricePoint, 0, len(records))
	for row, rec := range records {
		if len(rec) < 2 {
			return nil, fmt.Errorf("第 %d 行列数不足: %w", row+1, model.ErrInvalidPoint)
		}

		closePx, err := fastparse.ParseFloat(rec[1])
		if err != nil {
			// 首行解析失败按表头处理
			if row == 0 {
				continue
			}
			return nil, fmt.Errorf("第 %d 行收盘价 %q 解析失败: %w", row+1, rec[1], model.ErrInvalidPoint)
		}

		ts, err := timeutil.ParseDataTime(rec[0])
		if err != nil {
			return nil, fmt.Errorf("第 %d 行日期 %q 解析失败: %w", row+1, rec[0], model.ErrInvalidPoint)
		}

		pt := model.PricePoint{Timestamp: ts, Close: closePx}
		if !pt.IsValid() {
			return nil, fmt.Errorf("第 %d 行收盘价 %v 无效: %w", row+1, closePx, model.ErrInvalidPoint)
		}
		out = append(out, pt)
	}

	if len(out) == 0 {
		return nil, model.ErrEmptySeries
	}
	return out, nil
}
