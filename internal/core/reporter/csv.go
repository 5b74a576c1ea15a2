package reporter

import (
	"encoding/csv"
	"fmt"
	"os"
)

// CsvReporter 负责将结果导出为 CSV 文件
type CsvReporter struct {
	FilePath string
}

func NewCsvReporter(filePath string) *CsvReporter {
	return &CsvReporter{
		FilePath: filePath,
	}
}

// Report 一次性将全部结果写入 CSV 文件
func (r *CsvReporter) Report(items []TabularData) error {
	return SaveCsvResult(r.FilePath, items)
}

// SaveCsvResult 这是一个辅助函数，用于一次性将结果保存为 CSV
func SaveCsvResult(path string, items []TabularData) error {
	if len(items) == 0 {
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %v", err)
	}
	defer f.Close()

	// 写入 UTF-8 BOM，防止 Excel 打开乱码
	f.WriteString("\xEF\xBB\xBF")

	w := csv.NewWriter(f)
	defer w.Flush()

	headers := items[0].Headers()
	var allRows [][]string
	for _, item := range items {
		allRows = append(allRows, item.Rows()...)
	}

	// 写入表头
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("failed to write headers: %v", err)
	}

	// 写入行数据
	if err := w.WriteAll(allRows); err != nil {
		return fmt.Errorf("failed to write rows: %v", err)
	}

	fmt.Printf("[+] Results saved to %s\n", path)
	return nil
}
