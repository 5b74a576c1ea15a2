package reporter

import (
	"fmt"

	"github.com/pterm/pterm" // 引入 pterm 库用于控制台输出
)

// ConsoleReporter 控制台输出
type ConsoleReporter struct{}

func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

// Report 聚合同构结果为一张表输出
// 表头取第一个元素的，其余元素只贡献行
func (r *ConsoleReporter) Report(items []TabularData) error {
	if len(items) == 0 {
		pterm.Warning.Println("No results found.")
		return nil
	}

	headers := items[0].Headers()
	var allRows [][]string
	for _, item := range items {
		allRows = append(allRows, item.Rows()...)
	}

	return r.printTableFromData(headers, allRows)
}

func (r *ConsoleReporter) printTableFromData(headers []string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}

	// 使用 pterm 渲染表格
	tableData := pterm.TableData{headers}
	tableData = append(tableData, rows...)

	err := pterm.DefaultTable.
		WithHasHeader(true).
		WithBoxed(false). // 简洁风格
		WithData(tableData).
		Render()

	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	return nil
}
