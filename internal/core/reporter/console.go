package reporter

import (
	"context"
	"fmt"

	"github.com/pterm/pterm" // 引入 pterm 库用于控制台输出
)

// ConsoleReporter 控制台输出
type ConsoleReporter struct{}

func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{}
}

func (r *ConsoleReporter) Report(ctx context.Context, data TabularData) error {
	if data == nil {
		return nil
	}
	return r.printTable(data)
}

// PrintResults 聚合打印一组结果 (适配 CLI 多目标/多端口批量输出)
func (r *ConsoleReporter) PrintResults(results []TabularData) {
	if len(results) == 0 {
		pterm.Warning.Println("No results found.")
		return
	}

	var headers []string
	var allRows [][]string

	for _, data := range results {
		if data == nil {
			continue
		}
		if len(headers) == 0 {
			headers = data.Headers()
		}
		allRows = append(allRows, data.Rows()...)
	}

	if len(headers) > 0 && len(allRows) > 0 {
		r.printTableFromData(headers, allRows)
	} else {
		pterm.Warning.Println("No results found.")
	}
}

func (r *ConsoleReporter) printTable(data TabularData) error {
	return r.printTableFromData(data.Headers(), data.Rows())
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
