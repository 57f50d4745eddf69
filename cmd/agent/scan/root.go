package scan

import (
	"github.com/spf13/cobra"
)

// NewScanCmd 创建 scan 父命令
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "执行扫描任务",
		Long: `执行各类探测任务：ICMP 存活探测、TCP SYN 半开端口扫描。
请使用具体的子命令。`,
	}

	// 注册子命令
	cmd.AddCommand(NewPingScanCmd())
	cmd.AddCommand(NewSynScanCmd())

	return cmd
}
