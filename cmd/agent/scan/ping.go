package scan

import (
	"context"
	"fmt"
	"time"

	"neoagent/internal/core/reporter"
	"neoagent/internal/core/scanner/alive"

	"github.com/spf13/cobra"
)

// PingOptions 定义 ping 命令的参数
type PingOptions struct {
	Target      string
	Count       int
	Interval    time.Duration
	Timeout     time.Duration
	Concurrency int
	Verbose     bool
	OutputJson  string
}

// NewPingScanCmd 创建 scan ping 命令
func NewPingScanCmd() *cobra.Command {
	opts := &PingOptions{
		Count:       4,
		Interval:    time.Second,
		Timeout:     2 * time.Second,
		Concurrency: 20,
	}

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "ICMP 存活探测",
		Long:  `对一个或多个目标发送 ICMP Echo Request 序列，统计发送/接收/丢包率与往返时延。`,
		Example: `  neoAgent scan ping -t 192.168.1.1
  neoAgent scan ping -t 192.168.1.0/28 -c 3 --concurrency 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Target == "" {
				return fmt.Errorf("target is required")
			}

			dsts, err := parseTargets(opts.Target)
			if err != nil {
				return err
			}

			cfg := alive.Config{
				Timeout:     opts.Timeout,
				Interval:    opts.Interval,
				Count:       opts.Count,
				Verbose:     opts.Verbose,
				Concurrency: opts.Concurrency,
			}

			fmt.Printf("[*] Pinging %d target(s)...\n", len(dsts))
			results, err := alive.RunWithFallback(context.Background(), dsts, cfg)
			if err != nil {
				return err
			}

			console := reporter.NewConsoleReporter()
			rows := make([]reporter.TabularData, 0, len(results))
			for _, dst := range dsts {
				if s, ok := results[dst.String()]; ok {
					rows = append(rows, s)
				}
			}
			console.PrintResults(rows)

			if opts.OutputJson != "" {
				saveJsonResult(opts.OutputJson, results)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Target, "target", "t", "", "探测目标 (IP/CIDR，逗号分隔)")
	flags.IntVarP(&opts.Count, "count", "c", opts.Count, "每个目标发送的 Echo Request 数")
	flags.DurationVar(&opts.Interval, "interval", opts.Interval, "同一目标连续两次发包的间隔")
	flags.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "单次探测等待回包的超时")
	flags.IntVar(&opts.Concurrency, "concurrency", opts.Concurrency, "多目标并发探测数")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", opts.Verbose, "打印每个序列号的探测结果")
	flags.StringVar(&opts.OutputJson, "oj", "", "将结果保存为 JSON 文件")

	return cmd
}
