package scan

import (
	"context"
	"fmt"
	"net"
	"time"

	"neoagent/internal/core/reporter"
	"neoagent/internal/core/scanner/synscan"

	"github.com/spf13/cobra"
)

// SynOptions 定义 syn 命令的参数
type SynOptions struct {
	Target      string
	Ports       string
	Timeout     time.Duration
	Concurrency int
	OutputJson  string
}

// NewSynScanCmd 创建 scan syn 命令
func NewSynScanCmd() *cobra.Command {
	opts := &SynOptions{
		Ports:       "1-1024",
		Timeout:     2 * time.Second,
		Concurrency: 100,
	}

	cmd := &cobra.Command{
		Use:   "syn",
		Short: "TCP SYN 半开扫描",
		Long:  `对目标端口范围发送 TCP SYN，依据 SYN+ACK/RST 判定端口开放状态；收到 SYN+ACK 时回送 ACK 完成握手，随后以 FIN+ACK 关闭。`,
		Example: `  neoAgent scan syn -t 192.168.1.1 -p 1-1024
  neoAgent scan syn -t 192.168.1.1,192.168.1.2 -p 443`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Target == "" {
				return fmt.Errorf("target is required")
			}

			dsts, err := parseTargets(opts.Target)
			if err != nil {
				return err
			}

			loPort, hiPort, err := parsePortRange(opts.Ports)
			if err != nil {
				return err
			}

			srcIP, err := localSourceIP(dsts[0])
			if err != nil {
				return fmt.Errorf("failed to determine local source IP: %w", err)
			}

			cfg := synscan.Config{
				SrcIP:       srcIP,
				LoPort:      loPort,
				HiPort:      hiPort,
				Timeout:     opts.Timeout,
				Concurrency: opts.Concurrency,
			}

			scanner, err := synscan.New(cfg)
			if err != nil {
				return err
			}
			defer scanner.Close()

			fmt.Printf("[*] SYN scanning %d target(s), ports %d-%d...\n", len(dsts), loPort, hiPort)
			report, err := scanner.Run(context.Background(), dsts)
			if err != nil {
				return err
			}

			rows := report.Rows()
			console := reporter.NewConsoleReporter()
			tabular := make([]reporter.TabularData, len(rows))
			for i, r := range rows {
				tabular[i] = r
			}
			console.PrintResults(tabular)

			if opts.OutputJson != "" {
				saveJsonResult(opts.OutputJson, report.OpenPorts)
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Target, "target", "t", "", "扫描目标 (IP/CIDR，逗号分隔)")
	flags.StringVarP(&opts.Ports, "ports", "p", opts.Ports, "端口范围 (lo-hi)")
	flags.DurationVar(&opts.Timeout, "timeout", opts.Timeout, "单个端口等待 SYN+ACK/RST 的超时")
	flags.IntVar(&opts.Concurrency, "concurrency", opts.Concurrency, "并发探测的 (目标,端口) 对数")
	flags.StringVar(&opts.OutputJson, "oj", "", "将结果保存为 JSON 文件")

	return cmd
}

func parsePortRange(s string) (int, int, error) {
	var lo, hi int
	if _, err := fmt.Sscanf(s, "%d-%d", &lo, &hi); err == nil {
		return lo, hi, nil
	}
	if _, err := fmt.Sscanf(s, "%d", &lo); err == nil {
		return lo, lo, nil
	}
	return 0, 0, fmt.Errorf("invalid port range %q, expected 'lo-hi' or a single port", s)
}

// localSourceIP finds the local address the kernel would route dst
// through, by opening (and immediately discarding) a UDP socket to it —
// no packet is sent, this only drives route selection.
func localSourceIP(dst net.IP) (net.IP, error) {
	conn, err := net.Dial("udp", net.JoinHostPort(dst.String(), "80"))
	if err != nil {
		return nil, err
	}
	defer conn.Close()
	return conn.LocalAddr().(*net.UDPAddr).IP, nil
}
