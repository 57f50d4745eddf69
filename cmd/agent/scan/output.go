package scan

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strings"
)

// saveJsonResult 将结果写出为 JSON 文件，镜像旧版各扫描子命令的 --oj 逻辑。
func saveJsonResult(path string, data interface{}) {
	f, err := os.Create(path)
	if err != nil {
		fmt.Printf("[-] Failed to create output file: %v\n", err)
		return
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		fmt.Printf("[-] Failed to write json output: %v\n", err)
		return
	}
	fmt.Printf("[+] Results saved to %s\n", path)
}

// parseTargets 接受一个逗号分隔的 IP/CIDR 列表并展开为具体地址。
// 不做 DNS 解析：探测层只认 IP，域名解析留给调用者。
func parseTargets(input string) ([]net.IP, error) {
	var out []net.IP
	for _, part := range strings.Split(input, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "/") {
			ip, ipNet, err := net.ParseCIDR(part)
			if err != nil {
				return nil, fmt.Errorf("invalid CIDR %q: %w", part, err)
			}
			for cur := ip.Mask(ipNet.Mask); ipNet.Contains(cur); incIP(cur) {
				dup := make(net.IP, len(cur))
				copy(dup, cur)
				out = append(out, dup)
			}
			continue
		}
		ip := net.ParseIP(part)
		if ip == nil {
			return nil, fmt.Errorf("invalid target %q", part)
		}
		out = append(out, ip)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no valid targets in %q", input)
	}
	return out, nil
}

func incIP(ip net.IP) {
	for j := len(ip) - 1; j >= 0; j-- {
		ip[j]++
		if ip[j] > 0 {
			break
		}
	}
}
