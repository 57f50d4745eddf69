// 自定义日志格式化器
package logger

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// FormatTimestamp 格式化时间戳为统一的毫秒精度格式
// 返回格式："2006-01-02 15:04:05.000"
func FormatTimestamp(t time.Time) string {
	// 除了日志管理器之外的其他模块使用的时间戳格式
	return t.Format("2006-01-02 15:04:05.000")
}

// NowFormatted 返回当前时间的格式化字符串
// 返回格式："2006-01-02 15:04:05.000"
func NowFormatted() string {
	return FormatTimestamp(time.Now())
}

// LogType 日志类型枚举
type LogType string

const (
	// SystemLog 系统日志 - 记录系统运行状态
	SystemLog LogType = "system"
	// ScanLog 扫描日志 - 记录探测/扫描任务执行情况
	ScanLog LogType = "scan"
)

// ScanLogEntry 扫描日志条目结构（ping/syn 共用）
type ScanLogEntry struct {
	Timestamp time.Time `json:"timestamp"`
	TaskID    string    `json:"task_id"`
	ScanType  string    `json:"scan_type"` // "ping" 或 "syn"
	Target    string    `json:"target"`
	Status    string    `json:"status"` // running, completed, failed
	Progress  int       `json:"progress"`
	Result    string    `json:"result"`
	Duration  int64     `json:"duration"`
}

// LogScanOperation 记录扫描操作日志
// 用于记录 ping/syn 扫描任务的执行情况
func LogScanOperation(taskID, scanType, target, status string, progress int, result string, duration int64, extraFields map[string]interface{}) {
	if LoggerInstance == nil {
		return
	}

	entry := ScanLogEntry{
		TaskID:   taskID,
		ScanType: scanType,
		Target:   target,
		Status:   status,
		Progress: progress,
		Result:   result,
		Duration: duration,
	}

	fields := logrus.Fields{
		"type":      ScanLog,
		"task_id":   entry.TaskID,
		"scan_type": entry.ScanType,
		"target":    entry.Target,
		"status":    entry.Status,
		"progress":  entry.Progress,
		"result":    entry.Result,
		"duration":  entry.Duration,
	}
	for k, v := range extraFields {
		fields[k] = v
	}

	switch status {
	case "completed":
		LoggerInstance.logger.WithFields(fields).Info(fmt.Sprintf("scan completed: %s on %s", scanType, target))
	case "failed":
		LoggerInstance.logger.WithFields(fields).Error(fmt.Sprintf("scan failed: %s on %s", scanType, target))
	case "running":
		LoggerInstance.logger.WithFields(fields).Debug(fmt.Sprintf("scan running: %s on %s (%d%%)", scanType, target, progress))
	default:
		LoggerInstance.logger.WithFields(fields).Info(fmt.Sprintf("scan %s: %s on %s", status, scanType, target))
	}
}
