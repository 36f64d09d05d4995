package logx

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu   sync.Mutex
	file *os.File
)

// Init 把 logrus 标准 logger 初始化为“追加写入固定日志文件”的形态：
// 时间戳（秒级）+ 级别 + 消息，一行一条。
//
// 约束：
// - 进程级一次性初始化，重复调用是幂等 no-op（返回首次的结果）
// - 日志只进文件，不进 stdout/stderr（stdout 留给报告 JSON，stderr 留给进度输出）
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if file != nil {
		return nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	file = f

	logrus.SetOutput(f)
	logrus.SetLevel(logrus.InfoLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   true,
	})
	return nil
}
