package analyze

import (
	"fmt"
	"os/exec"
	"runtime"
)

// 通过可替换的函数指针，让测试不真正调起查看器。
var startViewer = func(cmd *exec.Cmd) error { return cmd.Start() }

// Show 尝试用系统默认查看器打开图表（等价于交互式展示）。
// 只负责调起，不等待退出；失败由调用方决定如何记录。
func Show(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}
	if err := startViewer(cmd); err != nil {
		return fmt.Errorf("调起查看器失败：%w", err)
	}
	return nil
}
