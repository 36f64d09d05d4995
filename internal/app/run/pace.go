package run

import (
	"math/rand"
	"time"
)

// 通过可替换的函数指针，让测试不真正休眠。
var sleepFunc = time.Sleep

// pace 在页与页之间随机休眠，闭区间 [min, max]。
// 失败页之后同样休眠：紧凑的连续请求更容易触发反爬。
func pace(min, max time.Duration) {
	sleepFunc(randDuration(min, max))
}

func randDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}
