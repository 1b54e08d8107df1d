package scenes

// asyncRunner 把阻塞的流程调用（对话框 Fire 在游戏循环外阻塞）
// 搬到 goroutine 执行，完成后把收尾闭包送回游戏循环应用
//
// 场景每帧先 pump，busy 期间忽略输入。同一时刻最多一个在途调用。
type asyncRunner struct {
	busy bool
	done chan func()
}

func newAsyncRunner() *asyncRunner {
	return &asyncRunner{done: make(chan func(), 4)}
}

// run 发起一个阻塞调用；blocking 返回要在游戏循环里应用的收尾闭包
func (r *asyncRunner) run(blocking func() func()) bool {
	if r.busy {
		return false
	}
	r.busy = true
	go func() {
		apply := blocking()
		r.done <- apply
	}()
	return true
}

// pump 应用已完成调用的收尾闭包（在游戏循环的 Update 里调用）
func (r *asyncRunner) pump() {
	for {
		select {
		case apply := <-r.done:
			r.busy = false
			if apply != nil {
				apply()
			}
		default:
			return
		}
	}
}
