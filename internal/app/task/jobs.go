// internal/app/task/jobs.go
package task

import (
	"context"
	"fmt"
	"time"
)

// Job 是所有定时任务的统一接口，返回的错误由日志装饰器记录。
type Job interface {
	Name() string
	Execute(ctx context.Context) error
}

// runner 把 Job 适配为 cron.Job，每次执行都带超时上下文
type runner struct {
	job     Job
	timeout time.Duration
	lastErr error
}

func newRunner(job Job, timeout time.Duration) *runner {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &runner{job: job, timeout: timeout}
}

func (r *runner) Run() {
	r.lastErr = nil
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	r.lastErr = r.job.Execute(ctx)
}

func (r *runner) Name() string {
	return r.job.Name()
}

func (r *runner) recordPanic(v any) {
	r.lastErr = fmt.Errorf("panic: %v", v)
}

// Err 返回最近一次执行的错误，cron 保证同一任务串行执行时才可安全读取
func (r *runner) Err() error {
	return r.lastErr
}
