/*
 * @Description: cron 任务装饰器：执行日志、结果分类、panic 恢复
 * @Author: 安知鱼
 * @Date: 2025-06-29 22:36:09
 * @LastEditTime: 2025-10-26 10:41:18
 * @LastEditors: 安知鱼
 */
package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// JobWrapper 是 cron.JobWrapper 的类型别名，用于简化代码。
type JobWrapper = cron.JobWrapper

// ErrJobSkipped 任务主动放弃本次执行，例如锁被其他实例持有。日志记为跳过而不是失败。
var ErrJobSkipped = errors.New("job skipped")

// namedJob 让外层装饰器仍能拿到任务名，并把 panic 记录转交给被包装的任务
type namedJob struct {
	name  string
	inner cron.Job
	run   func()
}

func (n namedJob) Run()         { n.run() }
func (n namedJob) Name() string { return n.name }

func (n namedJob) recordPanic(v any) {
	if rec, ok := n.inner.(interface{ recordPanic(any) }); ok {
		rec.recordPanic(v)
	}
}

// NewLoggingWrapper 为每次执行分配执行ID，并按任务返回的错误把结果记为完成、跳过、超时或失败。
func NewLoggingWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		name := getJobName(j)
		return namedJob{name: name, inner: j, run: func() {
			jobLogger := logger.With(
				slog.String("job_name", name),
				slog.String("execution_id", uuid.NewString()),
			)
			startTime := time.Now()
			jobLogger.Info("Job execution started")

			j.Run()

			logOutcome(jobLogger, jobErr(j), time.Since(startTime))
		}}
	}
}

func jobErr(j cron.Job) error {
	if reporter, ok := j.(interface{ Err() error }); ok {
		return reporter.Err()
	}
	return nil
}

func logOutcome(logger *slog.Logger, err error, duration time.Duration) {
	d := slog.Duration("duration", duration)
	switch {
	case err == nil:
		logger.Info("Job execution finished", d)
	case errors.Is(err, ErrJobSkipped):
		logger.Info("Job execution skipped", d, slog.String("reason", err.Error()))
	case errors.Is(err, context.DeadlineExceeded):
		logger.Error("Job execution timed out", d, slog.Any("error", err))
	default:
		logger.Error("Job execution failed", d, slog.Any("error", err))
	}
}

// NewPanicRecoveryWrapper 捕获任务中的 panic 并记录堆栈。
// 必须放在 SkipIfStillRunning 之内：后者不使用 defer 归还运行标记，panic 穿过它会让任务永远被跳过。
func NewPanicRecoveryWrapper(logger *slog.Logger) JobWrapper {
	return func(j cron.Job) cron.Job {
		name := getJobName(j)
		return namedJob{name: name, inner: j, run: func() {
			defer func() {
				if r := recover(); r != nil {
					if rec, ok := j.(interface{ recordPanic(any) }); ok {
						rec.recordPanic(r)
					}
					logger.Error("Job panicked",
						slog.String("job_name", name),
						slog.String("panic", fmt.Sprint(r)),
						slog.String("stack_trace", string(debug.Stack())),
					)
				}
			}()
			j.Run()
		}}
	}
}

// getJobName 优先使用任务的 Name()，否则返回类型名。
func getJobName(j cron.Job) string {
	if named, ok := j.(interface{ Name() string }); ok {
		return named.Name()
	}
	jobType := reflect.TypeOf(j)
	if jobType.Kind() == reflect.Ptr {
		return jobType.Elem().String()
	}
	return jobType.String()
}
