package viscosity

import (
	"context"
	"errors"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var ErrExecutorStopped = errors.New("executor stopped")

// Executor 批量分析。worker 常驻，批次按区间切片后分发。
// dispatchChan 无缓冲，Stop 之后不会有切片滞留在通道里
type Executor struct {
	model        *Model
	workers      int
	dispatchChan chan task

	quit     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

type task struct {
	start int
	end   int
	comps []Composition
	res   []Analysis
	done  *sync.WaitGroup
}

func NewExecutor(m *Model, workers int) *Executor {
	if workers < 1 {
		workers = 1
	}
	return &Executor{
		model:        m,
		workers:      workers,
		dispatchChan: make(chan task),
		quit:         make(chan struct{}),
	}
}

func (e *Executor) Run() {
	for i := 0; i < e.workers; i++ {
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			for {
				select {
				case t := <-e.dispatchChan:
					for j := t.start; j < t.end; j++ {
						t.res[j] = e.model.Analyze(t.comps[j])
					}
					t.done.Done()
				case <-e.quit:
					return
				}
			}
		}()
	}
}

// Stop 等待正在执行的切片完成
func (e *Executor) Stop() {
	e.stopOnce.Do(func() {
		close(e.quit)
	})
	e.wg.Wait()
}

// DispatchTask 结果与输入一一对应。ctx 取消后不再分发，已分发的切片执行完才返回
func (e *Executor) DispatchTask(ctx context.Context, comps []Composition) ([]Analysis, time.Duration, error) {
	start := time.Now()
	res := make([]Analysis, len(comps))
	if len(comps) == 0 {
		return res, time.Since(start), nil
	}

	var done sync.WaitGroup
	var err error
dispatch:
	for _, t := range e.split(len(comps)) {
		t.comps, t.res, t.done = comps, res, &done
		done.Add(1)
		select {
		case e.dispatchChan <- t:
		case <-ctx.Done():
			done.Done()
			err = ctx.Err()
			break dispatch
		case <-e.quit:
			done.Done()
			err = ErrExecutorStopped
			break dispatch
		}
	}
	done.Wait()

	cost := time.Since(start)
	log.WithFields(log.Fields{
		"size":    len(comps),
		"workers": e.workers,
		"cost":    cost,
	}).Debug("批量分析完成")
	if err != nil {
		return nil, cost, err
	}
	return res, cost, nil
}

// split 每个 worker 分到两片，余数逐个分发
func (e *Executor) split(total int) []task {
	taskLen, remainder := total/e.workers, total%e.workers
	tasks := make([]task, 0, e.workers*2+remainder)
	start := 0
	if taskLen > 0 {
		half1 := taskLen / 2
		half2 := taskLen - half1
		for w := 0; w < e.workers; w++ {
			if half1 != 0 {
				tasks = append(tasks, task{start: start, end: start + half1})
				start += half1
			}
			tasks = append(tasks, task{start: start, end: start + half2})
			start += half2
		}
	}
	for i := 0; i < remainder; i++ {
		tasks = append(tasks, task{start: start, end: start + 1})
		start++
	}
	return tasks
}
