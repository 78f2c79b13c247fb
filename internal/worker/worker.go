// File: internal/worker/worker.go
package worker

import (
	"log/slog"
	"sync"
)

// Task 是交給 pool 執行的工作
type Task func()

// Pool 背景工作池；請求結束後才需要完成的副作用 (瀏覽數、通知) 都送進來
type Pool interface {
	Submit(Task)
	Stop()
}

// NewPool 建立 n 個 worker，n<=0 時為 1
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{jobs: make(chan Task, n*16)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				if job != nil {
					run(job)
				}
			}
		}()
	}
	return p
}

type pool struct {
	jobs chan Task
	wg   sync.WaitGroup
	mu   sync.RWMutex
	done bool
}

// Submit 在 Stop 之後送入的工作會被丟棄
func (p *pool) Submit(t Task) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.done {
		slog.Warn("worker pool stopped, task dropped")
		return
	}
	p.jobs <- t
}

// Stop 等待佇列中的工作全部完成
func (p *pool) Stop() {
	p.mu.Lock()
	if p.done {
		p.mu.Unlock()
		return
	}
	p.done = true
	close(p.jobs)
	p.mu.Unlock()
	p.wg.Wait()
}

// run 單一工作 panic 不影響 worker
func run(job Task) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("worker task panicked", "panic", r)
		}
	}()
	job()
}

// FakePool 同步執行工作，供測試使用
type FakePool struct {
	Submitted int
	Stopped   bool
}

func (f *FakePool) Submit(t Task) {
	f.Submitted++
	if t != nil {
		run(t)
	}
}

func (f *FakePool) Stop() { f.Stopped = true }
