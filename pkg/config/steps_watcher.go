package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// StepsWatcher 监视磁盘上的 steps.yaml，修改后重新解析并通过 Updates() 投递
//
// 监视的是文件所在目录（编辑器保存时常以"写临时文件 + 重命名"的方式替换文件）。
// 解析失败只记录日志，不投递。事件在后台 goroutine 中处理，
// 调用方需在主循环中非阻塞地读取 Updates()。
type StepsWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	updates  chan *StepsConfig
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool

	pendingSince time.Time
}

// NewStepsWatcher 创建监视器（尚未开始监视）
func NewStepsWatcher(path string) (*StepsWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &StepsWatcher{
		watcher:  watcher,
		path:     filepath.Clean(path),
		debounce: 200 * time.Millisecond,
		updates:  make(chan *StepsConfig, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Updates 返回重新加载成功的配置
// 通道容量为 1，未及时读取时只保留最新一份
func (w *StepsWatcher) Updates() <-chan *StepsConfig {
	return w.updates
}

// Start 开始监视（非阻塞）
func (w *StepsWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	log.Printf("[StepsWatcher] Watching %s", w.path)

	go w.run(ctx)
	return nil
}

// Stop 停止监视并等待后台 goroutine 退出
func (w *StepsWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		log.Printf("[StepsWatcher] Error closing watcher: %v", err)
	}
	log.Printf("[StepsWatcher] Stopped")
}

func (w *StepsWatcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.pendingSince = time.Now()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[StepsWatcher] Watch error: %v", err)

		case <-ticker.C:
			if w.pendingSince.IsZero() || time.Since(w.pendingSince) < w.debounce {
				continue
			}
			w.pendingSince = time.Time{}
			w.reload()
		}
	}
}

// reload 重新解析文件并投递结果
func (w *StepsWatcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		log.Printf("[StepsWatcher] Failed to read %s: %v", w.path, err)
		return
	}

	cfg, err := ParseStepsConfig(data)
	if err != nil {
		log.Printf("[StepsWatcher] Ignoring invalid update: %v", err)
		return
	}

	// 丢弃尚未被读取的旧配置
	select {
	case <-w.updates:
	default:
	}
	w.updates <- cfg
	log.Printf("[StepsWatcher] Reloaded %d steps", len(cfg.Steps))
}
