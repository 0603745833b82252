package assets

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"path"

	"github.com/decker502/virtuallab/pkg/scene"
	"golang.org/x/sync/semaphore"
)

// LoadCallback 资源加载完成回调
// 在调用 Poll/Drain 的 goroutine（游戏主循环）上执行
type LoadCallback func(model *scene.Model, err error)

type loadResult struct {
	id    string
	model *scene.Model
	err   error
	done  LoadCallback
}

// Loader 异步模型加载器
//
// 每次 Load 在后台 goroutine 中读取并解析模型，并发数由信号量限制；
// 完成的结果进入通道，由主循环调用 Poll 取出并执行回调。
// 因此回调的执行顺序取决于加载完成的先后，不保证与 Load 调用顺序一致。
type Loader struct {
	fsys    fs.FS
	dir     string
	ctx     context.Context
	sem     *semaphore.Weighted
	results chan loadResult
	pending int
}

// NewLoader 创建加载器
//
// 参数：
//   - ctx: 取消后尚未开始的加载以错误结束
//   - fsys: 资源文件系统
//   - dir: 模型目录，如 "data/models"
//   - concurrency: 最大并发加载数
func NewLoader(ctx context.Context, fsys fs.FS, dir string, concurrency int64) *Loader {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Loader{
		fsys:    fsys,
		dir:     dir,
		ctx:     ctx,
		sem:     semaphore.NewWeighted(concurrency),
		results: make(chan loadResult, 16),
	}
}

// Load 异步加载模型 id（对应 <dir>/<id>.yaml），不阻塞调用方
func (l *Loader) Load(id string, done LoadCallback) {
	l.pending++

	go func() {
		model, err := l.load(id)
		l.results <- loadResult{id: id, model: model, err: err, done: done}
	}()
}

func (l *Loader) load(id string) (*scene.Model, error) {
	if err := l.sem.Acquire(l.ctx, 1); err != nil {
		return nil, fmt.Errorf("load of %s cancelled: %w", id, err)
	}
	defer l.sem.Release(1)

	file := path.Join(l.dir, id+".yaml")
	data, err := fs.ReadFile(l.fsys, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read model %s: %w", file, err)
	}

	model, err := ParseModel(data)
	if err != nil {
		return nil, fmt.Errorf("invalid model %s: %w", file, err)
	}
	return model, nil
}

// Pending 尚未执行回调的加载数
func (l *Loader) Pending() int {
	return l.pending
}

// Poll 执行所有已完成加载的回调（非阻塞），返回执行的回调数
func (l *Loader) Poll() int {
	n := 0
	for {
		select {
		case r := <-l.results:
			l.dispatch(r)
			n++
		default:
			return n
		}
	}
}

// Drain 阻塞直到所有加载完成并执行回调
func (l *Loader) Drain(ctx context.Context) error {
	for l.pending > 0 {
		select {
		case r := <-l.results:
			l.dispatch(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (l *Loader) dispatch(r loadResult) {
	l.pending--
	if r.err != nil {
		log.Printf("[AssetLoader] Failed to load %s: %v", r.id, r.err)
	} else {
		log.Printf("[AssetLoader] Loaded %s (%s)", r.id, r.model.Name())
	}
	if r.done != nil {
		r.done(r.model, r.err)
	}
}
