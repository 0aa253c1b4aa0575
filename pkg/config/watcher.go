package config

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultReloadDebounce 文件变更合并窗口
const DefaultReloadDebounce = 100 * time.Millisecond

// Watcher 监视配置文件并在变更时重新加载
//
// 监视的是文件所在目录（编辑器常以"写临时文件再重命名"的方式保存），
// 只处理目标文件的事件。重新加载的配置通过 Updates() 通道交给游戏循环，
// 由游戏循环在自己的 goroutine 中应用。
type Watcher struct {
	path     string
	debounce time.Duration
	watcher  *fsnotify.Watcher
	updates  chan *CarouselConfig
	done     chan struct{}
}

// NewWatcher 创建配置监视器
//
// 参数：
//   - path: 配置文件路径（必须是外部文件）
//
// 返回：
//   - *Watcher: 监视器，需调用 Start 开始监视
//   - error: 创建文件监视失败时返回错误
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: DefaultReloadDebounce,
		watcher:  fw,
		updates:  make(chan *CarouselConfig, 1),
		done:     make(chan struct{}),
	}, nil
}

// Updates 返回重新加载后的配置通道
// 通道只保留最新的一份配置
func (w *Watcher) Updates() <-chan *CarouselConfig {
	return w.updates
}

// Start 在后台开始监视，ctx 取消或 Close 后停止
func (w *Watcher) Start(ctx context.Context) {
	go w.loop(ctx)
}

// Close 停止监视并释放资源
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
		close(w.done)
	}
	return w.watcher.Close()
}

func (w *Watcher) loop(ctx context.Context) {
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			debounce.Reset(w.debounce)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[ConfigWatcher] Watcher error: %v", err)

		case <-debounce.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	cfg, err := LoadCarouselConfig(w.path)
	if err != nil {
		log.Printf("[ConfigWatcher] 重新加载失败，保留当前配置: %v", err)
		return
	}
	log.Printf("[ConfigWatcher] 配置已重新加载: %s", w.path)

	// 丢弃尚未被消费的旧配置，只保留最新一份
	select {
	case <-w.updates:
	default:
	}
	select {
	case w.updates <- cfg:
	default:
	}
}
