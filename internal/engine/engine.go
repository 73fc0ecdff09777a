package engine

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/scene2video/internal/canvas"
	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/explainers"
	"github.com/ivlev/scene2video/internal/system"
	"github.com/ivlev/scene2video/internal/timeline"
	"github.com/ivlev/scene2video/internal/video"
)

// window bounds the frames in flight per worker; the reorder buffer never
// holds more than Workers*window frames.
const window = 2

type VideoProject struct {
	Config    config.Config
	Explainer explainers.Explainer
	Theme     config.Theme
	Timeline  *timeline.Timeline
	Encoder   video.VideoEncoder
	Fallback  video.VideoEncoder // nil отключает запасной вариант
}

// Result describes the produced artifact
type Result struct {
	Path     string
	Frames   int
	Fallback bool // Артефакт записан запасным энкодером
	Primary  error
	Stats    Stats
}

// Stats are timings of one run
type Stats struct {
	Total     time.Duration
	Render    time.Duration
	Buffers   int64
	Duration  float64 // Длительность готового файла по ffprobe, 0 если неизвестна
	Effective float64 // Кадров в секунду с учётом кодирования
}

func NewVideoProject(cfg config.Config, e explainers.Explainer, ve video.VideoEncoder) *VideoProject {
	cfg.Video = e.Name()
	p := &VideoProject{
		Config:    e.Defaults().Apply(cfg),
		Explainer: e,
		Theme:     e.Theme(),
		Encoder:   ve,
	}
	if p.Config.HasFallback() {
		p.Fallback = &video.GIFEncoder{}
	}
	return p
}

func (p *VideoProject) Run(ctx context.Context) (*Result, error) {
	startTime := time.Now()
	cfg := p.Config

	tl := p.Timeline
	if tl == nil {
		var err error
		if tl, err = explainers.Timeline(p.Explainer); err != nil {
			return nil, fmt.Errorf("таймлайн %s: %w", p.Explainer.Name(), err)
		}
	}
	frames := tl.FrameCount(cfg.FPS)
	if frames == 0 {
		return nil, fmt.Errorf("таймлайн %s не содержит кадров", p.Explainer.Name())
	}

	// Энкодер проверяем до создания каких-либо файлов
	if err := p.Encoder.Available(); err != nil {
		return nil, err
	}
	if err := system.EnsureDir(cfg.OutputDir); err != nil {
		return nil, err
	}

	renderer, err := p.Explainer.NewRenderer(cfg, p.Theme)
	if err != nil {
		return nil, fmt.Errorf("инициализация рендерера: %w", err)
	}

	workers := system.ClampWorkers(cfg.Workers, frames)
	fmt.Printf("--- [%s] ---\n", p.Explainer.Title())
	fmt.Printf("[*] Сцен: %d | Длительность: %.2fs | Кадров: %d\n", tl.Len(), tl.Total(), frames)
	fmt.Printf("[*] Разрешение: %dx%d @ %d FPS | Потоков: %d\n", cfg.Width, cfg.Height, cfg.FPS, workers)
	if p.Timeline != nil && cfg.TimelinePath != "" {
		fmt.Printf("[*] Длительности сцен из %s\n", cfg.TimelinePath)
	}

	pool := system.NewImagePool(image.Rect(0, 0, cfg.Width, cfg.Height))
	job := renderJob{
		tl:       tl,
		renderer: renderer,
		pool:     pool,
		fps:      cfg.FPS,
		frames:   frames,
		workers:  workers,
		progress: cfg.Progress,
	}

	res := &Result{Frames: frames}
	opts := video.Options{
		Path:      p.primaryPath(),
		Width:     cfg.Width,
		Height:    cfg.Height,
		FPS:       cfg.FPS,
		SourceFPS: cfg.FPS,
		Codec:     cfg.VideoEncoder,
		Quality:   cfg.Quality,
	}

	renderStart := time.Now()
	err = job.encode(ctx, p.Encoder, opts)
	if err != nil && ctx.Err() == nil && p.Fallback != nil {
		log.Printf("[!] Основной энкодер не справился: %v", err)
		res.Primary = err
		err = p.fallback(ctx, job, opts)
		if err != nil {
			return nil, errors.Join(res.Primary, err)
		}
		res.Fallback = true
		opts.Path = p.fallbackPath()
	}
	if err != nil {
		return nil, err
	}

	res.Path = opts.Path
	res.Stats = Stats{
		Total:   time.Since(startTime),
		Render:  time.Since(renderStart),
		Buffers: pool.Allocated(),
	}
	res.Stats.Effective = float64(frames) / res.Stats.Render.Seconds()

	if cfg.ShowStats {
		if !res.Fallback {
			if d, err := video.ProbeDuration(res.Path); err == nil {
				res.Stats.Duration = d
			}
		}
		p.report(res)
	}
	return res, nil
}

// fallback drops the partial primary output and renders everything again
// into the fallback encoder at its own frame rate.
func (p *VideoProject) fallback(ctx context.Context, job renderJob, primary video.Options) error {
	if err := os.Remove(primary.Path); err != nil && !os.IsNotExist(err) {
		log.Printf("[!] Не удалось удалить частичный файл %s: %v", primary.Path, err)
	}
	if err := p.Fallback.Available(); err != nil {
		return err
	}

	opts := primary
	opts.Path = p.fallbackPath()
	opts.FPS = p.Config.FallbackFPS

	need := video.EstimateGIFMemory(opts.Width, opts.Height, job.frames, opts.SourceFPS, opts.FPS)
	if err := system.CheckMemory(need); err != nil {
		return fmt.Errorf("запасной вариант: %w", err)
	}

	fmt.Printf("[*] Повторный рендер в %s @ %d FPS\n", opts.Path, opts.FPS)
	return job.encode(ctx, p.Fallback, opts)
}

func (p *VideoProject) primaryPath() string {
	return filepath.Join(p.Config.OutputDir, p.Config.Video+p.Encoder.Ext())
}

func (p *VideoProject) fallbackPath() string {
	return filepath.Join(p.Config.OutputDir, p.Config.Video+p.Fallback.Ext())
}

func (p *VideoProject) report(res *Result) {
	s := res.Stats
	report := fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Video: %s\n"+
			"Total Time: %.2fs\n"+
			"Rendering + Encoding: %.2fs\n"+
			"Frame buffers: %d\n"+
			"Output duration: %.2fs\n"+
			"Effective FPS: %.2f\n"+
			"----------------------------\n",
		p.Config.BuildVersion, p.Explainer.Name(), s.Total.Seconds(), s.Render.Seconds(), s.Buffers, s.Duration, s.Effective,
	)
	fmt.Print(report)

	// Логирование в файл
	logEntry := fmt.Sprintf("[%s] Build: %s | Video: %s | Frames: %d | Total: %.2fs | Render: %.2fs | FPS: %.2f | Fallback: %v\n",
		time.Now().Format("2006-01-02 15:04:05"),
		p.Config.BuildVersion,
		p.Explainer.Name(),
		res.Frames,
		s.Total.Seconds(),
		s.Render.Seconds(),
		s.Effective,
		res.Fallback,
	)

	path := filepath.Join(p.Config.OutputDir, "benchmark.log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Printf("[!] Не удалось записать %s: %v", path, err)
		return
	}
	f.WriteString(logEntry)
	f.Close()
}

// renderJob renders a timeline into a sink with a fixed worker pool
type renderJob struct {
	tl       *timeline.Timeline
	renderer explainers.Renderer
	pool     *system.ImagePool
	fps      int
	frames   int
	workers  int
	progress bool
}

type rendered struct {
	index int
	img   *image.RGBA
}

func (j renderJob) encode(ctx context.Context, ve video.VideoEncoder, opts video.Options) error {
	sink, err := ve.Open(ctx, opts)
	if err != nil {
		return err
	}
	if err := j.run(ctx, sink); err != nil {
		sink.Abort()
		return err
	}
	if err := sink.Close(); err != nil {
		// Недописанный файл не должен выглядеть как результат
		if rmErr := os.Remove(sink.Path()); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("[!] Не удалось удалить %s: %v", sink.Path(), rmErr)
		}
		return err
	}
	return nil
}

// run renders all frames concurrently and writes them to sink in ascending order
func (j renderJob) run(ctx context.Context, sink video.FrameSink) error {
	g, ctx := errgroup.WithContext(ctx)

	jobs := make(chan int)
	results := make(chan rendered, j.workers)
	// Каждый слот - кадр "в полёте"; освобождается после записи в sink
	slots := make(chan struct{}, j.workers*window)

	// 1. Раздача номеров кадров по возрастанию
	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < j.frames; i++ {
			select {
			case slots <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	// 2. Рендер-пул: у каждого воркера свой набор шрифтов
	var wg sync.WaitGroup
	for w := 0; w < j.workers; w++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			fonts := canvas.NewFonts()
			for i := range jobs {
				img, err := j.render(i, fonts)
				if err != nil {
					return err
				}
				select {
				case results <- rendered{index: i, img: img}:
				case <-ctx.Done():
					j.pool.Put(img)
					return ctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// 3. Запись строго по порядку
	g.Go(func() error {
		var bar *progressbar.ProgressBar
		if j.progress {
			bar = progressbar.Default(int64(j.frames), "Rendering")
			defer bar.Finish()
		}

		pending := make(map[int]*image.RGBA)
		next := 0
		for res := range results {
			pending[res.index] = res.img
			for {
				img, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				err := sink.WriteFrame(img)
				j.pool.Put(img)
				if err != nil {
					return fmt.Errorf("запись кадра %d: %w", next, err)
				}
				<-slots
				next++
				if bar != nil {
					bar.Add(1)
				}
			}
		}
		if next != j.frames {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fmt.Errorf("записано %d кадров из %d", next, j.frames)
		}
		return nil
	})

	return g.Wait()
}

func (j renderJob) render(i int, fonts *canvas.Fonts) (*image.RGBA, error) {
	pos, ok := j.tl.Frame(i, j.fps)
	if !ok {
		return nil, fmt.Errorf("кадр %d вне таймлайна", i)
	}
	img := j.pool.Get()
	if err := j.renderer.Render(canvas.New(img, fonts), pos); err != nil {
		j.pool.Put(img)
		return nil, fmt.Errorf("кадр %d (%s): %w", i, pos.Scene.Name, err)
	}
	return img, nil
}
