package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ivlev/scene2video/internal/config"
	"github.com/ivlev/scene2video/internal/engine"
	"github.com/ivlev/scene2video/internal/explainers"
	"github.com/ivlev/scene2video/internal/explainers/catalog"
	"github.com/ivlev/scene2video/internal/system"
	"github.com/ivlev/scene2video/internal/timeline"
	"github.com/ivlev/scene2video/internal/video"
)

// buildVersion задаётся через -ldflags "-X main.buildVersion=..."
var buildVersion = "dev"

func main() {
	videoPtr := flag.String("video", catalog.All, fmt.Sprintf("Видео: %v или %s", catalog.Names(), catalog.All))
	outputPtr := flag.String("output", "output", "Директория для результатов")
	fpsPtr := flag.Int("fps", 0, "FPS (0 - по умолчанию для видео)")
	workersPtr := flag.Int("workers", system.DefaultWorkers(), "Потоки рендера")
	fallbackPtr := flag.String("fallback", "gif", "Запасной формат при сбое ffmpeg: gif, none")
	themePtr := flag.String("theme", "", "YAML с переопределением цветов и подписей")
	creditURLPtr := flag.String("credit-url", "", "Ссылка для QR-кода в финальной сцене")
	timelinePtr := flag.String("timeline", "", "YAML с длительностями и параметрами сцен")
	dumpPtr := flag.String("dump-timeline", "", "Записать таймлайны в указанную директорию и выйти")
	seedPtr := flag.Int64("seed", 7, "Seed для случайных ошибок (dlq)")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто, x264: CRF 1-51, VideoToolbox: битрейт = Q*100кбит/с)")
	statsPtr := flag.Bool("stats", false, "Показать отчёт о производительности")
	progressPtr := flag.Bool("progress", true, "Показывать прогресс-бар")

	flag.Parse()

	list, err := catalog.Select(*videoPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}

	if *dumpPtr != "" {
		for _, e := range list {
			if err := dumpTimeline(e, *dumpPtr); err != nil {
				log.Fatalf("[-] Ошибка записи таймлайна: %v", err)
			}
		}
		return
	}

	var override *timeline.File
	if *timelinePtr != "" {
		if override, err = timeline.ReadTimeline(*timelinePtr); err != nil {
			log.Fatalf("[-] Ошибка чтения таймлайна: %v", err)
		}
		fmt.Printf("[*] Используется таймлайн: %s\n", *timelinePtr)
	}

	var themeOverride config.Theme
	if *themePtr != "" {
		if themeOverride, err = config.ReadTheme(*themePtr); err != nil {
			log.Fatalf("[-] Ошибка чтения темы: %v", err)
		}
	}
	if *creditURLPtr != "" {
		themeOverride.CreditURL = *creditURLPtr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	encoderName := "libx264"
	if _, err := video.LookupFFmpeg(); err == nil {
		encoderName = video.BestH264Encoder(ctx)
		if encoderName != "libx264" {
			fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
		}
	}

	base := config.Config{
		OutputDir:    *outputPtr,
		FPS:          *fpsPtr,
		Fallback:     *fallbackPtr,
		Workers:      *workersPtr,
		VideoEncoder: encoderName,
		Quality:      *qualityPtr,
		Seed:         *seedPtr,
		TimelinePath: *timelinePtr,
		ShowStats:    *statsPtr,
		Progress:     *progressPtr,
		BuildVersion: buildVersion,
	}
	if base.Quality == 0 {
		base.Quality = video.DefaultQuality(encoderName)
	}

	for _, e := range list {
		project := engine.NewVideoProject(base, e, &video.FFmpegEncoder{})
		project.Theme = project.Theme.Merge(themeOverride)

		if override != nil && (override.Video == "" || override.Video == e.Name()) {
			tl, err := explainers.Timeline(e)
			if err != nil {
				log.Fatalf("[-] Ошибка таймлайна %s: %v", e.Name(), err)
			}
			if project.Timeline, err = timeline.Override(tl, override); err != nil {
				log.Fatalf("[-] Ошибка таймлайна %s: %v", e.Name(), err)
			}
		}

		res, err := project.Run(ctx)
		if err != nil {
			log.Fatalf("[-] Ошибка проекта %s: %v", e.Name(), err)
		}
		if res.Fallback {
			fmt.Printf("[!] Записан запасной вариант (%v)\n", res.Primary)
		}
		fmt.Printf("[+++] Успех! Результат: %s\n", res.Path)
	}
}

func dumpTimeline(e explainers.Explainer, dir string) error {
	tl, err := explainers.Timeline(e)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, e.Name()+".yaml")
	if err := timeline.WriteTimeline(tl, e.Name(), path); err != nil {
		return err
	}
	fmt.Printf("[+++] Таймлайн %s: %s\n", e.Name(), path)
	return nil
}
