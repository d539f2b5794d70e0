package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Vaflel/school-registry/config"
	"github.com/Vaflel/school-registry/infrastructure"
	"github.com/Vaflel/school-registry/usecases"
	"github.com/Vaflel/school-registry/web"
)

const configPath = "registry.yaml"

func main() {
	// Минимальный логгер до чтения настроек
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run загружает базу, применяет настройки и сохраняет результат.
// В режиме веб-сервера сохранение выполняется после его остановки.
func run(ctx context.Context) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	slog.SetDefault(cfg.NewLogger(os.Stderr))

	service := usecases.NewRegistryService(infrastructure.NewTextDatabaseRepository(cfg.DataFile))

	// Загрузка из файла
	if err := service.Open(); err != nil {
		return err
	}

	if cfg.WorkbookFile != "" {
		importer := infrastructure.NewWorkbookImporter(cfg.WorkbookFile, cfg.WorkbookCharset)
		if err := service.Import(importer); err != nil {
			return err
		}
	}

	if cfg.SeedDemo {
		service.SeedDemo()
	}

	for _, violation := range service.Validate() {
		slog.Warn("несогласованная связь", "violation", violation.String())
	}

	if cfg.SnapshotFile != "" {
		if err := service.Export(infrastructure.NewYAMLDatabaseRepository(cfg.SnapshotFile)); err != nil {
			return err
		}
		slog.Info("снимок сохранён", "file", cfg.SnapshotFile)
	}

	if cfg.Web.Port > 0 {
		if err := web.NewServer(service).Start(ctx, cfg.Web.Port); err != nil {
			return err
		}
	}

	// Сохранение в файл
	if err := service.Save(); err != nil {
		return err
	}
	slog.Info("база сохранена", "file", cfg.DataFile)
	return nil
}
