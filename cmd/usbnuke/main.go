package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"usbnuke/internal/config"
	"usbnuke/internal/device"
	"usbnuke/internal/logging"
	"usbnuke/internal/reporting"
	"usbnuke/internal/security"
	"usbnuke/internal/wipe"
)

const (
	Version = "1.0.2"
	AppName = "usbnuke"

	// Exit codes
	EXIT_SUCCESS = 0
	EXIT_ERROR   = 1
	EXIT_WARNING = 2
)

// errVerifyFailed признак остаточных сигнатур после затирания;
// процесс завершается с EXIT_WARNING вместо EXIT_ERROR
var errVerifyFailed = errors.New("проверка затирания не пройдена")

var (
	cfg        *config.Config
	logger     *logging.AuditLogger
	verbose    bool
	configPath string

	standardFlag string
	passesFlag   int
	forceFlag    bool
	verifyFlag   bool
	quickFlag    bool
)

var rootCmd = &cobra.Command{
	Use:     "usbnuke",
	Short:   "usbnuke - безопасное затирание съёмных накопителей",
	Long:    "Утилита безопасного уничтожения данных на съёмных накопителях: однопроходное и многопроходное затирание, DoD 5220.22-M, метод Гутмана",
	Version: Version,
}

var nukeCmd = &cobra.Command{
	Use:   "nuke [устройство]",
	Short: "Необратимо затереть устройство (ОПАСНО)",
	Args:  cobra.ExactArgs(1),
	RunE:  runNuke,
}

var verifyCmd = &cobra.Command{
	Use:   "verify [устройство]",
	Short: "Проверить качество затирания по сигнатурам",
	Args:  cobra.ExactArgs(1),
	RunE:  runVerify,
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "Показать съёмные накопители",
	RunE:  runDevices,
}

var infoCmd = &cobra.Command{
	Use:   "info [устройство]",
	Short: "Показать сведения об устройстве и его разделах",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Подробный вывод")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Путь к конфигурации")

	nukeCmd.Flags().StringVarP(&standardFlag, "standard", "s", "", "Стандарт затирания (zeros/random/dod/gutmann)")
	nukeCmd.Flags().IntVarP(&passesFlag, "passes", "p", 0, "Количество проходов (только для zeros/random)")
	nukeCmd.Flags().BoolVarP(&forceFlag, "force", "f", false, "Пропустить проверки устройства и подтверждение (ОЧЕНЬ ОПАСНО)")
	nukeCmd.Flags().BoolVar(&verifyFlag, "verify", false, "Проверить затирание после завершения")
	nukeCmd.Flags().BoolVar(&quickFlag, "quick", false, "Быстрое затирание: только первый и последний мегабайт")

	devicesCmd.Flags().Bool("all", false, "Показать все устройства, не только съёмные")

	rootCmd.AddCommand(nukeCmd, verifyCmd, devicesCmd, infoCmd)
}

func setup() error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	logger, err = logging.New(logging.Options{
		Level:   cfg.Logging.Level,
		File:    cfg.Logging.File,
		Verbose: verbose,
	})
	if err != nil {
		return fmt.Errorf("ошибка инициализации логгера: %w", err)
	}

	return nil
}

func runNuke(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	path := args[0]

	if err := setup(); err != nil {
		return err
	}
	defer logger.Close()

	if err := security.PreflightChecks(cfg); err != nil {
		return err
	}

	standardStr := cfg.Wipe.DefaultStandard
	if standardFlag != "" {
		standardStr = standardFlag
	}
	standard, err := wipe.ValidateStandard(standardStr)
	if err != nil {
		return err
	}

	passes := cfg.Wipe.DefaultPasses
	if passesFlag != 0 {
		passes = passesFlag
	}

	// Проверки цели выполняются до подтверждения: оператор должен
	// видеть отказ, а не вопрос
	dev, err := findDevice(path)
	if err != nil {
		if !forceFlag {
			return err
		}
		logger.Log("WARN", "Устройство не найдено при перечислении, продолжаем по --force", "device", path)
	} else if !forceFlag {
		if err := security.CheckTarget(cfg, dev); err != nil {
			return err
		}
	}

	if !forceFlag && cfg.Security.RequireConfirmation {
		if !confirmNuke(path, dev, standard, passes) {
			logger.Log("INFO", "Операция отменена пользователем", "device", path)
			return nil
		}
	}

	if quickFlag {
		logger.Log("INFO", "Быстрое затирание", "device", path)
		if err := wipe.QuickWipe(path); err != nil {
			return err
		}
		fmt.Println("Быстрое затирание завершено")
		return nil
	}

	op, err := wipe.Nuke(path, standard, passes, cfg.Wipe.ChunkSize, consoleSink(), logger)
	fmt.Println()

	verified := map[string]bool{}
	exitCode := EXIT_SUCCESS
	if err != nil {
		exitCode = EXIT_ERROR
	} else if verifyFlag || cfg.Wipe.VerifyAfter {
		clean, verr := wipe.Verify(path)
		if verr != nil {
			logger.Log("WARN", "Ошибка проверки затирания", "device", path, "error", verr.Error())
		} else {
			verified[path] = clean
			if clean {
				fmt.Println("Проверка: сигнатуры не обнаружены")
			} else {
				fmt.Println("Проверка: обнаружены остаточные сигнатуры!")
				exitCode = EXIT_WARNING
			}
		}
	}

	if cfg.Reporting.Enabled {
		report := reporting.GenerateReport(Version, []*wipe.Operation{op}, verified, startTime, time.Now(), exitCode)
		if file, rerr := reporting.SaveReport(report, cfg.Reporting.LocalPath); rerr != nil {
			logger.Log("WARN", "Ошибка сохранения отчёта", "error", rerr.Error())
		} else {
			logger.Log("INFO", "Отчёт сохранён", "run_id", report.RunID, "file", file)
		}
	}

	if err != nil {
		return fmt.Errorf("затирание не удалось: %w", err)
	}

	fmt.Printf("✓ %s - %s (%.1f GB, %.1f MB/s)\n", op.Device, op.Status,
		float64(op.BytesWiped)/(1024*1024*1024), op.SpeedMBps)

	if exitCode == EXIT_WARNING {
		return errVerifyFailed
	}
	return nil
}

func runVerify(cmd *cobra.Command, args []string) error {
	path := args[0]

	if err := setup(); err != nil {
		return err
	}
	defer logger.Close()

	clean, err := wipe.Verify(path)
	if err != nil {
		return err
	}

	if clean {
		fmt.Printf("%s: сигнатуры не обнаружены, устройство выглядит затёртым\n", path)
		fmt.Println("Внимание: проверяется только первый мегабайт устройства")
		return nil
	}

	fmt.Printf("%s: обнаружены сигнатуры файловых систем или таблиц разделов\n", path)
	return errVerifyFailed
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	dev, err := findDevice(path)
	if err != nil {
		return err
	}

	removable := "съёмный"
	if !dev.Removable {
		removable = "несъёмный"
	}

	fmt.Printf("Устройство: %s\n", dev.Path)
	fmt.Printf("  Модель:    %s %s\n", dev.Vendor, dev.Model)
	fmt.Printf("  Размер:    %.1f GB (%d байт)\n", float64(dev.Size)/(1024*1024*1024), dev.Size)
	fmt.Printf("  Тип:       %s\n", removable)

	if len(dev.Partitions) == 0 {
		fmt.Println("  Разделы:   нет")
	} else {
		fmt.Printf("  Разделы:   %d\n", len(dev.Partitions))
		for _, part := range dev.Partitions {
			fs := part.Filesystem
			if fs == "" {
				fs = "?"
			}
			label := part.Label
			if label == "" {
				label = "без метки"
			}
			fmt.Printf("    %s: %s, %s (%.1f GB)\n", part.Path, fs, label, float64(part.Size)/(1024*1024*1024))
		}
	}

	if dev.HasSystemLabels() {
		fmt.Println("  ВНИМАНИЕ: метки разделов указывают на системный диск")
	}
	if err := dev.Validate(); err != nil {
		fmt.Printf("  ВНИМАНИЕ: %v\n", err)
	}

	return nil
}

func runDevices(cmd *cobra.Command, args []string) error {
	all, _ := cmd.Flags().GetBool("all")

	devices, err := device.Discover(all)
	if err != nil {
		return fmt.Errorf("ошибка перечисления устройств: %w", err)
	}

	if len(devices) == 0 {
		fmt.Println("Съёмные накопители не найдены")
		return nil
	}

	fmt.Println("Доступные накопители:")
	fmt.Println("=====================")
	for _, dev := range devices {
		removable := "съёмный"
		if !dev.Removable {
			removable = "несъёмный"
		}
		fmt.Printf("%s - %s %s (%.1f GB, %s, разделов: %d)\n",
			dev.Path, dev.Vendor, dev.Model,
			float64(dev.Size)/(1024*1024*1024), removable, len(dev.Partitions))
	}

	return nil
}

// findDevice ищет устройство среди перечисленных
func findDevice(path string) (*device.Device, error) {
	devices, err := device.Discover(true)
	if err != nil {
		return nil, err
	}
	for i := range devices {
		if devices[i].Path == path {
			return &devices[i], nil
		}
	}
	return nil, fmt.Errorf("устройство %s не найдено", path)
}

// confirmNuke запрашивает у оператора явное подтверждение
func confirmNuke(path string, dev *device.Device, standard wipe.WipeStandard, passes int) bool {
	fmt.Printf("ВНИМАНИЕ: ВСЕ данные на устройстве %s будут безвозвратно уничтожены\n", path)
	if dev != nil {
		fmt.Printf("  Устройство: %s %s (%.1f GB)\n", dev.Vendor, dev.Model, float64(dev.Size)/(1024*1024*1024))
	}
	fmt.Printf("  Стандарт: %s, проходов: %d\n", standard, wipe.TotalPasses(standard, passes))
	fmt.Print("Продолжить? (y/N): ")

	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	return strings.ToLower(strings.TrimSpace(response)) == "y"
}

// consoleSink печатает прогресс на stderr, обновляя строку при изменении
// процента. Печать выполняется в потоке записи, поэтому только при изменении.
func consoleSink() wipe.ProgressSink {
	lastPass := 0
	lastPercent := -1
	return wipe.ProgressFunc(func(info wipe.ProgressInfo) {
		percent := 100
		if info.PassSize > 0 {
			percent = int(float64(info.BytesWritten) / float64(info.PassSize) * 100)
		}
		if info.Pass == lastPass && percent == lastPercent {
			return
		}
		lastPass = info.Pass
		lastPercent = percent
		fmt.Fprintf(os.Stderr, "\rПроход %d/%d: %3d%% (%s)", info.Pass, info.TotalPasses, percent, info.Label)
	})
}

// exitCodeFor переводит ошибку команды в код завершения процесса
func exitCodeFor(err error) int {
	if errors.Is(err, errVerifyFailed) {
		return EXIT_WARNING
	}
	return EXIT_ERROR
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
	os.Exit(EXIT_SUCCESS)
}
