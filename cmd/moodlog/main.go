package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/amirk1998/moodlog/internal/audit"
	"github.com/amirk1998/moodlog/internal/backup"
	"github.com/amirk1998/moodlog/internal/config"
	"github.com/amirk1998/moodlog/internal/database"
	"github.com/amirk1998/moodlog/internal/migration"
	"github.com/amirk1998/moodlog/internal/models"
	"github.com/amirk1998/moodlog/internal/ratelimit"
	"github.com/amirk1998/moodlog/internal/repository"
	"github.com/amirk1998/moodlog/internal/security"
	"github.com/amirk1998/moodlog/internal/service"
)

type Application struct {
	config           *config.Config
	db               *sql.DB
	moodService      *service.MoodService
	emotionService   *service.EmotionService
	analyticsService *service.AnalyticsService
	exportService    *service.ExportService
	lockService      *service.LockService
	auditLogger      *audit.Logger
	auditMonitor     *audit.Monitor
	backupMgr        *backup.Manager
	rateLimiter      *ratelimit.RateLimiter

	// last deleted entry, kept for one-shot undo
	lastDeleted *models.MoodEntry
}

func main() {
	fmt.Println("===========================================")
	fmt.Println("  MoodLog - Encrypted Mood Journal")
	fmt.Println("===========================================")
	fmt.Println()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize application
	app, err := initializeApplication(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer app.cleanup()

	fmt.Println("[OK] Application initialized successfully")
	fmt.Println("[OK] Database encrypted with SQLCipher")
	fmt.Println("[OK] Audit logging enabled")
	fmt.Println()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\n\n[Shutdown] Received shutdown signal...")
		cancel()
	}()

	scanner := bufio.NewScanner(os.Stdin)

	// App lock gate
	if !app.unlock(ctx, scanner) {
		return
	}

	// Start automated backups in background, checking hourly whether the
	// configured interval has elapsed
	go app.backupMgr.StartAutomatedBackups(ctx, 1*time.Hour)

	// Start rate limiter cleanup worker
	go app.rateLimiter.StartCleanupWorker(ctx, 1*time.Hour)

	// Start storage health monitoring in background
	go app.startHealthMonitoring(ctx)

	// Run interactive CLI
	app.runCLI(ctx, scanner)
}

// initializeApplication sets up all application components
func initializeApplication(cfg *config.Config) (*Application, error) {
	// Connect to encrypted database
	dbConfig := database.Config{
		Path:          cfg.DBPath,
		EncryptionKey: cfg.DBEncryptionKey,
		MaxOpenConns:  25,
		MaxIdleConns:  5,
		MaxLifetime:   1 * time.Hour,
		MaxIdleTime:   10 * time.Minute,
	}

	db, err := database.Connect(dbConfig)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Run migrations. A failed step is logged but not fatal: the app keeps
	// operating on whatever data shape is currently readable.
	result := migration.NewRunner(db).Apply(context.Background())
	if result.Failed != nil {
		log.Printf("[Startup] migration step %d (%s) failed: %v",
			result.Failed.Version, result.Failed.Name, result.Failed.Err)
	}

	// Initialize audit logger
	auditLogger, err := audit.NewLogger(db, cfg.AuditLogPath, cfg.AuditAsyncMode)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize audit logger: %w", err)
	}

	// Initialize storage health monitor
	auditMonitor := audit.NewMonitor(auditLogger)

	// Initialize rate limiter
	rateLimiter := ratelimit.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	// Initialize repositories
	moodRepo := repository.NewMoodRepository(db)
	emotionRepo := repository.NewEmotionRepository(db)
	settingsRepo := repository.NewSettingsRepository(database.NewKVStore(db))

	// Seed default emotion presets on first run
	if seeded, err := emotionRepo.EnsureDefaults(); err != nil {
		log.Printf("[Startup] failed to seed default emotions: %v", err)
	} else if seeded > 0 {
		log.Printf("[Startup] seeded %d default emotions", seeded)
	}

	// Initialize note encryption
	keyManager, err := security.NewKeyManager(cfg.DBEncryptionKey, cfg.NoteEncryptionKey)
	if err != nil {
		db.Close()
		auditLogger.Close()
		return nil, fmt.Errorf("failed to initialize key manager: %w", err)
	}

	noteEncryptor, err := security.NewNoteEncryptor(keyManager.GetNoteKey())
	if err != nil {
		db.Close()
		auditLogger.Close()
		return nil, fmt.Errorf("failed to initialize note encryptor: %w", err)
	}

	// Initialize services
	moodService := service.NewMoodService(moodRepo, settingsRepo, noteEncryptor, rateLimiter, auditLogger)
	emotionService := service.NewEmotionService(emotionRepo, moodRepo, auditLogger)
	analyticsService := service.NewAnalyticsService(moodRepo)
	exportService := service.NewExportService(moodRepo, settingsRepo, noteEncryptor, cfg.ExportDir, auditLogger)
	lockService := service.NewLockService(settingsRepo, rateLimiter, auditLogger)

	// Initialize backup manager
	backupMgr, err := backup.NewManager(db, cfg.BackupDir, cfg.BackupEncryptionKey, cfg.BackupKeepCount, cfg.BackupInterval, settingsRepo)
	if err != nil {
		db.Close()
		auditLogger.Close()
		return nil, fmt.Errorf("failed to initialize backup manager: %w", err)
	}

	return &Application{
		config:           cfg,
		db:               db,
		moodService:      moodService,
		emotionService:   emotionService,
		analyticsService: analyticsService,
		exportService:    exportService,
		lockService:      lockService,
		auditLogger:      auditLogger,
		auditMonitor:     auditMonitor,
		backupMgr:        backupMgr,
		rateLimiter:      rateLimiter,
	}, nil
}

// cleanup performs cleanup operations
func (app *Application) cleanup() {
	fmt.Println("\n[Cleanup] Shutting down gracefully...")

	if app.auditLogger != nil {
		app.auditLogger.Close()
	}

	if app.db != nil {
		app.db.Close()
	}

	fmt.Println("[Cleanup] Done")
}

// unlock prompts for the app-lock PIN when the lock is enabled
func (app *Application) unlock(ctx context.Context, scanner *bufio.Scanner) bool {
	enabled, err := app.lockService.Enabled(ctx)
	if err != nil {
		log.Printf("[Lock] failed to read lock state: %v", err)
		return true
	}

	if !enabled {
		return true
	}

	for {
		fmt.Print("Enter PIN: ")
		if !scanner.Scan() {
			return false
		}
		pin := strings.TrimSpace(scanner.Text())

		if err := app.lockService.Verify(ctx, pin); err != nil {
			fmt.Printf("Unlock failed: %v\n", err)
			continue
		}

		return true
	}
}

// startHealthMonitoring runs storage health monitoring in background
func (app *Application) startHealthMonitoring(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := app.auditMonitor.CheckStorageHealth(); err != nil {
				log.Printf("[Health] Monitoring error: %v", err)
			}
		}
	}
}

// runCLI runs the interactive command-line interface
func (app *Application) runCLI(ctx context.Context, scanner *bufio.Scanner) {
	if logged, err := app.moodService.HasLoggedToday(ctx); err == nil && !logged {
		fmt.Println("\nYou haven't logged your mood today.")
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
			app.showMainMenu()

			fmt.Print("\nSelect option: ")
			if !scanner.Scan() {
				return
			}

			choice := strings.TrimSpace(scanner.Text())
			fmt.Println()

			app.handleMainChoice(ctx, choice, scanner)
		}
	}
}

// showMainMenu displays main menu
func (app *Application) showMainMenu() {
	fmt.Println("\n--- MoodLog ---")
	fmt.Println("1. Log Mood")
	fmt.Println("2. List Entries")
	fmt.Println("3. View Entry")
	fmt.Println("4. Update Entry")
	fmt.Println("5. Delete Entry")
	fmt.Println("6. Undo Last Delete")
	fmt.Println("7. Calendar")
	fmt.Println("8. Insights")
	fmt.Println("9. Statistics")
	fmt.Println("10. Charts")
	fmt.Println("11. Manage Emotions")
	fmt.Println("12. Export CSV")
	fmt.Println("13. App Lock")
	fmt.Println("14. Create Backup")
	fmt.Println("15. View Audit Logs")
	fmt.Println("16. Exit")
}

// handleMainChoice handles main menu choices
func (app *Application) handleMainChoice(ctx context.Context, choice string, scanner *bufio.Scanner) {
	switch choice {
	case "1":
		app.handleLogMood(ctx, scanner)
	case "2":
		app.handleListEntries(ctx, scanner)
	case "3":
		app.handleViewEntry(ctx, scanner)
	case "4":
		app.handleUpdateEntry(ctx, scanner)
	case "5":
		app.handleDeleteEntry(ctx, scanner)
	case "6":
		app.handleUndoDelete(ctx)
	case "7":
		app.handleCalendar(ctx, scanner)
	case "8":
		app.handleInsights(ctx)
	case "9":
		app.handleStats(ctx)
	case "10":
		app.handleCharts(ctx)
	case "11":
		app.handleManageEmotions(ctx, scanner)
	case "12":
		app.handleExport(ctx, scanner)
	case "13":
		app.handleAppLock(ctx, scanner)
	case "14":
		app.handleCreateBackup(ctx)
	case "15":
		app.handleViewAuditLogs(ctx)
	case "16":
		fmt.Println("Goodbye!")
		os.Exit(0)
	default:
		fmt.Println("Invalid option")
	}
}

// handleLogMood handles creating a mood entry
func (app *Application) handleLogMood(ctx context.Context, scanner *bufio.Scanner) {
	fmt.Println("=== Log Mood ===")

	fmt.Print("Mood (0-10): ")
	scanner.Scan()
	mood, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		fmt.Println("Invalid mood value")
		return
	}

	req := &models.CreateEntryRequest{Mood: mood}

	fmt.Print("Energy (0-10, Enter to skip): ")
	scanner.Scan()
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		energy, err := strconv.Atoi(v)
		if err != nil {
			fmt.Println("Invalid energy value")
			return
		}
		req.Energy = &energy
	}

	fmt.Print("Emotions (comma separated, Enter to skip): ")
	scanner.Scan()
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		presets, _ := app.emotionService.List(ctx)
		for _, name := range strings.Split(v, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			category := models.CategoryNeutral
			for _, p := range presets {
				if strings.EqualFold(p.Name, name) {
					category = p.Category
					break
				}
			}
			req.Emotions = append(req.Emotions, models.Emotion{Name: name, Category: category})
		}
	}

	fmt.Print("Context tags (comma separated, Enter to skip): ")
	scanner.Scan()
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.ContextTags = append(req.ContextTags, tag)
			}
		}
	}

	fmt.Print("Note (Enter to skip): ")
	scanner.Scan()
	req.Note = strings.TrimSpace(scanner.Text())

	entry, err := app.moodService.Create(ctx, req)
	if err != nil {
		fmt.Printf("Failed to log mood: %v\n", err)
		return
	}

	fmt.Printf("✓ Mood logged! (ID: %d)\n", entry.ID)
}

// handleListEntries handles listing entries, either recent or a trailing window
func (app *Application) handleListEntries(ctx context.Context, scanner *bufio.Scanner) {
	fmt.Print("Show: 1) Recent 2) Last 7 days 3) Last 30 days [1]: ")
	scanner.Scan()
	choice := strings.TrimSpace(scanner.Text())

	var preset models.RangePreset
	switch choice {
	case "2":
		preset = models.PresetWeek
	case "3":
		preset = models.PresetMonth
	}

	if preset != "" {
		entries, err := app.moodService.ListRange(ctx, preset)
		if err != nil {
			fmt.Printf("Failed to list entries: %v\n", err)
			return
		}
		if len(entries) == 0 {
			fmt.Println("No entries in this window")
			return
		}
		fmt.Printf("=== Entries (%d in window) ===\n", len(entries))
		for _, entry := range entries {
			printEntrySummary(entry)
		}
		return
	}

	page, err := app.moodService.ListPage(ctx, 0, 20)
	if err != nil {
		fmt.Printf("Failed to list entries: %v\n", err)
		return
	}

	if len(page.Items) == 0 {
		fmt.Println("No entries yet")
		return
	}

	fmt.Printf("=== Entries (%d total) ===\n", page.Total)
	for _, entry := range page.Items {
		printEntrySummary(entry)
	}

	if page.HasMore {
		fmt.Println("(more entries not shown)")
	}
}

// handleViewEntry handles viewing a single entry
func (app *Application) handleViewEntry(ctx context.Context, scanner *bufio.Scanner) {
	id, ok := promptEntryID(scanner)
	if !ok {
		return
	}

	entry, err := app.moodService.GetByID(ctx, id)
	if err != nil {
		fmt.Printf("Failed to get entry: %v\n", err)
		return
	}

	fmt.Println("\n=== Entry Details ===")
	fmt.Printf("ID: %d\n", entry.ID)
	fmt.Printf("Mood: %d\n", entry.Mood)
	fmt.Printf("Time: %s\n", entry.Time().Format("2006-01-02 15:04"))
	if entry.Energy != nil {
		fmt.Printf("Energy: %d\n", *entry.Energy)
	}
	if len(entry.Emotions) > 0 {
		names := make([]string, len(entry.Emotions))
		for i, e := range entry.Emotions {
			names[i] = fmt.Sprintf("%s (%s)", e.Name, e.Category)
		}
		fmt.Printf("Emotions: %s\n", strings.Join(names, ", "))
	}
	if len(entry.ContextTags) > 0 {
		fmt.Printf("Context: %s\n", strings.Join(entry.ContextTags, ", "))
	}
	if entry.Note != "" {
		fmt.Printf("Note: %s\n", entry.Note)
	}
}

// handleUpdateEntry handles updating an entry
func (app *Application) handleUpdateEntry(ctx context.Context, scanner *bufio.Scanner) {
	id, ok := promptEntryID(scanner)
	if !ok {
		return
	}

	req := &models.UpdateEntryRequest{}

	fmt.Print("New mood (Enter to skip): ")
	scanner.Scan()
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		mood, err := strconv.Atoi(v)
		if err != nil {
			fmt.Println("Invalid mood value")
			return
		}
		req.Mood = &mood
	}

	fmt.Print("New note (Enter to skip): ")
	scanner.Scan()
	if v := scanner.Text(); strings.TrimSpace(v) != "" {
		note := strings.TrimSpace(v)
		req.Note = &note
	}

	_, err := app.moodService.Update(ctx, id, req)
	if err != nil {
		fmt.Printf("Failed to update entry: %v\n", err)
		return
	}

	// An edit keeps the entry count stable, so the chart fingerprint
	// would not notice it.
	app.analyticsService.InvalidateCache()

	fmt.Println("✓ Entry updated!")
}

// handleDeleteEntry handles deleting an entry
func (app *Application) handleDeleteEntry(ctx context.Context, scanner *bufio.Scanner) {
	id, ok := promptEntryID(scanner)
	if !ok {
		return
	}

	removed, err := app.moodService.Delete(ctx, id)
	if err != nil {
		fmt.Printf("Failed to delete entry: %v\n", err)
		return
	}

	if removed == nil {
		fmt.Println("Entry not found (already deleted?)")
		return
	}

	app.lastDeleted = removed
	fmt.Println("✓ Entry deleted (use Undo Last Delete to restore)")
}

// handleUndoDelete restores the most recently deleted entry
func (app *Application) handleUndoDelete(ctx context.Context) {
	if app.lastDeleted == nil {
		fmt.Println("Nothing to undo")
		return
	}

	restored, err := app.moodService.Restore(ctx, app.lastDeleted)
	if err != nil {
		fmt.Printf("Failed to restore entry: %v\n", err)
		return
	}

	app.lastDeleted = nil
	fmt.Printf("✓ Entry restored! (new ID: %d)\n", restored.ID)
}

// handleCalendar shows a month of entries grouped by day
func (app *Application) handleCalendar(ctx context.Context, scanner *bufio.Scanner) {
	now := time.Now()
	year, month := now.Year(), now.Month()

	fmt.Printf("Month (YYYY-MM, Enter for %d-%02d): ", year, int(month))
	scanner.Scan()
	if v := strings.TrimSpace(scanner.Text()); v != "" {
		t, err := time.Parse("2006-01", v)
		if err != nil {
			fmt.Println("Invalid month")
			return
		}
		year, month = t.Year(), t.Month()
	}

	days, err := app.moodService.Calendar(ctx, year, month)
	if err != nil {
		fmt.Printf("Failed to load calendar: %v\n", err)
		return
	}

	if len(days) == 0 {
		fmt.Println("No entries this month")
		return
	}

	fmt.Printf("=== %d-%02d ===\n", year, int(month))
	for day := 1; day <= 31; day++ {
		entries, ok := days[day]
		if !ok {
			continue
		}
		moods := make([]string, len(entries))
		for i, e := range entries {
			moods[i] = strconv.Itoa(e.Mood)
		}
		fmt.Printf("Day %2d: %d entries (moods: %s)\n", day, len(entries), strings.Join(moods, ", "))
	}
}

// handleInsights shows mined mood patterns
func (app *Application) handleInsights(ctx context.Context) {
	insights, err := app.analyticsService.Insights(ctx)
	if err != nil {
		fmt.Printf("Failed to compute insights: %v\n", err)
		return
	}

	if len(insights) == 0 {
		fmt.Println("Not enough data for insights yet. Keep logging!")
		return
	}

	fmt.Println("=== Insights ===")
	for _, insight := range insights {
		fmt.Printf("- %s: %s (confidence: %s, %d samples)\n",
			insight.Title, insight.Body, insight.Confidence, insight.SampleSize)
	}
}

// handleStats shows aggregate statistics
func (app *Application) handleStats(ctx context.Context) {
	stats, err := app.analyticsService.Stats(ctx)
	if err != nil {
		fmt.Printf("Failed to compute statistics: %v\n", err)
		return
	}

	streak, err := app.analyticsService.Streak(ctx)
	if err != nil {
		fmt.Printf("Failed to compute streak: %v\n", err)
		return
	}

	fmt.Println("=== Statistics ===")
	fmt.Printf("Total entries: %d\n", stats.TotalEntries)
	fmt.Printf("Average mood: %.1f\n", stats.AverageMood)
	fmt.Printf("Most common mood: %d\n", stats.MostCommonMood)
	fmt.Printf("This week: %d entries\n", stats.EntriesThisWeek)
	fmt.Printf("This month: %d entries\n", stats.EntriesThisMonth)
	fmt.Printf("Current streak: %d days\n", streak.CurrentStreak)
	fmt.Printf("Longest streak: %d days\n", streak.LongestStreak)
	fmt.Printf("Days logged: %d\n", streak.TotalDaysLogged)

	week, err := app.analyticsService.RangeSummary(ctx, models.PresetWeek)
	if err == nil && week.TotalEntries > 0 {
		fmt.Printf("7-day average mood: %.1f\n", week.AverageMood)
	}
}

// handleCharts shows daily and weekly mood averages
func (app *Application) handleCharts(ctx context.Context) {
	daily, err := app.analyticsService.DailyChart(ctx, 14)
	if err != nil {
		fmt.Printf("Failed to build daily chart: %v\n", err)
		return
	}

	fmt.Println("=== Daily Averages (last 14 days) ===")
	for i, label := range daily.Labels {
		if daily.Averages[i] == nil {
			fmt.Printf("%s: -\n", label)
			continue
		}
		fmt.Printf("%s: %.1f\n", label, *daily.Averages[i])
	}

	weekly, err := app.analyticsService.WeeklyChart(ctx, 8)
	if err != nil {
		fmt.Printf("Failed to build weekly chart: %v\n", err)
		return
	}

	fmt.Println("\n=== Weekly Averages ===")
	for i, label := range weekly.Labels {
		if weekly.Averages[i] == nil {
			fmt.Printf("Week of %s: -\n", label)
			continue
		}
		fmt.Printf("Week of %s: %.1f\n", label, *weekly.Averages[i])
	}
}

// handleManageEmotions handles the emotion preset submenu
func (app *Application) handleManageEmotions(ctx context.Context, scanner *bufio.Scanner) {
	fmt.Println("=== Emotions ===")
	fmt.Println("1. List")
	fmt.Println("2. Add")
	fmt.Println("3. Rename / Recategorize")
	fmt.Println("4. Delete")
	fmt.Println("5. Import from history")
	fmt.Print("\nSelect option: ")

	scanner.Scan()
	choice := strings.TrimSpace(scanner.Text())
	fmt.Println()

	switch choice {
	case "1":
		emotions, err := app.emotionService.List(ctx)
		if err != nil {
			fmt.Printf("Failed to list emotions: %v\n", err)
			return
		}
		for _, e := range emotions {
			fmt.Printf("- %s (%s)\n", e.Name, e.Category)
		}

	case "2":
		fmt.Print("Name: ")
		scanner.Scan()
		name := strings.TrimSpace(scanner.Text())

		fmt.Print("Category (positive/negative/neutral): ")
		scanner.Scan()
		category := models.EmotionCategory(strings.TrimSpace(scanner.Text()))

		if err := app.emotionService.Add(ctx, models.Emotion{Name: name, Category: category}); err != nil {
			fmt.Printf("Failed to add emotion: %v\n", err)
			return
		}
		fmt.Println("✓ Emotion added!")

	case "3":
		fmt.Print("Current name: ")
		scanner.Scan()
		oldName := strings.TrimSpace(scanner.Text())

		fmt.Print("New name (Enter to keep): ")
		scanner.Scan()
		newName := strings.TrimSpace(scanner.Text())
		if newName == "" {
			newName = oldName
		}

		fmt.Print("Category (positive/negative/neutral): ")
		scanner.Scan()
		category := models.EmotionCategory(strings.TrimSpace(scanner.Text()))

		fmt.Print("Update past entries too? (yes/no): ")
		scanner.Scan()
		cascade := strings.EqualFold(strings.TrimSpace(scanner.Text()), "yes")

		updated, err := app.emotionService.Update(ctx, oldName, models.Emotion{Name: newName, Category: category}, cascade)
		if err != nil {
			fmt.Printf("Failed to update emotion: %v\n", err)
			return
		}
		fmt.Printf("✓ Emotion updated! (%d entries rewritten)\n", updated)

	case "4":
		fmt.Print("Name: ")
		scanner.Scan()
		name := strings.TrimSpace(scanner.Text())

		fmt.Print("Remove from past entries too? (yes/no): ")
		scanner.Scan()
		cascade := strings.EqualFold(strings.TrimSpace(scanner.Text()), "yes")

		removed, err := app.emotionService.Delete(ctx, name, cascade)
		if err != nil {
			fmt.Printf("Failed to delete emotion: %v\n", err)
			return
		}
		fmt.Printf("✓ Emotion deleted! (%d entries rewritten)\n", removed)

	case "5":
		added, err := app.emotionService.ImportFromEntries(ctx)
		if err != nil {
			fmt.Printf("Import failed: %v\n", err)
			return
		}
		fmt.Printf("✓ Imported %d emotions from history\n", added)

	default:
		fmt.Println("Invalid option")
	}
}

// handleExport handles CSV export
func (app *Application) handleExport(ctx context.Context, scanner *bufio.Scanner) {
	fmt.Print("Export: 1) Everything 2) Last 7 days 3) Last 30 days [1]: ")
	scanner.Scan()
	choice := strings.TrimSpace(scanner.Text())

	var (
		path string
		err  error
	)
	switch choice {
	case "2":
		path, err = app.exportService.ExportCSVRange(ctx, models.PresetWeek)
	case "3":
		path, err = app.exportService.ExportCSVRange(ctx, models.PresetMonth)
	default:
		path, err = app.exportService.ExportCSV(ctx)
	}
	if err != nil {
		fmt.Printf("Export failed: %v\n", err)
		return
	}

	fmt.Printf("✓ Exported to %s\n", path)
}

// handleAppLock handles the app-lock submenu
func (app *Application) handleAppLock(ctx context.Context, scanner *bufio.Scanner) {
	enabled, err := app.lockService.Enabled(ctx)
	if err != nil {
		fmt.Printf("Failed to read lock state: %v\n", err)
		return
	}

	if enabled {
		fmt.Print("App lock is ON. Enter PIN to disable: ")
		scanner.Scan()
		pin := strings.TrimSpace(scanner.Text())

		if err := app.lockService.Disable(ctx, pin); err != nil {
			fmt.Printf("Failed to disable app lock: %v\n", err)
			return
		}
		fmt.Println("✓ App lock disabled")
		return
	}

	fmt.Print("App lock is OFF. Enter new PIN (4-8 digits): ")
	scanner.Scan()
	pin := strings.TrimSpace(scanner.Text())

	if err := app.lockService.Enable(ctx, pin); err != nil {
		fmt.Printf("Failed to enable app lock: %v\n", err)
		return
	}
	fmt.Println("✓ App lock enabled")
}

// handleCreateBackup handles manual backup creation
func (app *Application) handleCreateBackup(ctx context.Context) {
	fmt.Println("Creating encrypted backup...")

	backupPath, err := app.backupMgr.CreateBackup()
	if err != nil {
		fmt.Printf("Backup failed: %v\n", err)
		return
	}

	fmt.Printf("✓ Backup created successfully: %s\n", backupPath)

	// Verify backup
	if err := app.backupMgr.VerifyBackup(backupPath); err != nil {
		fmt.Printf("Warning: Backup verification failed: %v\n", err)
		return
	}

	fmt.Println("✓ Backup verified successfully")
}

// handleViewAuditLogs handles viewing audit logs
func (app *Application) handleViewAuditLogs(ctx context.Context) {
	fmt.Println("=== Recent Audit Logs ===")

	events, err := app.auditLogger.QueryLogs(audit.QueryFilters{Limit: 20})
	if err != nil {
		fmt.Printf("Failed to query logs: %v\n", err)
		return
	}

	if len(events) == 0 {
		fmt.Println("No audit logs found")
		return
	}

	for _, event := range events {
		fmt.Printf("\n[%s] %s - %s\n",
			event.Timestamp.Format("2006-01-02 15:04:05"),
			event.Level,
			event.Action,
		)
		fmt.Printf("Resource: %s | Success: %v\n", event.Resource, event.Success)
		if event.ErrorMsg != "" {
			fmt.Printf("Error: %s\n", event.ErrorMsg)
		}
		if event.Metadata != "" {
			fmt.Printf("Metadata: %s\n", event.Metadata)
		}
		fmt.Println("---")
	}
}

func printEntrySummary(entry *models.MoodEntry) {
	fmt.Printf("\n[ID: %d] Mood %d at %s\n", entry.ID, entry.Mood, entry.Time().Format("2006-01-02 15:04"))
	if len(entry.Emotions) > 0 {
		names := make([]string, len(entry.Emotions))
		for i, e := range entry.Emotions {
			names[i] = e.Name
		}
		fmt.Printf("Emotions: %s\n", strings.Join(names, ", "))
	}
	if entry.Note != "" {
		note := entry.Note
		if len(note) > 80 {
			note = note[:80] + "..."
		}
		fmt.Printf("Note: %s\n", note)
	}
}

func promptEntryID(scanner *bufio.Scanner) (int64, bool) {
	fmt.Print("Enter Entry ID: ")
	scanner.Scan()
	id, err := strconv.ParseInt(strings.TrimSpace(scanner.Text()), 10, 64)
	if err != nil {
		fmt.Println("Invalid entry ID")
		return 0, false
	}
	return id, true
}
