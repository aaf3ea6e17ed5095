package backup

import (
	"compress/gzip"
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amirk1998/moodlog/internal/repository"
	"github.com/amirk1998/moodlog/internal/security"
)

type Manager struct {
	db            *sql.DB
	backupDir     string
	encryptionKey []byte
	keepCount     int
	interval      time.Duration
	settings      *repository.SettingsRepository
}

// NewManager creates a new backup manager
func NewManager(db *sql.DB, backupDir string, encryptionKey string, keepCount int, interval time.Duration, settings *repository.SettingsRepository) (*Manager, error) {
	key := security.DeriveKey(encryptionKey, "backup")

	// Ensure backup directory exists with secure permissions
	if err := os.MkdirAll(backupDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create backup directory: %w", err)
	}

	return &Manager{
		db:            db,
		backupDir:     backupDir,
		encryptionKey: key,
		keepCount:     keepCount,
		interval:      interval,
		settings:      settings,
	}, nil
}

// CreateBackup snapshots the journal database into an encrypted,
// compressed file and records the backup time in settings.
func (m *Manager) CreateBackup() (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	backupFileName := fmt.Sprintf("moodlog_%s_%s.db", timestamp, uuid.NewString()[:8])
	backupPath := filepath.Join(m.backupDir, backupFileName)

	// Use VACUUM INTO to create backup
	vacuumQuery := fmt.Sprintf("VACUUM INTO '%s'", backupPath)
	if _, err := m.db.Exec(vacuumQuery); err != nil {
		return "", fmt.Errorf("failed to create backup: %w", err)
	}

	// Encrypt and compress the backup
	encryptedPath := backupPath + ".enc.gz"
	if err := m.encryptAndCompressFile(backupPath, encryptedPath); err != nil {
		os.Remove(backupPath)
		return "", fmt.Errorf("failed to encrypt backup: %w", err)
	}

	// Remove unencrypted backup
	os.Remove(backupPath)

	// Set secure file permissions
	if err := os.Chmod(encryptedPath, 0600); err != nil {
		return "", fmt.Errorf("failed to set file permissions: %w", err)
	}

	// Create checksum file
	if err := m.createChecksumFile(encryptedPath); err != nil {
		return "", fmt.Errorf("failed to create checksum: %w", err)
	}

	if m.settings != nil {
		if err := m.settings.SetLastBackupAt(time.Now()); err != nil {
			fmt.Printf("[Backup] Warning: failed to record backup time: %v\n", err)
		}
	}

	fmt.Printf("[Backup] Created: %s\n", encryptedPath)
	return encryptedPath, nil
}

// encryptAndCompressFile encrypts and compresses a file
func (m *Manager) encryptAndCompressFile(srcPath, dstPath string) error {
	// Read source file
	plaintext, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("failed to read source file: %w", err)
	}

	// Create AES cipher
	block, err := aes.NewCipher(m.encryptionKey)
	if err != nil {
		return fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return fmt.Errorf("failed to create GCM: %w", err)
	}

	// Generate nonce
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Encrypt data
	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)

	// Create destination file with compression
	dstFile, err := os.OpenFile(dstPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	// Compress encrypted data
	gzWriter := gzip.NewWriter(dstFile)
	defer gzWriter.Close()

	if _, err := gzWriter.Write(ciphertext); err != nil {
		return fmt.Errorf("failed to write compressed data: %w", err)
	}

	return nil
}

// createChecksumFile creates SHA-256 checksum file
func (m *Manager) createChecksumFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}

	hash := sha256.Sum256(data)
	checksumPath := filePath + ".sha256"

	return os.WriteFile(checksumPath, []byte(fmt.Sprintf("%x", hash)), 0600)
}

// VerifyBackup verifies backup integrity
func (m *Manager) VerifyBackup(backupPath string) error {
	checksumPath := backupPath + ".sha256"

	// Read stored checksum
	storedChecksum, err := os.ReadFile(checksumPath)
	if err != nil {
		return fmt.Errorf("failed to read checksum file: %w", err)
	}

	// Calculate current checksum
	data, err := os.ReadFile(backupPath)
	if err != nil {
		return fmt.Errorf("failed to read backup file: %w", err)
	}

	hash := sha256.Sum256(data)
	currentChecksum := fmt.Sprintf("%x", hash)

	if currentChecksum != string(storedChecksum) {
		return fmt.Errorf("checksum mismatch: backup file may be corrupted")
	}

	return nil
}

// ListBackups returns encrypted backup files, newest first
func (m *Manager) ListBackups() ([]string, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".enc.gz") {
			continue
		}
		backups = append(backups, filepath.Join(m.backupDir, entry.Name()))
	}

	// Timestamped names sort chronologically
	sort.Sort(sort.Reverse(sort.StringSlice(backups)))

	return backups, nil
}

// CleanOldBackups keeps the newest keepCount backups and deletes the rest
func (m *Manager) CleanOldBackups() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}

	if len(backups) <= m.keepCount {
		return nil
	}

	deletedCount := 0
	for _, backupPath := range backups[m.keepCount:] {
		if err := os.Remove(backupPath); err != nil {
			fmt.Printf("[Backup] Warning: failed to delete %s: %v\n", backupPath, err)
			continue
		}
		os.Remove(backupPath + ".sha256")
		deletedCount++
	}

	if deletedCount > 0 {
		fmt.Printf("[Backup] Cleaned %d old backup files\n", deletedCount)
	}

	return nil
}

// IsBackupNeeded reports whether the configured interval has elapsed since
// the last recorded backup
func (m *Manager) IsBackupNeeded() bool {
	if m.settings == nil {
		return true
	}

	last, err := m.settings.LastBackupAt()
	if err != nil || last.IsZero() {
		return true
	}

	return time.Since(last) >= m.interval
}

// StartAutomatedBackups starts automated backup scheduler
func (m *Manager) StartAutomatedBackups(ctx context.Context, checkInterval time.Duration) {
	ticker := time.NewTicker(checkInterval)
	defer ticker.Stop()

	fmt.Printf("[Backup] Automated backups started (interval: %v)\n", m.interval)

	for {
		select {
		case <-ctx.Done():
			fmt.Println("[Backup] Stopping automated backups")
			return
		case <-ticker.C:
			if !m.IsBackupNeeded() {
				continue
			}

			fmt.Println("[Backup] Starting scheduled backup...")
			if _, err := m.CreateBackup(); err != nil {
				fmt.Printf("[Backup] Scheduled backup failed: %v\n", err)
			}

			// Clean old backups
			if err := m.CleanOldBackups(); err != nil {
				fmt.Printf("[Backup] Cleanup failed: %v\n", err)
			}
		}
	}
}
