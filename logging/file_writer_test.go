package logging

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultFileWriterConfig(t *testing.T) {
	config := DefaultFileWriterConfig()

	tests := []struct {
		name     string
		got      interface{}
		expected interface{}
	}{
		{"MaxSizeMB", config.MaxSizeMB, DefaultMaxSizeMB},
		{"MaxBackups", config.MaxBackups, DefaultMaxBackups},
		{"MaxAgeDays", config.MaxAgeDays, DefaultMaxAgeDays},
		{"Compress", config.Compress, DefaultCompress},
		{"LocalTime", config.LocalTime, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("DefaultFileWriterConfig().%s = %v, want %v", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestNewFileWriter_WritesLazily(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "resumidor.log")

	writer := NewFileWriter(logPath)
	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Errorf("log file should not exist before the first write, stat err = %v", err)
	}

	msg := []byte("primeira linha\n")
	n, err := writer.Write(msg)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != len(msg) {
		t.Errorf("Write returned %d bytes, want %d", n, len(msg))
	}
	if err := writer.Sync(); err != nil {
		t.Errorf("Sync failed: %v", err)
	}

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if string(content) != string(msg) {
		t.Errorf("file content = %q, want %q", content, msg)
	}
}

func TestFileWriterConfig_WithDefaults(t *testing.T) {
	tests := []struct {
		name  string
		input FileWriterConfig
		want  FileWriterConfig
	}{
		{
			name:  "zero values take defaults",
			input: FileWriterConfig{},
			want: FileWriterConfig{
				MaxSizeMB:  DefaultMaxSizeMB,
				MaxBackups: DefaultMaxBackups,
				MaxAgeDays: DefaultMaxAgeDays,
			},
		},
		{
			name:  "explicit values kept",
			input: FileWriterConfig{MaxSizeMB: 10, MaxBackups: 2, MaxAgeDays: 3, Compress: true, LocalTime: true},
			want:  FileWriterConfig{MaxSizeMB: 10, MaxBackups: 2, MaxAgeDays: 3, Compress: true, LocalTime: true},
		},
		{
			name:  "negative values take defaults",
			input: FileWriterConfig{MaxSizeMB: -1, MaxBackups: -3, MaxAgeDays: -7, Compress: true},
			want: FileWriterConfig{
				MaxSizeMB:  DefaultMaxSizeMB,
				MaxBackups: DefaultMaxBackups,
				MaxAgeDays: DefaultMaxAgeDays,
				Compress:   true,
			},
		},
		{
			name:  "partial config",
			input: FileWriterConfig{MaxSizeMB: 1},
			want: FileWriterConfig{
				MaxSizeMB:  1,
				MaxBackups: DefaultMaxBackups,
				MaxAgeDays: DefaultMaxAgeDays,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.input.withDefaults(); got != tt.want {
				t.Errorf("withDefaults() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
