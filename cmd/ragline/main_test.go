package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSplitExtensions(t *testing.T) {
	t.Run("single extension", func(t *testing.T) {
		assert.Equal(t, []string{".pdf"}, splitExtensions(".pdf"))
	})

	t.Run("multiple extensions", func(t *testing.T) {
		assert.Equal(t, []string{".pdf", ".txt", ".md"}, splitExtensions(".pdf,.txt,.md"))
	})

	t.Run("missing dots are added", func(t *testing.T) {
		assert.Equal(t, []string{".pdf", ".txt"}, splitExtensions("pdf,txt"))
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		assert.Equal(t, []string{".pdf", ".txt"}, splitExtensions(" .pdf , .txt "))
	})

	t.Run("empty string accepts everything", func(t *testing.T) {
		assert.Empty(t, splitExtensions(""))
	})

	t.Run("stray commas are ignored", func(t *testing.T) {
		assert.Equal(t, []string{".pdf"}, splitExtensions(",.pdf,"))
	})
}

func TestLoadManifestOrFile(t *testing.T) {
	t.Run("json input is read as a manifest", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "manifest.json")
		content := `{
  "document_paths": ["/staged/a.pdf"],
  "metadata": {
    "bucket": "docs",
    "endpoint": "http://localhost:9000",
    "file_count": 1,
    "details": [{"file_path": "/staged/a.pdf", "key": "a.pdf", "size": 10, "last_modified": "2025-06-01T00:00:00Z"}]
  }
}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		manifest, err := loadManifestOrFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"/staged/a.pdf"}, manifest.DocumentPaths)
		assert.Equal(t, "docs", manifest.Metadata.Bucket)
	})

	t.Run("single document is wrapped", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "report.txt")
		require.NoError(t, os.WriteFile(path, []byte("content"), 0644))

		manifest, err := loadManifestOrFile(path)
		require.NoError(t, err)
		require.Len(t, manifest.DocumentPaths, 1)
		assert.Equal(t, path, manifest.DocumentPaths[0])
		assert.Equal(t, 1, manifest.Metadata.FileCount)
		assert.Equal(t, "report.txt", manifest.Metadata.Details[0].Key)
		assert.Equal(t, "local", manifest.Metadata.Endpoint)
	})

	t.Run("missing input fails", func(t *testing.T) {
		_, err := loadManifestOrFile(filepath.Join(t.TempDir(), "absent.txt"))
		assert.Error(t, err)
	})

	t.Run("directory input fails", func(t *testing.T) {
		_, err := loadManifestOrFile(t.TempDir())
		assert.Error(t, err)
	})
}

func TestProcessCommandFlags(t *testing.T) {
	cmd := &cli.Command{
		Name: "process",
		Flags: append(processingFlags(),
			&cli.StringFlag{
				Name:     "input",
				Required: true,
			},
		),
		Action: func(c *cli.Context) error { return nil },
	}
	app := &cli.App{Name: "ragline", Commands: []*cli.Command{cmd}}

	t.Run("vector-db-id is required", func(t *testing.T) {
		err := app.Run([]string{"ragline", "process", "--input", "manifest.json"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "vector-db-id")
	})

	t.Run("input is required", func(t *testing.T) {
		err := app.Run([]string{"ragline", "process", "--vector-db-id", "docs"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "input")
	})

	t.Run("embedding defaults", func(t *testing.T) {
		var hostFlag, modelFlag *cli.StringFlag
		var dimFlag *cli.IntFlag
		for _, flag := range cmd.Flags {
			switch f := flag.(type) {
			case *cli.StringFlag:
				if f.Name == "embedding-host" {
					hostFlag = f
				}
				if f.Name == "embedding-model" {
					modelFlag = f
				}
			case *cli.IntFlag:
				if f.Name == "embedding-dimension" {
					dimFlag = f
				}
			}
		}
		require.NotNil(t, hostFlag)
		require.NotNil(t, modelFlag)
		require.NotNil(t, dimFlag)
		assert.Equal(t, "http://localhost:11434/v1", hostFlag.Value)
		assert.Equal(t, "all-MiniLM-L6-v2", modelFlag.Value)
		assert.Equal(t, 384, dimFlag.Value)
	})

	t.Run("vector store default", func(t *testing.T) {
		var urlFlag *cli.StringFlag
		for _, flag := range cmd.Flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "vector-store-url" {
				urlFlag = f
				break
			}
		}
		require.NotNil(t, urlFlag)
		assert.Equal(t, "http://localhost:8321", urlFlag.Value)
	})
}

func TestProvideCommandFlags(t *testing.T) {
	flags := append(s3Flags(),
		&cli.StringFlag{Name: "extensions", Value: ".pdf"},
		&cli.IntFlag{Name: "max-files", Value: 100},
		&cli.StringFlag{Name: "download-dir", Required: true},
	)
	app := &cli.App{
		Name: "ragline",
		Commands: []*cli.Command{{
			Name:   "provide",
			Flags:  flags,
			Action: func(c *cli.Context) error { return nil },
		}},
	}

	t.Run("download-dir is required", func(t *testing.T) {
		err := app.Run([]string{"ragline", "provide"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "download-dir")
	})

	t.Run("endpoint has default value", func(t *testing.T) {
		var endpointFlag *cli.StringFlag
		for _, flag := range flags {
			if f, ok := flag.(*cli.StringFlag); ok && f.Name == "endpoint" {
				endpointFlag = f
				break
			}
		}
		require.NotNil(t, endpointFlag)
		assert.Equal(t, "http://localhost:9000", endpointFlag.Value)
	})
}

func TestSetupLogger(t *testing.T) {
	newApp := func() *cli.App {
		return &cli.App{
			Name: "test",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "log-level",
					Value: "info",
				},
			},
			Before: setupLogger,
			Action: func(c *cli.Context) error { return nil },
		}
	}

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("case insensitive log levels", func(t *testing.T) {
		for _, level := range []string{"DEBUG", "Info", "WaRn", "ERROR"} {
			t.Run(level, func(t *testing.T) {
				err := newApp().Run([]string{"test", "--log-level", level})
				require.NoError(t, err)
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		err := newApp().Run([]string{"test", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("default log level is info", func(t *testing.T) {
		app := newApp()
		app.Action = func(c *cli.Context) error {
			assert.Equal(t, "info", c.String("log-level"))
			return nil
		}
		require.NoError(t, app.Run([]string{"test"}))
	})
}

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	os.Exit(m.Run())
}
