package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"showcase-drop/internal/server"
	"showcase-drop/internal/store"
)

func main() {
	addr := getenvDefault("SHD_ADDR", ":8080")

	build := server.BuildInfo{
		Version: getenvDefault("SHD_VERSION", "dev"),
		Commit:  getenvDefault("SHD_COMMIT", "unknown"),
	}

	dataDir := getenvDefault("SHD_DATA_DIR", ".")
	publicDir := getenvDefault("SHD_PUBLIC_DIR", "public")
	uploadDir := getenvDefault("SHD_UPLOAD_DIR", "uploads")

	maxUpload, err := maxUploadBytes()
	if err != nil {
		log.Printf("service=backend msg=%q err=%v", "bad_max_upload_bytes", err)
		os.Exit(1)
	}

	// A collection file that exists but does not parse aborts startup;
	// silently replacing it with an empty collection would lose data.
	st, err := store.Open(dataDir)
	if err != nil {
		log.Printf("service=backend msg=%q err=%v", "store_open_failed", err)
		os.Exit(1)
	}

	// Blob backend: MinIO when the SHD_S3_* group is configured, local
	// disk otherwise.
	blobs, err := server.NewMinioBlobStoreFromEnv()
	if err != nil {
		log.Printf("service=backend msg=%q err=%v", "minio_setup_failed", err)
		os.Exit(1)
	}
	if blobs == nil {
		blobs, err = server.NewDiskBlobStore(uploadDir)
		if err != nil {
			log.Printf("service=backend msg=%q err=%v", "upload_dir_failed", err)
			os.Exit(1)
		}
		log.Printf("service=backend msg=%q dir=%s", "using_disk_blob_store", uploadDir)
	} else {
		log.Printf("service=backend msg=%q", "using_minio_blob_store")
	}

	srv := server.New(server.Config{
		Addr:           addr,
		Build:          build,
		Store:          st,
		Blobs:          blobs,
		PublicDir:      publicDir,
		MaxUploadBytes: maxUpload,
	})

	// Start the HTTP server in a background goroutine so we can listen for
	// OS signals while it runs.
	errCh := make(chan error, 1)
	go func() {
		log.Printf("service=backend msg=%q addr=%s version=%s commit=%s",
			"starting", addr, build.Version, build.Commit)
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// Block until either a shutdown signal is received or the server fails.
	select {
	case sig := <-sigCh:
		log.Printf("service=backend msg=%q signal=%s", "shutting_down", sig.String())
		// Give the server 5 seconds to finish in-flight requests.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("service=backend msg=%q err=%v", "shutdown_error", err)
			os.Exit(1)
		}
		log.Printf("service=backend msg=%q", "shutdown_complete")
	case err := <-errCh:
		if err != nil {
			log.Printf("service=backend msg=%q err=%v", "server_error", err)
			os.Exit(1)
		}
	}
}

// maxUploadBytes reads SHD_MAX_UPLOAD_BYTES. Returns 0 (no limit) when the
// variable is not set.
func maxUploadBytes() (int64, error) {
	raw := os.Getenv("SHD_MAX_UPLOAD_BYTES")
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}

// getenvDefault reads an environment variable and returns a default value if
// not set.
func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
