// items.go - Item upload, listing, and deletion handlers.
package server

import (
	"context"
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"showcase-drop/internal/store"
)

// handleUpload accepts a multipart submission with title, description and
// username fields plus optional image and source file parts. Stored parts
// are referenced by relative URL in the created item; absent parts yield
// empty strings.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if s.cfg.MaxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		writeError(w, http.StatusBadRequest, "bad multipart")
		return
	}

	title := r.FormValue("title")
	description := r.FormValue("description")
	username := r.FormValue("username")

	rid := RequestIDFromContext(r.Context())

	imagePath, imageBytes, err := s.saveFormBlob(r, "image", blobKindImage)
	if err != nil {
		GetMetrics().RecordUploadError()
		log.Printf("rid=%s msg=blob_save_failed part=image err=%v", rid, err)
		writeError(w, http.StatusBadGateway, "upload failed")
		return
	}
	sourcePath, sourceBytes, err := s.saveFormBlob(r, "source", blobKindSource)
	if err != nil {
		GetMetrics().RecordUploadError()
		log.Printf("rid=%s msg=blob_save_failed part=source err=%v", rid, err)
		writeError(w, http.StatusBadGateway, "upload failed")
		return
	}

	item, err := s.cfg.Store.CreateItem(title, description, username, imagePath, sourcePath)
	if err != nil {
		log.Printf("rid=%s msg=item_create_failed err=%v", rid, err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	GetMetrics().RecordItemCreated(imageBytes + sourceBytes)
	log.Printf("rid=%s msg=item_created id=%d image=%q source=%q", rid, item.ID, item.Image, item.Source)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"item":    item,
	})
}

// saveFormBlob stores one optional file part and reports its size. An
// absent part is not an error; it yields an empty path.
func (s *Server) saveFormBlob(r *http.Request, field, kind string) (string, int64, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, err
	}
	defer func(f multipart.File) { _ = f.Close() }(file)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	relURL, err := s.cfg.Blobs.Save(ctx, kind, header.Filename, file)
	if err != nil {
		return "", 0, err
	}
	return relURL, header.Size, nil
}

func (s *Server) handleListItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	// The front-end expects a bare JSON array, not an envelope.
	writeJSON(w, http.StatusOK, s.cfg.Store.ListItems())
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/items/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad id")
		return
	}

	item, err := s.cfg.Store.DeleteItem(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Item not found")
			return
		}
		rid := RequestIDFromContext(r.Context())
		log.Printf("rid=%s msg=item_delete_failed id=%d err=%v", rid, id, err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	// Blob cleanup is best effort: the record is already gone and a missing
	// blob is skipped, not surfaced.
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	rid := RequestIDFromContext(r.Context())
	for _, rel := range []string{item.Image, item.Source} {
		if rel == "" {
			continue
		}
		if err := s.cfg.Blobs.Remove(ctx, rel); err != nil {
			log.Printf("rid=%s msg=blob_remove_failed path=%s err=%v", rid, rel, err)
		}
	}

	GetMetrics().RecordItemDeleted()
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
