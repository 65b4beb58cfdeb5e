package handlers

import (
	"encoding/json"
	"net/http"

	"freelance-backend/internal/services"
)

type BackupHandler struct {
	Service *services.BackupService
}

func NewBackupHandler(s *services.BackupService) *BackupHandler {
	return &BackupHandler{Service: s}
}

// RunBackup archives the record store and uploads it
func (h *BackupHandler) RunBackup(w http.ResponseWriter, r *http.Request) {
	key, err := h.Service.Run(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"key": key})
}

// ListBackups returns the stored archives
func (h *BackupHandler) ListBackups(w http.ResponseWriter, r *http.Request) {
	backups, err := h.Service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(backups)
}
