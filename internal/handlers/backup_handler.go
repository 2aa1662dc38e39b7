package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"tokopos/internal/audit"
)

func GetBackups(c *gin.Context) {
	history, err := backupSvc.History(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch backup history"})
		return
	}
	c.JSON(http.StatusOK, history)
}

type createBackupRequest struct {
	Note string `json:"note"`
}

func CreateBackup(c *gin.Context) {
	var req createBackupRequest
	// the note is optional, an empty body is fine
	_ = c.ShouldBindJSON(&req)

	actor := currentActor(c)
	b, err := backupSvc.Create(c.Request.Context(), req.Note, actor.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create backup"})
		return
	}

	auditSvc.Try(c.Request.Context(), actor.ID, actor.Name, audit.ActionBackupCreated,
		fmt.Sprintf("Backup %s created (%d bytes)", b.ID, b.SizeBytes), c.ClientIP())

	c.JSON(http.StatusCreated, b)
}

func RestoreBackup(c *gin.Context) {
	id := c.Param("id")
	if err := backupSvc.Restore(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to restore backup"})
		return
	}

	actor := currentActor(c)
	auditSvc.Try(c.Request.Context(), actor.ID, actor.Name, audit.ActionBackupRestored,
		fmt.Sprintf("Backup %s restored", id), c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Backup restored successfully"})
}

// RestoreBackupUpload restores from an uploaded snapshot file.
func RestoreBackupUpload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
		return
	}
	defer f.Close()

	if err := backupSvc.RestoreFrom(c.Request.Context(), f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Uploaded file is not a valid backup"})
		return
	}

	actor := currentActor(c)
	auditSvc.Try(c.Request.Context(), actor.ID, actor.Name, audit.ActionBackupRestored,
		"Backup restored from uploaded file", c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Backup restored successfully"})
}

func DeleteBackup(c *gin.Context) {
	id := c.Param("id")
	if err := backupSvc.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete backup"})
		return
	}

	actor := currentActor(c)
	auditSvc.Try(c.Request.Context(), actor.ID, actor.Name, audit.ActionBackupDeleted,
		fmt.Sprintf("Backup %s deleted", id), c.ClientIP())

	c.JSON(http.StatusOK, gin.H{"message": "Backup deleted successfully"})
}
