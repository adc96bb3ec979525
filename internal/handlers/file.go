package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/clientbridge-dev/clientbridge/db"
	"github.com/clientbridge-dev/clientbridge/internal/authz"
	"github.com/clientbridge-dev/clientbridge/internal/models"
	"github.com/clientbridge-dev/clientbridge/internal/storage"
	"github.com/clientbridge-dev/clientbridge/internal/types"
	"github.com/clientbridge-dev/clientbridge/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Extensions accepted for project uploads: images plus common document,
// spreadsheet and archive types.
var allowedFileExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".xls":  true,
	".xlsx": true,
	".txt":  true,
	".zip":  true,
}

func allowedUploadType(fileName string) bool {
	return allowedFileExtensions[strings.ToLower(filepath.Ext(fileName))]
}

func toFileResponse(f models.FileRecord) types.FileResponse {
	return types.FileResponse{
		ID:           f.ID,
		ProjectID:    f.ProjectID,
		UploadedBy:   f.UploadedBy,
		UploaderRole: f.UploaderRole,
		FileName:     f.FileName,
		FileURL:      f.FileURL,
		FileType:     f.FileType,
		FileSize:     f.FileSize,
		Category:     f.Category,
		CreatedAt:    f.CreatedAt,
	}
}

// UploadFile stores the blob first; the FileRecord is only written once the
// store confirms a URL. A storage failure therefore leaves no metadata behind.
func UploadFile(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionUploadFile)

	if !ok {
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		respondError(ctx, http.StatusUnauthorized, "User not authenticated")
		return
	}

	header, err := ctx.FormFile("file")

	if err != nil {
		respondError(ctx, http.StatusBadRequest, "A file is required")
		return
	}

	if !allowedUploadType(header.Filename) {
		respondError(ctx, http.StatusBadRequest, "File type is not allowed")
		return
	}

	if header.Size > cfg.MaxUploadBytes {
		respondError(ctx, http.StatusBadRequest, "File exceeds the maximum allowed size")
		return
	}

	category := ctx.PostForm("category")

	if category == "" {
		category = types.FileCategoryOther
	}

	if !types.IsValidFileCategory(category) {
		respondError(ctx, http.StatusBadRequest, "Invalid file category")
		return
	}

	src, err := header.Open()

	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	result, err := blobs.Put(data, storage.PutInput{
		Folder:       "projects",
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
	})

	if err != nil {
		log.Printf("Blob storage rejected upload for project %d: %v", project.ID, err)
		respondError(ctx, http.StatusInternalServerError, "Failed to store file")
		return
	}

	record := models.FileRecord{
		ProjectID:    project.ID,
		UploadedBy:   currentUser.ID,
		UploaderRole: currentUser.Role,
		FileName:     header.Filename,
		FileURL:      result.URL,
		FileType:     header.Header.Get("Content-Type"),
		FileSize:     header.Size,
		Category:     category,
	}

	if err := db.DB.Create(&record).Error; err != nil {
		log.Printf("Failed to create file record on project %d: %v", project.ID, err)
		respondError(ctx, http.StatusInternalServerError, "Failed to store file")
		return
	}

	notify.FileUploaded(project, record)

	respondData(ctx, http.StatusCreated, toFileResponse(record))
}

func ListFiles(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionViewProject)

	if !ok {
		return
	}

	var files []models.FileRecord

	if err := db.DB.Where("project_id = ?", project.ID).
		Order("created_at DESC").
		Find(&files).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to retrieve files")
		return
	}

	response := make([]types.FileResponse, 0, len(files))

	for _, file := range files {
		response = append(response, toFileResponse(file))
	}

	respondList(ctx, int64(len(response)), response)
}

// DeleteFile removes the metadata record, then asks the blob store to drop
// the bytes. The record is the source of truth, so a blob-store failure is
// logged rather than surfaced.
func DeleteFile(ctx *gin.Context) {
	project, ok := fetchGatedProject(ctx, authz.ActionViewProject)

	if !ok {
		return
	}

	fileID, err := utils.GetFileID(ctx)

	if err != nil {
		respondError(ctx, http.StatusBadRequest, err.Error())
		return
	}

	var record models.FileRecord

	if err := db.DB.Where("id = ? AND project_id = ?", fileID, project.ID).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(ctx, http.StatusNotFound, "File not found")
		} else {
			respondError(ctx, http.StatusInternalServerError, "Failed to retrieve file")
		}
		return
	}

	decision := authz.Authorize(utils.GetIdentity(ctx), authz.ActionDeleteFile,
		authz.Resource{ProjectClientID: project.ClientID, UploaderID: record.UploadedBy})

	if !decision.Allowed {
		respondError(ctx, http.StatusForbidden, "Only the uploader or an admin can delete this file")
		return
	}

	if err := db.DB.Delete(&record).Error; err != nil {
		respondError(ctx, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	if err := blobs.Delete(record.FileURL); err != nil {
		log.Printf("Failed to delete blob %s: %v", record.FileURL, err)
	}

	ctx.Status(http.StatusNoContent)
}
