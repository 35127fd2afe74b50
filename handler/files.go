package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"

	C "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/config"
	mid "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/middleware"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/model"
	"github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/model/store"
	U "github.com/TMoShadez/NXTKonekt-Service-Quoting-Tool-sub000/util"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const maxUploadSizeBytes = 10 * 1024 * 1024

// UploadAssessmentFileHandler attaches a site photo or document to an
// assessment. The blob is stored under a generated name; the original
// name survives only in the row for display.
func UploadAssessmentFileHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "File upload failed. Invalid user."})
		return
	}
	logCtx := log.WithField("user_id", userID)

	assessmentID, err := strconv.ParseUint(c.Params.ByName("assessment_id"), 10, 64)
	if err != nil || assessmentID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment id."})
		return
	}

	assessment, errCode := store.GetStore().GetAssessment(assessmentID, userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "File upload failed."})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Missing 'file' form field."})
		return
	}
	defer file.Close()

	if header.Size > maxUploadSizeBytes {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "File size exceeds 10MB limit."})
		return
	}

	category := c.PostForm("category")
	if category == "" {
		category = model.FileCategoryDocument
	}
	if !model.IsValidFileCategory(category) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid file category."})
		return
	}

	originalName := U.SanitizeFilename(header.Filename)
	storedName := fmt.Sprintf("%s%s", U.GetUUID(), filepath.Ext(originalName))

	fm := C.GetServices().FileManager
	dir := fm.GetAssessmentFilesDir(assessment.OrganizationID, assessmentID)
	if err := fm.Create(dir, storedName, file); err != nil {
		logCtx.WithError(err).Error("File upload failed. Store write failed.")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "File upload failed."})
		return
	}

	uploadedFile, errCode := store.GetStore().CreateUploadedFile(&model.UploadedFile{
		AssessmentID: assessmentID,
		UserID:       userID,
		Category:     category,
		OriginalName: originalName,
		StoredName:   storedName,
		ContentType:  header.Header.Get("Content-Type"),
		SizeBytes:    header.Size,
		StoragePath:  dir + storedName,
	})
	if errCode != http.StatusCreated {
		if err := fm.Delete(dir, storedName); err != nil {
			logCtx.WithError(err).Error("Failed to clean up stored file after row create failure.")
		}
		c.AbortWithStatusJSON(errCode, gin.H{"error": "File upload failed."})
		return
	}

	c.JSON(http.StatusCreated, uploadedFile)
}

func GetAssessmentFilesHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get files failed. Invalid user."})
		return
	}

	assessmentID, err := strconv.ParseUint(c.Params.ByName("assessment_id"), 10, 64)
	if err != nil || assessmentID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid assessment id."})
		return
	}

	files, errCode := store.GetStore().GetUploadedFilesByAssessment(assessmentID, userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Get files failed."})
		return
	}

	c.JSON(http.StatusOK, files)
}

// DownloadFileHandler streams a stored attachment back as a download.
func DownloadFileHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Download failed. Invalid user."})
		return
	}
	logCtx := log.WithField("user_id", userID)

	fileID, err := strconv.ParseUint(c.Params.ByName("file_id"), 10, 64)
	if err != nil || fileID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid file id."})
		return
	}

	uploadedFile, errCode := store.GetStore().GetUploadedFile(fileID, userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Download failed."})
		return
	}

	assessment, errCode := store.GetStore().GetAssessment(uploadedFile.AssessmentID, userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Download failed."})
		return
	}

	fm := C.GetServices().FileManager
	dir := fm.GetAssessmentFilesDir(assessment.OrganizationID, assessment.ID)
	reader, err := fm.Get(dir, uploadedFile.StoredName)
	if err != nil {
		logCtx.WithError(err).WithField("file_id", fileID).Error("Download failed. Store read failed.")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Download failed."})
		return
	}
	defer reader.Close()

	contentType := uploadedFile.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", uploadedFile.OriginalName))
	c.DataFromReader(http.StatusOK, uploadedFile.SizeBytes, contentType, reader, nil)
}

// DeleteFileHandler removes the row and, best effort, the stored blob.
func DeleteFileHandler(c *gin.Context) {
	userID := U.GetScopeByKeyAsString(c, mid.SCOPE_LOGGEDIN_USER_ID)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Delete file failed. Invalid user."})
		return
	}
	logCtx := log.WithField("user_id", userID)

	fileID, err := strconv.ParseUint(c.Params.ByName("file_id"), 10, 64)
	if err != nil || fileID == 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid file id."})
		return
	}

	uploadedFile, errCode := store.GetStore().GetUploadedFile(fileID, userID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Delete file failed."})
		return
	}

	if assessment, errCode := store.GetStore().GetAssessment(uploadedFile.AssessmentID, userID); errCode == http.StatusFound {
		fm := C.GetServices().FileManager
		dir := fm.GetAssessmentFilesDir(assessment.OrganizationID, assessment.ID)
		if err := fm.Delete(dir, uploadedFile.StoredName); err != nil {
			logCtx.WithError(err).WithField("file_id", fileID).Error("Failed to delete stored file.")
		}
	}

	errCode = store.GetStore().DeleteUploadedFile(fileID, userID)
	if errCode != http.StatusAccepted {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Delete file failed."})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "deleted"})
}
