package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timbua/procurement-api/config"
	"github.com/timbua/procurement-api/models"
	"github.com/timbua/procurement-api/services"
	"github.com/timbua/procurement-api/utils"
)

// UploadDocument handles POST /api/v1/documents - uploads a verification
// document for a contractor or supplier
func UploadDocument(c *gin.Context) {
	ownerType := c.PostForm("owner_type")
	if ownerType != models.DocumentOwnerContractor && ownerType != models.DocumentOwnerSupplier {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "owner_type must be \"contractor\" or \"supplier\"")
		return
	}

	ownerID, err := strconv.ParseUint(c.PostForm("owner_id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "owner_id must be a valid id")
		return
	}

	documentType := c.PostForm("document_type")
	if documentType == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "document_type is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "A file is required")
		return
	}

	db := config.GetDB()

	// The owner must exist before a document can be attached to it
	if ownerType == models.DocumentOwnerContractor {
		var contractor models.Contractor
		if err := db.First(&contractor, uint(ownerID)).Error; err != nil {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Contractor not found")
			return
		}
	} else {
		var supplier models.Supplier
		if err := db.First(&supplier, uint(ownerID)).Error; err != nil {
			respondError(c, http.StatusNotFound, "NOT_FOUND", "Supplier not found")
			return
		}
	}

	s3Key, err := services.GetDocumentService().UploadDocument(fileHeader)
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			respondError(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
			return
		}
		log.Printf("Document upload failed: %v", err)
		respondError(c, http.StatusInternalServerError, "UPLOAD_ERROR", "Failed to upload document")
		return
	}

	document := models.Document{
		OwnerType:    ownerType,
		OwnerID:      uint(ownerID),
		DocumentType: documentType,
		FileName:     fileHeader.Filename,
		S3Key:        s3Key,
		Status:       models.DocumentPendingReview,
	}

	if err := db.Create(&document).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save document record")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    document,
	})
}

// GetDocumentsByOwner handles GET /api/v1/documents/owner/:ownerType/:ownerId -
// lists an owner's documents with presigned URLs
func GetDocumentsByOwner(c *gin.Context) {
	ownerType := c.Param("ownerType")
	if ownerType != models.DocumentOwnerContractor && ownerType != models.DocumentOwnerSupplier {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "owner type must be \"contractor\" or \"supplier\"")
		return
	}

	ownerID, ok := parseIDParam(c, "ownerId")
	if !ok {
		return
	}

	var documents []models.Document
	err := config.GetDB().
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Find(&documents).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load documents")
		return
	}

	documentService := services.GetDocumentService()
	for i := range documents {
		url, err := documentService.GetDocumentURL(documents[i].S3Key)
		if err != nil {
			log.Printf("Failed to generate URL for document %d: %v", documents[i].ID, err)
			continue
		}
		documents[i].FileURL = url
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    documents,
	})
}

// DeleteDocument handles DELETE /api/v1/documents/:id - removes a document
// record and its stored file
func DeleteDocument(c *gin.Context) {
	documentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()

	var document models.Document
	if err := db.First(&document, documentID).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Document not found")
		return
	}

	if err := services.GetDocumentService().DeleteDocument(document.S3Key); err != nil {
		log.Printf("Failed to delete stored file for document %d: %v", documentID, err)
		respondError(c, http.StatusInternalServerError, "DELETE_ERROR", "Failed to delete stored file")
		return
	}

	if err := db.Delete(&document).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete document record")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Document deleted",
	})
}
