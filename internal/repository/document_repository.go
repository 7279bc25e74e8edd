package repository

import (
	"resi-be-svc/internal/models"
	"resi-be-svc/internal/models/response"

	"gorm.io/gorm"
)

// DocumentFilter narrows document list queries
type DocumentFilter struct {
	ResidentID *uint
	Type       string
}

// DocumentRepository defines the interface for document data operations
type DocumentRepository interface {
	Create(document *models.Document) error
	GetByID(id uint) (*models.Document, error)
	List(filter DocumentFilter, page, limit int) ([]*models.Document, int64, error)
	MarkRead(id uint) error
	StatsByType() ([]response.DocumentTypeCount, error)
	Count() (int64, error)
}

// documentRepository implements DocumentRepository
type documentRepository struct {
	db *gorm.DB
}

// NewDocumentRepository creates a new instance of DocumentRepository
func NewDocumentRepository(db *gorm.DB) DocumentRepository {
	return &documentRepository{
		db: db,
	}
}

// Create inserts a new document
func (r *documentRepository) Create(document *models.Document) error {
	return r.db.Create(document).Error
}

// GetByID retrieves a document by ID with its resident
func (r *documentRepository) GetByID(id uint) (*models.Document, error) {
	var document models.Document

	err := r.db.Preload("Resident").Where("id = ?", id).First(&document).Error
	if err != nil {
		return nil, err
	}

	return &document, nil
}

// List retrieves documents newest-created-first with pagination and total count
func (r *documentRepository) List(filter DocumentFilter, page, limit int) ([]*models.Document, int64, error) {
	var documents []*models.Document

	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	offset := (page - 1) * limit

	query := r.db.Model(&models.Document{})
	if filter.ResidentID != nil {
		query = query.Where("resident_id = ?", *filter.ResidentID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Preload("Resident").Preload("Resident.User").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&documents).Error
	if err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

// MarkRead sets the document read flag
func (r *documentRepository) MarkRead(id uint) error {
	return r.db.Model(&models.Document{}).Where("id = ?", id).Update("is_read", true).Error
}

// StatsByType returns the per-type document count breakdown
func (r *documentRepository) StatsByType() ([]response.DocumentTypeCount, error) {
	var rows []response.DocumentTypeCount

	err := r.db.Model(&models.Document{}).
		Select("type, COUNT(*) as count").
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// Count returns the total number of documents
func (r *documentRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Document{}).Count(&count).Error
	return count, err
}
