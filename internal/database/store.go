package database

import (
	"errors"

	"brewshare/internal/models"
)

// ErrNotFound is returned when a record id does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the persistence interface for domain records.
// The share core never touches storage directly; handlers and the CLI
// consume records through this abstraction so the backend stays swappable.
type Store interface {
	// Bean operations
	CreateBean(bean *models.CoffeeBean) error
	GetBean(id string) (*models.CoffeeBean, error)
	ListBeans() ([]*models.CoffeeBean, error)
	UpdateBean(bean *models.CoffeeBean) error
	DeleteBean(id string) error

	// Method operations
	CreateMethod(method *models.Method) error
	GetMethod(id string) (*models.Method, error)
	ListMethods() ([]*models.Method, error)
	DeleteMethod(id string) error

	// Brewing note operations
	CreateNote(note *models.BrewingNote) error
	GetNote(id string) (*models.BrewingNote, error)
	ListNotes() ([]*models.BrewingNote, error)
	DeleteNote(id string) error

	// Close the database connection
	Close() error
}
