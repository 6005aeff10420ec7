package models

import "time"

type DocumentStatus string

const (
	DocumentDraft     DocumentStatus = "DRAFT"
	DocumentPending   DocumentStatus = "PENDING"
	DocumentPublished DocumentStatus = "PUBLISHED"
	DocumentRejected  DocumentStatus = "REJECTED"
)

type DocumentFormat string

const (
	FormatPDF      DocumentFormat = "PDF"
	FormatTXT      DocumentFormat = "TXT"
	FormatMIDI     DocumentFormat = "MIDI"
	FormatMusicXML DocumentFormat = "MUSICXML"
	FormatJPG      DocumentFormat = "JPG"
)

func (f DocumentFormat) Valid() bool {
	switch f {
	case FormatPDF, FormatTXT, FormatMIDI, FormatMusicXML, FormatJPG:
		return true
	}
	return false
}

// Document — единый тип для всех форматов: атрибуты партитур (instrument,
// tonality, compositor) опциональны и заполняются по формату.
type Document struct {
	ID           int            `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Status       DocumentStatus `json:"status"`
	Format       DocumentFormat `json:"format"`
	AuthorID     int            `json:"author_id"`
	FileName     string         `json:"file_name"`
	FilePath     string         `json:"file_path"`
	Period       string         `json:"period,omitempty"`
	DocumentType string         `json:"document_type,omitempty"`
	Instrument   string         `json:"instrument,omitempty"`
	Tonality     string         `json:"tonality,omitempty"`
	Compositor   string         `json:"compositor,omitempty"`
	CreationDate time.Time      `json:"creation_date"`
	Tags         []string       `json:"tags"`
}

// DocumentSearchCriteria — необязательные фильтры поиска документов.
type DocumentSearchCriteria struct {
	Title         string
	AuthorID      *int
	Format        DocumentFormat
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	Tags          []string
}
