package models

type RelationType string

const (
	RelationCitation    RelationType = "CITATION"
	RelationTranslation RelationType = "TRANSLATION"
	RelationVariant     RelationType = "VARIANT"
	RelationPartOf      RelationType = "PART_OF"
)

// DocumentRelation — направленная типизированная связь между документами.
// Confirmed выставляет автор документа-назначения.
type DocumentRelation struct {
	SourceID      int          `json:"source_id"`
	DestinationID int          `json:"destination_id"`
	RelationType  RelationType `json:"relation_type"`
	Confirmed     bool         `json:"confirmed"`
}
