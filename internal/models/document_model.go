package models

import (
	"encoding/json"
	"time"
)

type Document struct {
	ID          string    `json:"id"`
	Title       string    `json:"titulo"`
	Description string    `json:"descricao"`
	CreatedAt   time.Time `json:"criacao"`
	DetailLink  string    `json:"-"`

	// nil when the document has no detail link or the detail fetch failed
	Detail json.RawMessage `json:"detalhe,omitempty"`
}
