package models

import "time"

// TenantAccount is one isolated account of the payroll API and its bearer token.
type TenantAccount struct {
	ID         string    `bson:"_id" json:"id" mapstructure:"id"`
	Credential string    `bson:"credential" json:"-" mapstructure:"token"`
	Position   int       `bson:"position" json:"position" mapstructure:"position"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at" mapstructure:"-"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at" mapstructure:"-"`
}
