package models

// Role is written out of band; this service only reads it.
type Role struct {
	UserID string `bson:"_id" json:"user_id"`
	Admin  bool   `bson:"admin" json:"admin"`
}

// Identity is the principal carried by a provider token
type Identity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email,omitempty"`
}
