// Package models holds the gateway's view of its documents. Documents stay
// open-ended; only the fields the gateway itself reads get typed projections.
package models

import "go.mongodb.org/mongo-driver/bson"

// Document is a schema-less record as stored.
type Document = bson.M

// Collection names.
const (
	Users    = "users"
	Products = "products"
	Orders   = "orders"
	Reviews  = "reviews"
	Blogs    = "blogs"
)

// Field names the gateway reads or writes.
const (
	FieldID      = "_id"
	FieldEmail   = "email"
	FieldRole    = "role"
	FieldStatus  = "status"
	FieldPayment = "payment"
)

// RoleAdmin is the only role value the gateway ever writes.
const RoleAdmin = "admin"

// StripIDs removes caller-supplied identifiers so the store assigns one.
func StripIDs(doc Document) {
	delete(doc, FieldID)
	delete(doc, "id")
}
