package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Admin accounts are seeded out-of-band (cmd/seed) and only ever read by the
// credential login path.
type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"` // bcrypt hash
}
