package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Address represents a single address entry for a user. At most one entry in
// a user's list has IsDefault set; writes that introduce a new default unset
// the others in the same update.
type Address struct {
	ID        string `bson:"id" json:"id"`
	Title     string `bson:"title" json:"title"`
	Street    string `bson:"street" json:"street"`
	City      string `bson:"city" json:"city"`
	State     string `bson:"state" json:"state"`
	Zip       string `bson:"zip" json:"zip"`
	Phone     string `bson:"phone" json:"phone"`
	IsDefault bool   `bson:"isDefault" json:"isDefault"`
}

// User is a storefront customer. Records are created lazily on the first OTP
// request, so every field except the identifier used to create them starts
// empty. OTP and OTPExpires are transient: set on issuance, removed with
// $unset on successful verification, and never serialized to JSON.
type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email      string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone      string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Name       string             `bson:"name,omitempty" json:"name,omitempty"`
	OTP        string             `bson:"otp,omitempty" json:"-"`
	OTPExpires *time.Time         `bson:"otpExpires,omitempty" json:"-"`
	Addresses  []Address          `bson:"addresses" json:"addresses"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
