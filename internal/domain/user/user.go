package user

import (
	"encoding/json"
	"errors"

	"github.com/geocoder89/devjobs/internal/utils"
)

var (
	ErrNotFound    = errors.New("user not found")
	ErrEmailExists = errors.New("email already registered")
)

// User mirrors a row of the user table. JSON names follow the column names
// existing clients read, including "adress" and "Ville".
type User struct {
	ID        int64  `json:"user_id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Adress    string `json:"adress"`
	Zipcode   int64  `json:"zipcode"`
	Country   string `json:"country"`
	// Password is stored and compared in clear text.
	Password string `json:"password"`
	Active   int    `json:"active"`
	Ville    string `json:"Ville"`
}

// Profile is the mutable field set written on registration and on a full
// profile update.
type Profile struct {
	Firstname string
	Lastname  string
	Email     string
	Phone     string
	Adress    string
	Zipcode   int64
	Country   string
	Password  string
	Ville     string
}

// ProfileFields are the optional profile fields shared by registration and
// profile update. Missing ones decode as "" or 0.
type ProfileFields struct {
	Firstname string        `json:"firstname"`
	Lastname  string        `json:"lastname"`
	Phone     string        `json:"phone"`
	Adress    string        `json:"adress"`
	Zipcode   utils.FlexInt `json:"zipcode"`
	Country   string        `json:"country"`
	Ville     string        `json:"Ville"`
}

func (f ProfileFields) profile(email, password string) Profile {
	return Profile{
		Firstname: f.Firstname,
		Lastname:  f.Lastname,
		Email:     email,
		Phone:     f.Phone,
		Adress:    f.Adress,
		Zipcode:   int64(f.Zipcode),
		Country:   f.Country,
		Password:  password,
		Ville:     f.Ville,
	}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	ProfileFields
}

func (r RegisterRequest) Profile() Profile {
	return r.profile(r.Email, r.Password)
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateRequest overwrites every mutable field; absent ones become "" or 0.
type UpdateRequest struct {
	UserID   utils.FlexString `json:"user_id" binding:"required"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	ProfileFields
}

func (r UpdateRequest) Profile() Profile {
	return r.profile(r.Email, r.Password)
}

type IDRequest struct {
	UserID utils.FlexString `json:"user_id" binding:"required"`
}

type BanRequest struct {
	UserID utils.FlexString `json:"user_id" binding:"required"`
	Banned utils.Truthy     `json:"banned"`
}

// AdminRow is a user as listed in the admin console. Role and Active are only
// emitted when the column exists in the live schema.
type AdminRow struct {
	ID        int64            `json:"user_id"`
	Firstname string           `json:"firstname"`
	Lastname  string           `json:"lastname"`
	Email     string           `json:"email"`
	Role      Optional[string] `json:"role,omitzero"`
	Active    Optional[int]    `json:"active,omitzero"`
}

// Optional distinguishes a column that is absent from the schema (not
// emitted) from one that is present but NULL (emitted as null).
type Optional[T any] struct {
	Present bool
	Value   *T
}

func Some[T any](v *T) Optional[T] {
	return Optional[T]{Present: true, Value: v}
}

func (o Optional[T]) IsZero() bool {
	return !o.Present
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
